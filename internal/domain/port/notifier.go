package port

import (
	"context"

	"gauge-reader/internal/domain/entity"
)

// AlarmNotifier интерфейс доставки уведомлений о тревогах.
type AlarmNotifier interface {
	// NotifyAlarm сообщает о срабатывании порога
	NotifyAlarm(ctx context.Context, alarm entity.Alarm, reading entity.Reading) error

	// NotifyRecovered сообщает о возврате показания в норму
	NotifyRecovered(ctx context.Context, alarm entity.Alarm, reading entity.Reading) error
}
