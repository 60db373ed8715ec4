package port

import (
	"context"
	"time"

	"gauge-reader/internal/domain/entity"
)

// ReadingStore интерфейс хранилища последнего показания.
// Хранится только последнее распознанное значение: потребители могут
// показывать его, пока очередной кадр не дал результата.
type ReadingStore interface {
	// Save сохраняет распознанное показание с отметкой времени
	Save(ctx context.Context, reading entity.Reading, at time.Time) error

	// Last возвращает последнее сохранённое показание;
	// ok=false — показаний ещё не было
	Last(ctx context.Context) (reading entity.Reading, at time.Time, ok bool, err error)
}
