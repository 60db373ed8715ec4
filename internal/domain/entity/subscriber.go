package entity

import "time"

// Subscriber — чат, подписанный на уведомления о тревогах.
type Subscriber struct {
	ChatID  int64     // Telegram Chat ID
	AddedAt time.Time // когда оформлена подписка
}

// NewSubscriber создаёт подписчика с текущим временем подписки.
func NewSubscriber(chatID int64) *Subscriber {
	return &Subscriber{ChatID: chatID, AddedAt: time.Now()}
}
