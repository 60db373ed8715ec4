package port

import (
	"context"

	"gauge-reader/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков на тревоги.
type SubscriberRepository interface {
	// Add добавляет подписку чата (повторное добавление — не ошибка)
	Add(ctx context.Context, chatID int64) (*entity.Subscriber, error)

	// Remove убирает подписку чата
	Remove(ctx context.Context, chatID int64) error

	// All возвращает всех текущих подписчиков
	All(ctx context.Context) ([]*entity.Subscriber, error)
}
