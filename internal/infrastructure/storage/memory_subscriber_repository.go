package storage

import (
	"context"
	"sort"
	"sync"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков на тревоги.
type MemorySubscriberRepository struct {
	mu   sync.RWMutex
	subs map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище.
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subs: make(map[int64]*entity.Subscriber),
	}
}

// Add добавляет подписку чата; повторное добавление возвращает существующую.
func (r *MemorySubscriberRepository) Add(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, exists := r.subs[chatID]; exists {
		return sub, nil
	}

	sub := entity.NewSubscriber(chatID)
	r.subs[chatID] = sub
	return sub, nil
}

// Remove убирает подписку чата.
func (r *MemorySubscriberRepository) Remove(ctx context.Context, chatID int64) error {
	_ = ctx
	r.mu.Lock()
	delete(r.subs, chatID)
	r.mu.Unlock()
	return nil
}

// All возвращает подписчиков в стабильном порядке по ChatID.
func (r *MemorySubscriberRepository) All(ctx context.Context) ([]*entity.Subscriber, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
