package storage

import (
	"context"
	"sync"
	"time"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// MemoryReadingStore in-memory хранилище последнего показания.
// Сохраняются только распознанные значения: пока очередной кадр не дал
// результата, потребители видят последнее известное показание.
type MemoryReadingStore struct {
	mu      sync.RWMutex
	reading entity.Reading
	at      time.Time
	has     bool
}

// NewMemoryReadingStore создаёт пустое хранилище показаний.
func NewMemoryReadingStore() *MemoryReadingStore {
	return &MemoryReadingStore{}
}

// Save сохраняет показание с отметкой времени.
func (s *MemoryReadingStore) Save(ctx context.Context, reading entity.Reading, at time.Time) error {
	_ = ctx
	s.mu.Lock()
	s.reading = reading
	s.at = at
	s.has = true
	s.mu.Unlock()
	return nil
}

// Last возвращает последнее сохранённое показание.
func (s *MemoryReadingStore) Last(ctx context.Context) (entity.Reading, time.Time, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reading, s.at, s.has, nil
}

// Проверка реализации интерфейса
var _ port.ReadingStore = (*MemoryReadingStore)(nil)
