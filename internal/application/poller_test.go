package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/infrastructure/storage"
)

func TestPoller_RunUntilCancelled(t *testing.T) {
	camera := &fakeCamera{data: []byte("frame")}
	reader := &fakeReader{readings: []entity.Reading{entity.NewReading(1.5)}}
	svc := NewGaugeService(camera, reader, storage.NewMemoryReadingStore(), nil,
		entity.NewCalibration(0, 3), nil)
	poller := NewPoller(svc, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := poller.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// Первый цикл выполняется сразу, дальше по тикеру.
	require.GreaterOrEqual(t, reader.calls, 2)
}

func TestPoller_FirstCycleImmediate(t *testing.T) {
	camera := &fakeCamera{data: []byte("frame")}
	reader := &fakeReader{readings: []entity.Reading{entity.NewReading(0.5)}}
	store := storage.NewMemoryReadingStore()
	svc := NewGaugeService(camera, reader, store, nil, entity.NewCalibration(0, 3), nil)
	poller := NewPoller(svc, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := poller.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, _, ok, err := store.Last(context.Background())
	require.NoError(t, err)
	require.True(t, ok, "первый цикл должен выполниться без ожидания тикера")
}
