package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// GaugeService выполняет один цикл опроса: снимок с камеры, распознавание,
// сохранение показания и проверка порогов тревог.
type GaugeService struct {
	camera   port.Snapshotter
	reader   port.GaugeReader
	store    port.ReadingStore
	notifier port.AlarmNotifier
	cal      entity.Calibration
	alarms   []entity.Alarm

	mu        sync.Mutex
	triggered map[int]bool // состояние тревог между циклами
}

// NewGaugeService создаёт сервис опроса манометра.
func NewGaugeService(camera port.Snapshotter, reader port.GaugeReader, store port.ReadingStore,
	notifier port.AlarmNotifier, cal entity.Calibration, alarms []entity.Alarm) *GaugeService {
	return &GaugeService{
		camera:    camera,
		reader:    reader,
		store:     store,
		notifier:  notifier,
		cal:       cal,
		alarms:    alarms,
		triggered: make(map[int]bool),
	}
}

// ProcessOnce выполняет один цикл опроса и возвращает показание.
// Нераспознанная стрелка — штатный результат (entity.Undetected без ошибки);
// ошибкой считаются только сбой камеры и нечитаемый снимок.
func (s *GaugeService) ProcessOnce(ctx context.Context) (entity.Reading, error) {
	if s.camera == nil {
		return entity.Undetected, errors.New("camera is not configured")
	}
	if s.reader == nil {
		return entity.Undetected, errors.New("gauge reader is not configured")
	}

	imageData, err := s.camera.Snapshot(ctx)
	if err != nil {
		return entity.Undetected, fmt.Errorf("snapshot: %w", err)
	}

	reading, err := s.reader.Read(ctx, imageData, s.cal)
	if err != nil {
		return entity.Undetected, fmt.Errorf("read gauge: %w", err)
	}

	if reading.Detected {
		if s.store != nil {
			if err := s.store.Save(ctx, reading, time.Now()); err != nil {
				log.Printf("Error saving reading: %v", err)
			}
		}
		s.evaluateAlarms(ctx, reading)
	}

	return reading, nil
}

// evaluateAlarms проверяет пороги и уведомляет о смене их состояния.
// Нераспознанные показания сюда не попадают: состояние тревог сохраняется
// до следующего успешного распознавания.
func (s *GaugeService) evaluateAlarms(ctx context.Context, reading entity.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, alarm := range s.alarms {
		now := alarm.Triggered(reading)
		was := s.triggered[alarm.Level]
		if now == was {
			continue
		}
		s.triggered[alarm.Level] = now

		if s.notifier == nil {
			continue
		}
		var err error
		if now {
			err = s.notifier.NotifyAlarm(ctx, alarm, reading)
		} else {
			err = s.notifier.NotifyRecovered(ctx, alarm, reading)
		}
		if err != nil {
			log.Printf("Error notifying alarm %d: %v", alarm.Level, err)
		}
	}
}

// AlarmState возвращает текущее состояние тревоги по номеру.
func (s *GaugeService) AlarmState(level int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggered[level]
}
