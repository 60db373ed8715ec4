package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gauge-reader/config"
	telegram "gauge-reader/internal/api"
	"gauge-reader/internal/container"
	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
	"gauge-reader/internal/infrastructure/camera"
	"gauge-reader/internal/infrastructure/storage"
	"gauge-reader/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.SnapshotURL == "" && cfg.SnapshotFile == "" {
		log.Fatal("SNAPSHOT_URL or SNAPSHOT_FILE is required")
	}

	// Источник кадров
	var snapshotter port.Snapshotter
	if cfg.SnapshotURL != "" {
		snapshotter = camera.NewHTTPCamera(cfg.SnapshotURL, 30*time.Second)
	} else {
		snapshotter = camera.NewFileCamera(cfg.SnapshotFile)
	}

	// Движок распознавания: чистый Go по умолчанию, OpenCV по запросу
	var reader port.GaugeReader
	switch cfg.Engine {
	case "", "pure":
		engine := vision.NewGaugeEngine()
		engine.ExplicitGeometry = cfg.ExplicitGeometry
		reader = engine
	case "gocv":
		engine := vision.NewGoCVEngine()
		engine.ExplicitGeometry = cfg.ExplicitGeometry
		reader = engine
	default:
		log.Fatalf("Unknown engine: %s", cfg.Engine)
	}

	profile, ok := entity.ProfileByName(cfg.DialProfile)
	if !ok {
		log.Fatalf("Unknown dial profile: %s", cfg.DialProfile)
	}
	cal := entity.Calibration{
		MinValue: cfg.MinReading,
		MaxValue: cfg.MaxReading,
		Profile:  profile,
	}

	alarms := make([]entity.Alarm, 0, len(cfg.Alarms))
	for _, spec := range cfg.Alarms {
		direction := entity.AlarmAbove
		if spec.Below {
			direction = entity.AlarmBelow
		}
		alarms = append(alarms, entity.Alarm{
			Level:     spec.Level,
			Threshold: spec.Threshold,
			Direction: direction,
		})
	}

	// Хранилища показаний и подписчиков
	store := storage.NewMemoryReadingStore()
	subscribers := storage.NewMemorySubscriberRepository()

	// Telegram-интерфейс поднимается только при настроенном токене
	var notifier port.AlarmNotifier
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, subscribers, store, cfg.Unit)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		notifier = bot

		go func() {
			if err := bot.Run(); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	// Собираем сервисы приложения
	appContainer := container.New(snapshotter, reader, store, notifier, cal, alarms, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Gauge reader is running (interval %s)...", cfg.PollInterval)
	if err := appContainer.Poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Poller error: %v", err)
	}
}
