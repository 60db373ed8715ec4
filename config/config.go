package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AlarmSpec — один настроенный порог тревоги из окружения.
type AlarmSpec struct {
	Level     int
	Threshold float64
	Below     bool // true — тревога при показании ниже порога
}

type Config struct {
	SnapshotURL      string
	SnapshotFile     string
	PollInterval     time.Duration
	MinReading       float64
	MaxReading       float64
	DialProfile      string // standard | mirrored
	Engine           string // pure | gocv
	ExplicitGeometry bool
	Alarms           []AlarmSpec
	TelegramToken    string
	Unit             string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		SnapshotURL:   os.Getenv("SNAPSHOT_URL"),
		SnapshotFile:  os.Getenv("SNAPSHOT_FILE"),
		DialProfile:   os.Getenv("DIAL_PROFILE"),
		Engine:        os.Getenv("ENGINE"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Unit:          envDefault("GAUGE_UNIT", "бар"),
	}

	var err error
	// Исходная прошивка предлагала опрос раз в 1 или 15 минут;
	// здесь интервал задаётся любой длительностью.
	if cfg.PollInterval, err = envDuration("POLL_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MinReading, err = envFloat("MIN_READING", 0); err != nil {
		return nil, err
	}
	if cfg.MaxReading, err = envFloat("MAX_READING", 3); err != nil {
		return nil, err
	}
	if cfg.MinReading >= cfg.MaxReading {
		return nil, fmt.Errorf("MIN_READING (%g) must be below MAX_READING (%g)", cfg.MinReading, cfg.MaxReading)
	}
	cfg.ExplicitGeometry = os.Getenv("GEOMETRY") == "explicit"

	// До трёх порогов тревог; направление срабатывания настраивается
	// отдельно для каждого.
	for level := 1; level <= 3; level++ {
		raw := os.Getenv(fmt.Sprintf("ALARM_%d", level))
		if raw == "" {
			continue
		}
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("ALARM_%d: %w", level, err)
		}
		cfg.Alarms = append(cfg.Alarms, AlarmSpec{
			Level:     level,
			Threshold: threshold,
			Below:     os.Getenv(fmt.Sprintf("ALARM_%d_DIRECTION", level)) == "below",
		})
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return v, nil
}
