package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 15*time.Minute, cfg.PollInterval)
	require.InDelta(t, 0, cfg.MinReading, 1e-9)
	require.InDelta(t, 3, cfg.MaxReading, 1e-9)
	require.Equal(t, "бар", cfg.Unit)
	require.Empty(t, cfg.Alarms)
	require.False(t, cfg.ExplicitGeometry)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SNAPSHOT_URL", "http://camera.local/snapshot.jpg")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("MIN_READING", "-1")
	t.Setenv("MAX_READING", "10")
	t.Setenv("DIAL_PROFILE", "mirrored")
	t.Setenv("ENGINE", "gocv")
	t.Setenv("GEOMETRY", "explicit")
	t.Setenv("GAUGE_UNIT", "атм")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://camera.local/snapshot.jpg", cfg.SnapshotURL)
	require.Equal(t, time.Minute, cfg.PollInterval)
	require.InDelta(t, -1, cfg.MinReading, 1e-9)
	require.InDelta(t, 10, cfg.MaxReading, 1e-9)
	require.Equal(t, "mirrored", cfg.DialProfile)
	require.Equal(t, "gocv", cfg.Engine)
	require.True(t, cfg.ExplicitGeometry)
	require.Equal(t, "атм", cfg.Unit)
}

func TestLoad_Alarms(t *testing.T) {
	t.Setenv("ALARM_1", "2.5")
	t.Setenv("ALARM_3", "0.5")
	t.Setenv("ALARM_3_DIRECTION", "below")

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Alarms, 2)
	require.Equal(t, AlarmSpec{Level: 1, Threshold: 2.5}, cfg.Alarms[0])
	require.Equal(t, AlarmSpec{Level: 3, Threshold: 0.5, Below: true}, cfg.Alarms[1])
}

func TestLoad_InvalidAlarm(t *testing.T) {
	t.Setenv("ALARM_2", "not a number")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ALARM_2")
}

func TestLoad_InvalidRange(t *testing.T) {
	t.Setenv("MIN_READING", "5")
	t.Setenv("MAX_READING", "5")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "-3m")

	_, err := Load()
	require.Error(t, err)
}
