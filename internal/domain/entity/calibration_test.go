package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func TestReadingFromAngle_VerticalNeedle(t *testing.T) {
	cal := NewCalibration(0, 3)

	// Вертикальная стрелка: ориентация 0 относительно вертикали.
	r := cal.ReadingFromAngle(0)

	require.True(t, r.Detected)
	require.InDelta(t, 2.5, r.Value, 1e-9)
}

func TestReadingFromAngle_Boundaries(t *testing.T) {
	cal := NewCalibration(0, 3)

	// Начало шкалы: стрелка на стартовом угле профиля (225°), то есть
	// ориентация 135° до смещения.
	low := cal.ReadingFromAngle(rad(135))
	require.True(t, low.Detected)
	require.InDelta(t, 0, low.Value, 1e-9)

	// Конец шкалы: полный ход в 270° от старта.
	high := cal.ReadingFromAngle(rad(45))
	require.True(t, high.Detected)
	require.InDelta(t, 3, high.Value, 1e-9)
}

func TestReadingFromAngle_Antipode(t *testing.T) {
	cal := NewCalibration(0, 3)

	// Ориентация 75° даёт угол стрелки 165°, что лежит вне хода шкалы.
	// Противоположный конец отрезка (345°) попадает в ход и даёт отсчёт.
	r := cal.ReadingFromAngle(rad(75))

	require.True(t, r.Detected)
	require.InDelta(t, 1.33, r.Value, 1e-9)
}

func TestReadingFromAngle_ClampToSweep(t *testing.T) {
	// Узкий профиль, в который не попадает ни сам угол, ни его антипод:
	// отсчёт прижимается к концу шкалы.
	cal := Calibration{
		MinValue: 0,
		MaxValue: 1,
		Profile: DialProfile{
			Name:          "narrow",
			StartAngleDeg: 0,
			SweepAngleDeg: 90,
		},
	}

	r := cal.ReadingFromAngle(rad(100))

	require.True(t, r.Detected)
	require.InDelta(t, 1, r.Value, 1e-9)
}

func TestReadingFromAngle_Monotonic(t *testing.T) {
	cal := NewCalibration(0, 3)

	prev := -math.MaxFloat64
	for relDeg := 0.0; relDeg <= 270; relDeg += 3 {
		angle := rad(ProfileStandard.StartAngleDeg + relDeg - ProfileStandard.OrientationOffs)
		r := cal.ReadingFromAngle(angle)
		require.True(t, r.Detected, "relDeg=%v", relDeg)
		require.GreaterOrEqual(t, r.Value+1e-9, prev, "relDeg=%v", relDeg)
		prev = r.Value
	}
}

func TestReadingFromAngle_WithinRange(t *testing.T) {
	cal := NewCalibration(-10, 40)

	for deg := -180.0; deg < 180; deg += 7 {
		r := cal.ReadingFromAngle(rad(deg))
		require.True(t, r.Detected)
		require.GreaterOrEqual(t, r.Value, cal.MinValue)
		require.LessOrEqual(t, r.Value, cal.MaxValue)
	}
}

func TestReadingFromAngle_Pure(t *testing.T) {
	cal := NewCalibration(0, 3)

	first := cal.ReadingFromAngle(rad(42))
	second := cal.ReadingFromAngle(rad(42))

	require.Equal(t, first, second)
}

func TestReadingFromAngle_MirroredProfile(t *testing.T) {
	cal := Calibration{MinValue: 0, MaxValue: 3, Profile: ProfileMirrored}

	// Зеркальный профиль стартует на 135° и растёт по часовой стрелке
	// в противоположном направлении отсчёта.
	low := cal.ReadingFromAngle(rad(45))
	require.InDelta(t, 0, low.Value, 1e-9)

	high := cal.ReadingFromAngle(rad(135))
	require.InDelta(t, 3, high.Value, 1e-9)
}

func TestProfileByName(t *testing.T) {
	p, ok := ProfileByName("")
	require.True(t, ok)
	require.Equal(t, ProfileStandard, p)

	p, ok = ProfileByName("standard")
	require.True(t, ok)
	require.Equal(t, ProfileStandard, p)

	p, ok = ProfileByName("mirrored")
	require.True(t, ok)
	require.Equal(t, ProfileMirrored, p)

	_, ok = ProfileByName("upside-down")
	require.False(t, ok)
}
