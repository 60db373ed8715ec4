//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// GoCVEngine — заглушка OpenCV-варианта для сборки без тега gocv.
// Конфигурация совпадает с настоящим движком, чтобы контейнер собирался
// одинаково в обоих вариантах сборки.
type GoCVEngine struct {
	MaxSide          int
	ExplicitGeometry bool
	CannyLow         float32
	CannyHigh        float32
	CenterDistRatio  float64
	MaxLinePeaks     int
	MinEccentricity  float64
	MinRegionArea    float64
	ClosingRadius    int
	MaxRegions       int
	HoughVotes       int
	CircleVotes      float64
}

// NewGoCVEngine создаёт движок-заглушку (без OpenCV).
func NewGoCVEngine() *GoCVEngine {
	return &GoCVEngine{
		MaxSide:          DefaultMaxSide,
		CannyLow:         50,
		CannyHigh:        150,
		CenterDistRatio:  DefaultCenterDistRatio,
		MaxLinePeaks:     DefaultMaxLinePeaks,
		MinEccentricity:  DefaultMinEccentricity,
		MinRegionArea:    DefaultMinRegionArea,
		ClosingRadius:    DefaultClosingRadius,
		MaxRegions:       DefaultMaxRegions,
		HoughVotes:       60,
		CircleVotes:      50,
	}
}

// Read возвращает ошибку, если сборка без тега gocv.
func (e *GoCVEngine) Read(ctx context.Context, imageData []byte, cal entity.Calibration) (entity.Reading, error) {
	_ = ctx
	_ = imageData
	_ = cal
	return entity.Undetected, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.GaugeReader = (*GoCVEngine)(nil)
