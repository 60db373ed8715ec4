// Package vision реализует движок распознавания стрелочного манометра:
// кадр с камеры на входе, показание шкалы (или "не найдено") на выходе.
package vision

import (
	"context"
	"log"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// Пороговые константы эвристик. Подобраны на реальных снимках манометров;
// через поля движка их можно переопределить под конкретную установку.
const (
	DefaultMaxSide          = 1024 // кадры крупнее уменьшаются до этой стороны
	DefaultCannySigma       = 1.4
	DefaultCannyLow         = 0.1
	DefaultCannyHigh        = 0.3
	DefaultCenterDistRatio  = 0.5 // доля радиуса: дальше от центра — не стрелка
	DefaultMaxLinePeaks     = 30
	DefaultMinEccentricity  = 0.7
	DefaultMinRegionArea    = 100
	DefaultMinObjectArea    = 50
	DefaultClosingRadius    = 3
	DefaultMaxRegions       = 64
	DefaultCircleRadiusStep = 5
	DefaultMinCircleScore   = 0.25
)

// GaugeEngine — движок распознавания на чистом Go. Движок не держит
// состояния между вызовами, поэтому независимые кадры можно обрабатывать
// параллельно без блокировок.
type GaugeEngine struct {
	MaxSide          int
	ExplicitGeometry bool // искать круг циферблата вместо центрированного допущения
	CannySigma       float64
	CannyLow         float64
	CannyHigh        float64
	CircleRadiusStep int
	MinCircleScore   float64

	strategies []needleStrategy
}

// NewGaugeEngine создаёт движок с настройками по умолчанию.
func NewGaugeEngine() *GaugeEngine {
	e := &GaugeEngine{
		MaxSide:          DefaultMaxSide,
		CannySigma:       DefaultCannySigma,
		CannyLow:         DefaultCannyLow,
		CannyHigh:        DefaultCannyHigh,
		CircleRadiusStep: DefaultCircleRadiusStep,
		MinCircleScore:   DefaultMinCircleScore,
	}
	e.strategies = []needleStrategy{
		&lineStrategy{
			Sigma:           DefaultCannySigma,
			LowThreshold:    DefaultCannyLow,
			HighThreshold:   DefaultCannyHigh,
			CenterDistRatio: DefaultCenterDistRatio,
			MaxPeaks:        DefaultMaxLinePeaks,
		},
		&thresholdStrategy{
			MinObjectArea:   DefaultMinObjectArea,
			ClosingRadius:   DefaultClosingRadius,
			MinEccentricity: DefaultMinEccentricity,
			MinRegionArea:   DefaultMinRegionArea,
			MaxRegions:      DefaultMaxRegions,
		},
	}
	return e
}

// Read декодирует кадр и возвращает показание шкалы.
// Ошибка возможна только для нечитаемых байтов; если стрелка не найдена,
// возвращается entity.Undetected без ошибки.
func (e *GaugeEngine) Read(ctx context.Context, imageData []byte, cal entity.Calibration) (entity.Reading, error) {
	// Внутренней отмены нет: движок гарантирует ограниченную стоимость
	// вызова, тайм-аут — забота вызывающего.
	_ = ctx

	field, err := DecodeField(imageData, e.MaxSide)
	if err != nil {
		return entity.Undetected, err
	}

	geom := e.estimateGeometry(field)

	var candidates []entity.NeedleCandidate
	for _, s := range e.strategies {
		candidates = append(candidates, runStrategy(s, field, geom)...)
	}

	best, ok := entity.SelectNeedle(candidates)
	if !ok {
		return entity.Undetected, nil
	}
	return cal.ReadingFromAngle(best.Angle), nil
}

// runStrategy изолирует сбой одной стратегии: паника на вырожденном кадре
// даёт ноль кандидатов от этой ветки и не прерывает объединение остальных.
func runStrategy(s needleStrategy, f *ImageField, g entity.GaugeGeometry) (out []entity.NeedleCandidate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("needle strategy %s failed: %v", s.Name(), r)
			out = nil
		}
	}()
	return s.Detect(f, g)
}

// Проверка реализации интерфейса
var _ port.GaugeReader = (*GaugeEngine)(nil)
