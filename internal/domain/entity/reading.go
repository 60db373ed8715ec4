package entity

import (
	"fmt"
	"math"
)

// Reading — результат одного распознавания шкалы манометра.
// Значение округлено до двух знаков; Detected=false означает,
// что стрелку не удалось найти (это штатный исход, не ошибка).
type Reading struct {
	Value    float64 // показание в единицах шкалы (например, бар)
	Detected bool    // найдена ли стрелка
}

// Undetected — сигнальное значение "стрелка не найдена".
var Undetected = Reading{}

// NewReading создаёт распознанное показание, округляя до двух знаков.
func NewReading(value float64) Reading {
	return Reading{Value: Round2(value), Detected: true}
}

// Round2 округляет до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// String возвращает показание в текстовом виде.
func (r Reading) String() string {
	if !r.Detected {
		return "нет данных"
	}
	return fmt.Sprintf("%.2f", r.Value)
}
