package entity

import "math"

// GaugeGeometry описывает найденный (или предполагаемый) циферблат:
// центр и радиус в пикселях. Живёт только в рамках одной попытки распознавания.
type GaugeGeometry struct {
	CenterX  float64
	CenterY  float64
	Radius   float64
	Measured bool // true — круг найден детектором, false — центрированное допущение
}

// ImplicitGeometry возвращает геометрию по умолчанию: циферблат занимает
// кадр целиком, центр — центр изображения, радиус — треть меньшей стороны.
func ImplicitGeometry(width, height int) GaugeGeometry {
	side := width
	if height < side {
		side = height
	}
	return GaugeGeometry{
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
		Radius:  float64(side) / 3,
	}
}

// Contains сообщает, лежит ли точка внутри радиуса циферблата.
func (g GaugeGeometry) Contains(x, y float64) bool {
	dx := x - g.CenterX
	dy := y - g.CenterY
	return math.Sqrt(dx*dx+dy*dy) < g.Radius
}

// NeedleCandidate — кандидат на стрелку от одной из стратегий поиска.
// Кандидаты создаются заново на каждый кадр и никогда не сравниваются
// между кадрами.
type NeedleCandidate struct {
	Angle        float64 // ориентация в радианах (определена по модулю pi)
	Length       float64 // метрика длины в единицах стратегии
	CentroidX    float64
	CentroidY    float64
	DistToCenter float64 // расстояние центроида/линии до центра циферблата
	Source       string  // метка стратегии-источника
}

// SelectNeedle выбирает из кандидатов стрелку с максимальной метрикой длины.
// На манометре может быть две стрелки: короткая задающая и длинная рабочая,
// показание всегда несёт длинная. При равной длине побеждает более ранний
// кандидат, поэтому результат детерминирован относительно порядка стратегий.
func SelectNeedle(candidates []NeedleCandidate) (NeedleCandidate, bool) {
	if len(candidates) == 0 {
		return NeedleCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Length > best.Length {
			best = c
		}
	}
	return best, true
}
