package vision

import "gauge-reader/internal/domain/entity"

// estimateGeometry определяет центр и радиус циферблата. В явном режиме
// круг ищется детектором окружностей; при неудаче (и в неявном режиме)
// берётся центрированное допущение: циферблат заполняет кадр.
// Неявный режим проще и быстрее, но хуже переносит смещённый или
// обрезанный циферблат.
func (e *GaugeEngine) estimateGeometry(f *ImageField) entity.GaugeGeometry {
	if e.ExplicitGeometry {
		if g, ok := e.detectDial(f); ok {
			return g
		}
	}
	return entity.ImplicitGeometry(f.Width, f.Height)
}

// detectDial ищет окружность циферблата круговым преобразованием Хафа
// в диапазоне радиусов от 1/8 до 1/2 меньшей стороны кадра.
func (e *GaugeEngine) detectDial(f *ImageField) (entity.GaugeGeometry, bool) {
	side := minInt(f.Width, f.Height)
	rMin := side / 8
	rMax := side / 2
	if rMin < e.CircleRadiusStep || rMin >= rMax {
		return entity.GaugeGeometry{}, false
	}

	edges := canny(f, e.CannySigma, e.CannyLow, e.CannyHigh)
	hit, ok := houghCircles(edges, rMin, rMax, e.CircleRadiusStep, e.MinCircleScore)
	if !ok {
		return entity.GaugeGeometry{}, false
	}

	return entity.GaugeGeometry{
		CenterX:  hit.CenterX,
		CenterY:  hit.CenterY,
		Radius:   hit.Radius,
		Measured: true,
	}, true
}
