package vision

import (
	"math"

	"gauge-reader/internal/domain/entity"
)

// needleStrategy — общий интерфейс стратегий поиска стрелки.
// Все зарегистрированные стратегии выполняются на каждом кадре, их
// результаты объединяются без досрочного выхода: одна стратегия может
// отказать при конкретном освещении, другая — выручить.
type needleStrategy interface {
	Name() string
	Detect(f *ImageField, g entity.GaugeGeometry) []entity.NeedleCandidate
}

// lineStrategy ищет стрелку как прямую линию: детектор границ плюс
// линейное преобразование Хафа. Преобразование возвращает бесконечные
// прямые, а не отрезки, поэтому длину стрелки приходится оценивать
// косвенно: у стрелки ось вращения гарантированно у центра циферблата,
// значит чем ближе прямая к центру, тем она "длиннее".
type lineStrategy struct {
	Sigma           float64 // сглаживание перед детектором границ
	LowThreshold    float64
	HighThreshold   float64
	CenterDistRatio float64 // прямые дальше этой доли радиуса от центра отбрасываются
	MaxPeaks        int     // ограничение числа пиков Хафа
}

func (s *lineStrategy) Name() string { return "hough-line" }

func (s *lineStrategy) Detect(f *ImageField, g entity.GaugeGeometry) []entity.NeedleCandidate {
	edges := canny(f, s.Sigma, s.LowThreshold, s.HighThreshold)
	hits := houghLines(edges, s.MaxPeaks)

	var candidates []entity.NeedleCandidate
	for _, hit := range hits {
		cos := math.Cos(hit.Theta)
		sin := math.Sin(hit.Theta)
		dist := math.Abs(g.CenterX*cos + g.CenterY*sin - hit.Rho)

		// Отсекаем разметку и надписи у обода: стрелка проходит близко
		// к оси вращения.
		if dist >= s.CenterDistRatio*g.Radius {
			continue
		}

		// Ближайшая к центру точка прямой — условный центроид кандидата.
		t := hit.Rho - (g.CenterX*cos + g.CenterY*sin)
		candidates = append(candidates, entity.NeedleCandidate{
			Angle:        hit.Theta,
			Length:       g.Radius - dist,
			CentroidX:    g.CenterX + t*cos,
			CentroidY:    g.CenterY + t*sin,
			DistToCenter: dist,
			Source:       s.Name(),
		})
	}
	return candidates
}

// thresholdStrategy ищет стрелку как вытянутую компоненту связности после
// глобальной бинаризации Оцу. Маска строится для обеих полярностей: под
// инфракрасной подсветкой стрелка может оказаться как темнее, так и светлее
// фона, и заранее это не известно.
type thresholdStrategy struct {
	MinObjectArea   int     // компоненты меньше — шум, удаляются до замыкания
	ClosingRadius   int     // радиус диска морфологического замыкания
	MinEccentricity float64 // насколько вытянутой должна быть компонента
	MinRegionArea   int     // минимальная площадь компоненты-кандидата
	MaxRegions      int     // ограничение числа обрабатываемых компонент
}

func (s *thresholdStrategy) Name() string { return "threshold" }

func (s *thresholdStrategy) Detect(f *ImageField, g entity.GaugeGeometry) []entity.NeedleCandidate {
	threshold := otsuThreshold(f)

	var candidates []entity.NeedleCandidate
	for _, darker := range [2]bool{true, false} {
		mask := binarize(f, threshold, darker)
		removeSmallObjects(mask, s.MinObjectArea)
		mask = closeDisk(mask, s.ClosingRadius)

		labels, count := labelComponents(mask)
		regions := measureRegions(mask, labels, count, s.MaxRegions)

		source := s.Name() + "-dark"
		if !darker {
			source = s.Name() + "-light"
		}

		for _, r := range regions {
			if r.Eccentricity <= s.MinEccentricity || r.Area <= s.MinRegionArea {
				continue
			}
			dx := r.CentroidX - g.CenterX
			dy := r.CentroidY - g.CenterY
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= g.Radius {
				continue
			}
			candidates = append(candidates, entity.NeedleCandidate{
				Angle:        r.Orientation,
				Length:       r.MajorAxis,
				CentroidX:    r.CentroidX,
				CentroidY:    r.CentroidY,
				DistToCenter: dist,
				Source:       source,
			})
		}
	}
	return candidates
}
