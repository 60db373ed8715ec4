package vision

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const otsuBins = 256

// otsuThreshold подбирает глобальный порог яркости, максимизируя
// межклассовую дисперсию гистограммы.
func otsuThreshold(f *ImageField) float64 {
	hist := make([]float64, otsuBins)
	for _, v := range f.Pix {
		bin := int(v * (otsuBins - 1))
		if bin < 0 {
			bin = 0
		} else if bin >= otsuBins {
			bin = otsuBins - 1
		}
		hist[bin]++
	}

	total := floats.Sum(hist)
	if total == 0 {
		return 0.5
	}

	sumAll := 0.0
	for i, h := range hist {
		sumAll += float64(i) * h
	}

	var (
		wBack, sumBack float64
		bestVar        = -1.0
		bestBin        = otsuBins / 2
	)
	for i := 0; i < otsuBins; i++ {
		wBack += hist[i]
		if wBack == 0 {
			continue
		}
		wFore := total - wBack
		if wFore == 0 {
			break
		}
		sumBack += float64(i) * hist[i]
		meanBack := sumBack / wBack
		meanFore := (sumAll - sumBack) / wFore
		diff := meanBack - meanFore
		between := wBack * wFore * diff * diff
		if between > bestVar {
			bestVar = between
			bestBin = i
		}
	}

	return float64(bestBin) / (otsuBins - 1)
}

// binaryMask — бинаризованное поле.
type binaryMask struct {
	width  int
	height int
	pix    []bool
}

func newBinaryMask(width, height int) *binaryMask {
	return &binaryMask{width: width, height: height, pix: make([]bool, width*height)}
}

func (m *binaryMask) at(x, y int) bool {
	return m.pix[y*m.width+x]
}

// binarize строит маску переднего плана для одной полярности: darker=true —
// передний план темнее порога, иначе светлее. Полярность стрелки относительно
// фона не гарантирована (инфракрасная подсветка может её инвертировать),
// поэтому вызывающий код строит обе маски.
//
// Сам порог относится к тёмной маске: на строго бимодальном кадре порог Оцу
// совпадает с уровнем тёмной моды, и строгое сравнение потеряло бы стрелку.
func binarize(f *ImageField, threshold float64, darker bool) *binaryMask {
	m := newBinaryMask(f.Width, f.Height)
	for i, v := range f.Pix {
		if darker {
			m.pix[i] = v <= threshold
		} else {
			m.pix[i] = v > threshold
		}
	}
	return m
}

// removeSmallObjects обнуляет компоненты связности площадью меньше minArea.
func removeSmallObjects(m *binaryMask, minArea int) {
	labels, count := labelComponents(m)
	if count == 0 {
		return
	}
	areas := make([]int, count+1)
	for _, l := range labels {
		if l > 0 {
			areas[l]++
		}
	}
	for i, l := range labels {
		if l > 0 && areas[l] < minArea {
			m.pix[i] = false
		}
	}
}

// closeDisk — морфологическое замыкание диском заданного радиуса:
// сращивает почти соприкасающиеся фрагменты стрелки.
func closeDisk(m *binaryMask, radius int) *binaryMask {
	offsets := diskOffsets(radius)
	return erode(dilate(m, offsets), offsets)
}

func diskOffsets(radius int) [][2]int {
	var offs [][2]int
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offs = append(offs, [2]int{dx, dy})
			}
		}
	}
	return offs
}

func dilate(m *binaryMask, offs [][2]int) *binaryMask {
	out := newBinaryMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.at(x, y) {
				continue
			}
			for _, o := range offs {
				nx, ny := x+o[0], y+o[1]
				if nx >= 0 && nx < m.width && ny >= 0 && ny < m.height {
					out.pix[ny*m.width+nx] = true
				}
			}
		}
	}
	return out
}

func erode(m *binaryMask, offs [][2]int) *binaryMask {
	out := newBinaryMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
	pixel:
		for x := 0; x < m.width; x++ {
			for _, o := range offs {
				nx, ny := x+o[0], y+o[1]
				if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height || !m.at(nx, ny) {
					continue pixel
				}
			}
			out.pix[y*m.width+x] = true
		}
	}
	return out
}

// labelComponents размечает компоненты 8-связности обходом в ширину.
// Номера присваиваются в растровом порядке первых пикселей, поэтому
// разметка детерминирована.
func labelComponents(m *binaryMask) (labels []int, count int) {
	labels = make([]int, len(m.pix))
	var queue []int

	for start, on := range m.pix {
		if !on || labels[start] != 0 {
			continue
		}
		count++
		labels[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			x, y := idx%m.width, idx/m.width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
						continue
					}
					nidx := ny*m.width + nx
					if m.pix[nidx] && labels[nidx] == 0 {
						labels[nidx] = count
						queue = append(queue, nidx)
					}
				}
			}
		}
	}
	return labels, count
}

// regionProps — свойства одной компоненты связности.
type regionProps struct {
	Area         int
	CentroidX    float64
	CentroidY    float64
	Eccentricity float64 // 0 — круг, ближе к 1 — отрезок
	MajorAxis    float64 // длина большой оси эквивалентного эллипса
	Orientation  float64 // угол большой оси от вертикали, радианы
}

// measureRegions вычисляет свойства компонент по центральным моментам
// второго порядка. Эксцентриситет и длина большой оси берутся из
// собственных чисел ковариационной матрицы пикселей компоненты.
// Обрабатывается не более maxRegions компонент.
func measureRegions(m *binaryMask, labels []int, count, maxRegions int) []regionProps {
	if count > maxRegions {
		count = maxRegions
	}
	if count == 0 {
		return nil
	}

	type accum struct {
		n                     float64
		sx, sy, sxx, syy, sxy float64
	}
	accs := make([]accum, count+1)
	for idx, l := range labels {
		if l == 0 || l > count {
			continue
		}
		x := float64(idx % m.width)
		y := float64(idx / m.width)
		a := &accs[l]
		a.n++
		a.sx += x
		a.sy += y
		a.sxx += x * x
		a.syy += y * y
		a.sxy += x * y
	}

	var regions []regionProps
	var es mat.EigenSym
	for l := 1; l <= count; l++ {
		a := accs[l]
		if a.n == 0 {
			continue
		}
		cx := a.sx / a.n
		cy := a.sy / a.n
		mu20 := a.sxx/a.n - cx*cx
		mu02 := a.syy/a.n - cy*cy
		mu11 := a.sxy/a.n - cx*cy

		cov := mat.NewSymDense(2, []float64{mu20, mu11, mu11, mu02})
		if !es.Factorize(cov, false) {
			continue
		}
		vals := es.Values(nil) // по возрастанию
		minor, major := math.Max(0, vals[0]), vals[1]
		if major <= 0 {
			continue
		}

		// Ориентация отсчитывается от вертикали: тогда кандидаты обеих
		// стратегий живут в одной угловой системе и пересчитываются в
		// показание одним и тем же фиксированным поворотом на 90°.
		regions = append(regions, regionProps{
			Area:         int(a.n),
			CentroidX:    cx,
			CentroidY:    cy,
			Eccentricity: math.Sqrt(1 - minor/major),
			MajorAxis:    4 * math.Sqrt(major),
			Orientation:  0.5*math.Atan2(2*mu11, mu20-mu02) - math.Pi/2,
		})
	}
	return regions
}
