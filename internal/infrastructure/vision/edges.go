package vision

import "math"

// edgeMap — результат детектора границ: бинарная карта плюс компоненты
// градиента, которые нужны круговому преобразованию Хафа.
type edgeMap struct {
	width  int
	height int
	on     []bool
	gx     []float64
	gy     []float64
}

func (e *edgeMap) at(x, y int) bool {
	return e.on[y*e.width+x]
}

// gaussianKernel строит одномерное ядро Гаусса с радиусом 3*sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur сглаживает поле разделимым ядром Гаусса.
// Края обрабатываются повторением граничного пикселя.
func gaussianBlur(f *ImageField, sigma float64) *ImageField {
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := NewImageField(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				xi := clampInt(x+i, 0, f.Width-1)
				acc += f.At(xi, y) * kernel[i+radius]
			}
			tmp.Set(x, y, acc)
		}
	}

	out := NewImageField(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				yi := clampInt(y+i, 0, f.Height-1)
				acc += tmp.At(x, yi) * kernel[i+radius]
			}
			out.Set(x, y, acc)
		}
	}
	return out
}

// sobel вычисляет компоненты градиента яркости.
func sobel(f *ImageField) (gx, gy []float64) {
	gx = make([]float64, f.Width*f.Height)
	gy = make([]float64, f.Width*f.Height)
	for y := 1; y < f.Height-1; y++ {
		for x := 1; x < f.Width-1; x++ {
			idx := y*f.Width + x
			gx[idx] = f.At(x+1, y-1) + 2*f.At(x+1, y) + f.At(x+1, y+1) -
				f.At(x-1, y-1) - 2*f.At(x-1, y) - f.At(x-1, y+1)
			gy[idx] = f.At(x-1, y+1) + 2*f.At(x, y+1) + f.At(x+1, y+1) -
				f.At(x-1, y-1) - 2*f.At(x, y-1) - f.At(x+1, y-1)
		}
	}
	return gx, gy
}

// canny — классический детектор границ: сглаживание, градиент, подавление
// немаксимумов и двойной порог с гистерезисом. Пороги low/high заданы в долях
// от максимальной величины градиента кадра.
func canny(f *ImageField, sigma, low, high float64) *edgeMap {
	blurred := gaussianBlur(f, sigma)
	gx, gy := sobel(blurred)

	w, h := f.Width, f.Height
	mag := make([]float64, w*h)
	maxMag := 0.0
	for i := range mag {
		mag[i] = math.Hypot(gx[i], gy[i])
		if mag[i] > maxMag {
			maxMag = mag[i]
		}
	}
	if maxMag == 0 {
		return &edgeMap{width: w, height: h, on: make([]bool, w*h), gx: gx, gy: gy}
	}
	for i := range mag {
		mag[i] /= maxMag
	}

	// Подавление немаксимумов: направление градиента квантуется до четырёх.
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			m := mag[idx]
			if m == 0 {
				continue
			}
			angle := math.Atan2(gy[idx], gx[idx]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			var a, b float64
			switch {
			case angle < 22.5 || angle >= 157.5: // горизонтальный градиент
				a, b = mag[idx-1], mag[idx+1]
			case angle < 67.5: // диагональ
				a, b = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
			case angle < 112.5: // вертикальный градиент
				a, b = mag[(y-1)*w+x], mag[(y+1)*w+x]
			default:
				a, b = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
			}
			if m >= a && m >= b {
				thin[idx] = m
			}
		}
	}

	// Гистерезис: сильные границы затягивают примыкающие слабые.
	on := make([]bool, w*h)
	queue := make([]int, 0, w*h/8)
	for i, m := range thin {
		if m >= high {
			on[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x, y := idx%w, idx/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nidx := ny*w + nx
				if !on[nidx] && thin[nidx] >= low {
					on[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}
	}

	return &edgeMap{width: w, height: h, on: on, gx: gx, gy: gy}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
