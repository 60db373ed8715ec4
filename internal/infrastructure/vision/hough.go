package vision

import "math"

// lineHit — пик линейного преобразования Хафа в нормальной форме
// x*cos(theta) + y*sin(theta) = rho, theta в [0, pi).
type lineHit struct {
	Theta float64
	Rho   float64
	Votes int
}

const (
	houghThetaSteps = 360 // полградуса на шаг
	// Пики слабее половины сильнейшего не считаются линиями.
	houghPeakFloor = 0.5
	// Радиус подавления соседей вокруг принятого пика (в ячейках).
	houghSuppressTheta = 2
	houghSuppressRho   = 5
)

// houghLines находит до maxPeaks прямых на карте границ.
// Пики возвращаются по убыванию голосов; при равенстве порядок определяется
// индексами ячеек, поэтому результат детерминирован.
func houghLines(e *edgeMap, maxPeaks int) []lineHit {
	diag := int(math.Ceil(math.Hypot(float64(e.width), float64(e.height))))
	rhoBins := 2*diag + 1

	sin := make([]float64, houghThetaSteps)
	cos := make([]float64, houghThetaSteps)
	for t := 0; t < houghThetaSteps; t++ {
		theta := float64(t) * math.Pi / houghThetaSteps
		sin[t] = math.Sin(theta)
		cos[t] = math.Cos(theta)
	}

	acc := make([]int, houghThetaSteps*rhoBins)
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if !e.at(x, y) {
				continue
			}
			for t := 0; t < houghThetaSteps; t++ {
				rho := float64(x)*cos[t] + float64(y)*sin[t]
				r := int(math.Round(rho)) + diag
				acc[t*rhoBins+r]++
			}
		}
	}

	var peaks []lineHit
	floor := -1
	for len(peaks) < maxPeaks {
		bestT, bestR, bestV := -1, -1, 0
		for t := 0; t < houghThetaSteps; t++ {
			row := acc[t*rhoBins : (t+1)*rhoBins]
			for r, v := range row {
				if v > bestV {
					bestT, bestR, bestV = t, r, v
				}
			}
		}
		if bestV <= 0 {
			break
		}
		if floor < 0 {
			floor = int(houghPeakFloor * float64(bestV))
		}
		if bestV < floor {
			break
		}

		peaks = append(peaks, lineHit{
			Theta: float64(bestT) * math.Pi / houghThetaSteps,
			Rho:   float64(bestR - diag),
			Votes: bestV,
		})

		// Гасим окрестность пика, включая сопряжённые ячейки на границе theta.
		for dt := -houghSuppressTheta; dt <= houghSuppressTheta; dt++ {
			t := bestT + dt
			r0 := bestR
			if t < 0 {
				t += houghThetaSteps
				r0 = rhoBins - 1 - bestR
			} else if t >= houghThetaSteps {
				t -= houghThetaSteps
				r0 = rhoBins - 1 - bestR
			}
			for dr := -houghSuppressRho; dr <= houghSuppressRho; dr++ {
				r := r0 + dr
				if r >= 0 && r < rhoBins {
					acc[t*rhoBins+r] = 0
				}
			}
		}
	}

	return peaks
}

// circleHit — сильнейшая окружность, найденная круговым преобразованием Хафа.
type circleHit struct {
	CenterX float64
	CenterY float64
	Radius  float64
	Votes   int
}

// houghCircles ищет окружности в диапазоне радиусов [rMin, rMax) с шагом
// rStep градиентным методом: каждый граничный пиксель голосует за два
// возможных центра вдоль направления своего градиента. Возвращается
// окружность с лучшей долей набранных голосов от длины своей окружности;
// ok=false, если ни одна не добрала minScore.
func houghCircles(e *edgeMap, rMin, rMax, rStep int, minScore float64) (circleHit, bool) {
	if rMin < 1 || rMin >= rMax {
		return circleHit{}, false
	}

	var best circleHit
	bestScore := 0.0
	acc := make([]int, e.width*e.height)

	for r := rMin; r < rMax; r += rStep {
		for i := range acc {
			acc[i] = 0
		}

		for y := 0; y < e.height; y++ {
			for x := 0; x < e.width; x++ {
				idx := y*e.width + x
				if !e.on[idx] {
					continue
				}
				norm := math.Hypot(e.gx[idx], e.gy[idx])
				if norm == 0 {
					continue
				}
				ux := e.gx[idx] / norm
				uy := e.gy[idx] / norm
				// Центр лежит по градиенту в обе стороны от границы.
				for _, sign := range [2]float64{1, -1} {
					cx := int(math.Round(float64(x) + sign*float64(r)*ux))
					cy := int(math.Round(float64(y) + sign*float64(r)*uy))
					if cx >= 0 && cx < e.width && cy >= 0 && cy < e.height {
						acc[cy*e.width+cx]++
					}
				}
			}
		}

		bestIdx, bestVotes := -1, 0
		for i, v := range acc {
			if v > bestVotes {
				bestIdx, bestVotes = i, v
			}
		}
		if bestIdx < 0 {
			continue
		}

		score := float64(bestVotes) / (2 * math.Pi * float64(r))
		if score > bestScore {
			bestScore = score
			best = circleHit{
				CenterX: float64(bestIdx % e.width),
				CenterY: float64(bestIdx / e.width),
				Radius:  float64(r),
				Votes:   bestVotes,
			}
		}
	}

	if bestScore < minScore {
		return circleHit{}, false
	}
	return best, true
}
