//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

// GoCVEngine — вариант движка на OpenCV. Конвейер тот же, что и у
// GaugeEngine, но растровые операции выполняет библиотека: на больших
// кадрах это заметно быстрее чистого Go.
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
	HoughVotes       int // порог голосов линейного преобразования Хафа
	CircleVotes      float64
}

// NewGoCVEngine создаёт движок с настройками по умолчанию.
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

// Read декодирует кадр и возвращает показание шкалы.
func (e *GoCVEngine) Read(ctx context.Context, imageData []byte, cal entity.Calibration) (entity.Reading, error) {
	_ = ctx

	gray, err := decodeGray(imageData)
	if err != nil {
		return entity.Undetected, err
	}
	defer gray.Close()

	// Приводим кадр к ограниченному размеру, как и чистый вариант.
	if gray.Cols() > e.MaxSide || gray.Rows() > e.MaxSide {
		scale := float64(e.MaxSide) / float64(maxInt(gray.Cols(), gray.Rows()))
		newW := int(float64(gray.Cols()) * scale)
		newH := int(float64(gray.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(gray, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		gray.Close()
		gray = resized
	}

	geom := e.estimateGeometry(gray)

	candidates := e.lineCandidates(gray, geom)
	candidates = append(candidates, e.thresholdCandidates(gray, geom)...)

	best, ok := entity.SelectNeedle(candidates)
	if !ok {
		return entity.Undetected, nil
	}
	return cal.ReadingFromAngle(best.Angle), nil
}

// estimateGeometry ищет круг циферблата детектором Хафа; при неудаче
// или в неявном режиме берётся центрированное допущение.
func (e *GoCVEngine) estimateGeometry(gray gocv.Mat) entity.GaugeGeometry {
	if !e.ExplicitGeometry {
		return entity.ImplicitGeometry(gray.Cols(), gray.Rows())
	}

	side := minInt(gray.Cols(), gray.Rows())
	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(blur, &circles, gocv.HoughGradient,
		1.5, float64(side)/2, float64(e.CannyHigh), e.CircleVotes, side/8, side/2)

	if circles.Cols() == 0 {
		return entity.ImplicitGeometry(gray.Cols(), gray.Rows())
	}

	// Первая окружность — сильнейшая.
	c := circles.GetVecfAt(0, 0)
	return entity.GaugeGeometry{
		CenterX:  float64(c[0]),
		CenterY:  float64(c[1]),
		Radius:   float64(c[2]),
		Measured: true,
	}
}

// lineCandidates — линейная стратегия: границы Кэнни плюс преобразование
// Хафа, прямые далеко от центра отбрасываются, оценка длины — близость
// прямой к оси вращения стрелки.
func (e *GoCVEngine) lineCandidates(gray gocv.Mat, g entity.GaugeGeometry) []entity.NeedleCandidate {
	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, e.CannyLow, e.CannyHigh)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLines(edges, &lines, 1, math.Pi/180, e.HoughVotes)

	var candidates []entity.NeedleCandidate
	for i := 0; i < lines.Rows() && i < e.MaxLinePeaks; i++ {
		v := lines.GetVecfAt(i, 0)
		rho := float64(v[0])
		theta := float64(v[1])

		cos := math.Cos(theta)
		sin := math.Sin(theta)
		dist := math.Abs(g.CenterX*cos + g.CenterY*sin - rho)
		if dist >= e.CenterDistRatio*g.Radius {
			continue
		}

		t := rho - (g.CenterX*cos + g.CenterY*sin)
		candidates = append(candidates, entity.NeedleCandidate{
			Angle:        theta,
			Length:       g.Radius - dist,
			CentroidX:    g.CenterX + t*cos,
			CentroidY:    g.CenterY + t*sin,
			DistToCenter: dist,
			Source:       "hough-line",
		})
	}
	return candidates
}

// thresholdCandidates — пороговая стратегия: бинаризация Оцу в обеих
// полярностях (под ИК-подсветкой контраст стрелки может быть инвертирован),
// морфологическое замыкание и поиск вытянутых контуров у центра.
func (e *GoCVEngine) thresholdCandidates(gray gocv.Mat, g entity.GaugeGeometry) []entity.NeedleCandidate {
	kernelSide := 2*e.ClosingRadius + 1
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(kernelSide, kernelSide))
	defer kernel.Close()

	var candidates []entity.NeedleCandidate
	for _, flag := range []gocv.ThresholdType{gocv.ThresholdBinaryInv, gocv.ThresholdBinary} {
		source := "threshold-dark"
		if flag == gocv.ThresholdBinary {
			source = "threshold-light"
		}

		mask := gocv.NewMat()
		gocv.Threshold(gray, &mask, 0, 255, flag|gocv.ThresholdOtsu)
		gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)

		contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
		for i := 0; i < contours.Size() && i < e.MaxRegions; i++ {
			contour := contours.At(i)
			area := gocv.ContourArea(contour)
			if area <= e.MinRegionArea {
				continue
			}

			rect := gocv.MinAreaRect(contour)
			major := float64(rect.Width)
			minor := float64(rect.Height)
			angle := rect.Angle
			if minor > major {
				major, minor = minor, major
				angle += 90
			}
			if major == 0 {
				continue
			}
			ecc := math.Sqrt(1 - (minor*minor)/(major*major))
			if ecc <= e.MinEccentricity {
				continue
			}

			cx := float64(rect.Center.X)
			cy := float64(rect.Center.Y)
			dx := cx - g.CenterX
			dy := cy - g.CenterY
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= g.Radius {
				continue
			}

			// Угол приводится к отсчёту от вертикали, как у пороговой
			// стратегии чистого движка.
			candidates = append(candidates, entity.NeedleCandidate{
				Angle:        (angle - 90) * math.Pi / 180,
				Length:       major,
				CentroidX:    cx,
				CentroidY:    cy,
				DistToCenter: dist,
				Source:       source,
			})
		}
		contours.Close()
		mask.Close()
	}
	return candidates
}

// decodeGray превращает байты изображения в одноканальный gocv.Mat.
func decodeGray(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadGrayScale)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), fmt.Errorf("%w: unreadable buffer", ErrDecode)
}

// Проверка реализации интерфейса
var _ port.GaugeReader = (*GoCVEngine)(nil)
