package vision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOtsuThreshold_Bimodal(t *testing.T) {
	f := NewImageField(10, 10)
	for i := range f.Pix {
		if i < 50 {
			f.Pix[i] = 0.2
		} else {
			f.Pix[i] = 0.8
		}
	}

	th := otsuThreshold(f)

	// Порог ложится на тёмную моду и отделяет её от светлой.
	require.InDelta(t, 0.2, th, 0.01)
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	th := otsuThreshold(uniformField(8, 8, 0.5))
	require.InDelta(t, 0.5, th, 0.01)
}

func TestBinarize_Polarities(t *testing.T) {
	f := NewImageField(3, 1)
	f.Pix = []float64{0.1, 0.5, 0.9}

	dark := binarize(f, 0.5, true)
	require.True(t, dark.at(0, 0))
	require.True(t, dark.at(1, 0), "значение на пороге относится к тёмной маске")
	require.False(t, dark.at(2, 0))

	light := binarize(f, 0.5, false)
	require.False(t, light.at(0, 0))
	require.False(t, light.at(1, 0))
	require.True(t, light.at(2, 0))
}

func TestLabelComponents(t *testing.T) {
	m := newBinaryMask(8, 4)
	// Первая компонента — два пикселя по диагонали (8-связность).
	m.pix[0*8+1] = true
	m.pix[1*8+2] = true
	// Вторая компонента — отдельный пиксель.
	m.pix[3*8+6] = true

	labels, count := labelComponents(m)

	require.Equal(t, 2, count)
	require.Equal(t, 1, labels[0*8+1])
	require.Equal(t, 1, labels[1*8+2])
	require.Equal(t, 2, labels[3*8+6])
}

func TestRemoveSmallObjects(t *testing.T) {
	m := newBinaryMask(12, 6)
	for x := 1; x <= 6; x++ {
		m.pix[2*12+x] = true // 6 пикселей
	}
	m.pix[5*12+10] = true
	m.pix[5*12+11] = true // 2 пикселя

	removeSmallObjects(m, 5)

	require.True(t, m.at(3, 2))
	require.False(t, m.at(10, 5))
	require.False(t, m.at(11, 5))
}

func TestCloseDisk_BridgesGap(t *testing.T) {
	m := newBinaryMask(20, 7)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 8; x++ {
			m.pix[y*20+x] = true
		}
		for x := 11; x <= 17; x++ {
			m.pix[y*20+x] = true
		}
	}

	closed := closeDisk(m, 2)

	// Исходные пиксели сохранились, разрыв зарос.
	for x := 2; x <= 17; x++ {
		require.True(t, closed.at(x, 3), "x=%d", x)
	}

	_, count := labelComponents(closed)
	require.Equal(t, 1, count)
}

func TestMeasureRegions_HorizontalBar(t *testing.T) {
	m := newBinaryMask(30, 12)
	for y := 3; y <= 6; y++ {
		for x := 5; x <= 24; x++ {
			m.pix[y*30+x] = true
		}
	}

	labels, count := labelComponents(m)
	regions := measureRegions(m, labels, count, 64)
	require.Len(t, regions, 1)

	r := regions[0]
	require.Equal(t, 80, r.Area)
	require.InDelta(t, 14.5, r.CentroidX, 1e-9)
	require.InDelta(t, 4.5, r.CentroidY, 1e-9)
	require.InDelta(t, 0.981, r.Eccentricity, 0.001)
	require.InDelta(t, 23.07, r.MajorAxis, 0.01)
	// Большая ось горизонтальна, то есть повернута на -90° от вертикали.
	require.InDelta(t, -math.Pi/2, r.Orientation, 1e-9)
}

func TestMeasureRegions_VerticalBar(t *testing.T) {
	m := newBinaryMask(12, 30)
	for y := 5; y <= 24; y++ {
		for x := 3; x <= 6; x++ {
			m.pix[y*12+x] = true
		}
	}

	labels, count := labelComponents(m)
	regions := measureRegions(m, labels, count, 64)
	require.Len(t, regions, 1)

	r := regions[0]
	require.InDelta(t, 0, r.Orientation, 1e-9)
	require.InDelta(t, 23.07, r.MajorAxis, 0.01)
}

func TestMeasureRegions_RespectsLimit(t *testing.T) {
	m := newBinaryMask(20, 3)
	for i := 0; i < 5; i++ {
		m.pix[i*4] = true // пять двухпиксельных компонент в верхней строке
		m.pix[i*4+1] = true
	}

	labels, count := labelComponents(m)
	require.Equal(t, 5, count)

	regions := measureRegions(m, labels, count, 3)
	require.Len(t, regions, 3)
}
