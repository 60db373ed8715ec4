package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func uniformField(width, height int, v float64) *ImageField {
	f := NewImageField(width, height)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

func TestGaussianKernel(t *testing.T) {
	k := gaussianKernel(1.4)

	require.Equal(t, 1, len(k)%2, "ядро должно иметь нечётную длину")

	sum := 0.0
	for _, v := range k {
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-9)

	for i := 0; i < len(k)/2; i++ {
		require.InDelta(t, k[i], k[len(k)-1-i], 1e-12)
	}
}

func TestGaussianBlur_PreservesConstant(t *testing.T) {
	f := uniformField(20, 15, 0.5)

	out := gaussianBlur(f, 1.4)

	for i, v := range out.Pix {
		require.InDelta(t, 0.5, v, 1e-9, "pix %d", i)
	}
}

func TestCanny_Uniform(t *testing.T) {
	e := canny(uniformField(30, 30, 0.5), 1.4, 0.1, 0.3)

	for _, on := range e.on {
		require.False(t, on)
	}
}

func TestCanny_StepEdge(t *testing.T) {
	f := NewImageField(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				f.Set(x, y, 0.2)
			} else {
				f.Set(x, y, 0.8)
			}
		}
	}

	e := canny(f, 1.4, 0.1, 0.3)

	// Граница проходит вертикально вблизи x=20 и нигде больше.
	foundNearStep := false
	for y := 5; y < 35; y++ {
		for x := 0; x < 40; x++ {
			if !e.at(x, y) {
				continue
			}
			require.InDelta(t, 19.5, float64(x), 3, "граница найдена далеко от перепада: x=%d y=%d", x, y)
			foundNearStep = true
		}
	}
	require.True(t, foundNearStep, "перепад яркости не нашёлся")
}

func TestSobel_GradientDirection(t *testing.T) {
	f := NewImageField(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			f.Set(x, y, float64(x)/10)
		}
	}

	gx, gy := sobel(f)

	// Яркость растёт вправо: gx положителен, gy близок к нулю.
	idx := 5*10 + 5
	require.Greater(t, gx[idx], 0.0)
	require.InDelta(t, 0, gy[idx], 1e-9)
}
