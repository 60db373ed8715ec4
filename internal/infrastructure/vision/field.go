package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Поддерживаемые форматы снимков.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// ErrDecode — байты не удалось разобрать как изображение. Единственная
// жёсткая ошибка конвейера: она означает проблему на стороне камеры,
// а не неудачу распознавания.
var ErrDecode = errors.New("failed to decode image")

// ImageField — одноканальное поле яркости в диапазоне [0,1].
// После создания не изменяется.
type ImageField struct {
	Width  int
	Height int
	Pix    []float64 // построчно, длина Width*Height
}

// NewImageField создаёт пустое поле заданного размера.
func NewImageField(width, height int) *ImageField {
	return &ImageField{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At возвращает яркость пикселя. Границы не проверяются.
func (f *ImageField) At(x, y int) float64 {
	return f.Pix[y*f.Width+x]
}

// Set записывает яркость пикселя.
func (f *ImageField) Set(x, y int, v float64) {
	f.Pix[y*f.Width+x] = v
}

// DecodeField декодирует JPEG/PNG/BMP в поле яркости. Цветные снимки
// переводятся в серый взвешенной суммой каналов, альфа-канал отбрасывается.
// Кадры крупнее maxSide по большей стороне уменьшаются, чтобы стоимость
// обработки оставалась ограниченной.
func DecodeField(data []byte, maxSide int) (*ImageField, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrDecode)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if maxSide > 0 {
		img = downscale(img, maxSide)
	}

	return fieldFromImage(img), nil
}

// downscale уменьшает изображение до maxSide по большей стороне.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(maxInt(w, h))
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// fieldFromImage переводит изображение в поле яркости по формуле Rec.601.
func fieldFromImage(img image.Image) *ImageField {
	b := img.Bounds()
	f := NewImageField(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 65535.0
			f.Set(x, y, lum)
		}
	}
	return f
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
