package port

import (
	"context"

	"gauge-reader/internal/domain/entity"
)

// GaugeReader интерфейс движка распознавания манометра.
//
// Ошибка возвращается только для структурно невалидного входа
// (байты не являются изображением). Если стрелка просто не найдена,
// возвращается entity.Undetected без ошибки.
type GaugeReader interface {
	// Read анализирует кадр и возвращает показание шкалы
	Read(ctx context.Context, imageData []byte, cal entity.Calibration) (entity.Reading, error)
}
