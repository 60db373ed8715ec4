package camera

import (
	"context"
	"fmt"
	"os"

	"gauge-reader/internal/domain/port"
)

// FileCamera читает снимок из файла. Удобна для камер, складывающих
// кадры на диск, и для отладки без живой камеры.
type FileCamera struct {
	path string
}

// NewFileCamera создаёт файловый источник снимков.
func NewFileCamera(path string) *FileCamera {
	return &FileCamera{path: path}
}

// Snapshot возвращает текущее содержимое файла со снимком.
func (c *FileCamera) Snapshot(ctx context.Context) ([]byte, error) {
	_ = ctx
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

// Проверка реализации интерфейса
var _ port.Snapshotter = (*FileCamera)(nil)
