package port

import "context"

// Snapshotter интерфейс источника кадров с камеры.
type Snapshotter interface {
	// Snapshot возвращает очередной снимок в закодированном виде (JPEG/PNG)
	Snapshot(ctx context.Context) ([]byte, error)
}
