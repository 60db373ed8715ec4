package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gauge-reader/internal/domain/port"
)

// maxSnapshotSize ограничивает размер скачиваемого снимка.
const maxSnapshotSize = 32 << 20 // 32 МБ

// HTTPCamera получает снимки по настроенному snapshot-URL камеры.
type HTTPCamera struct {
	url    string
	client *http.Client
}

// NewHTTPCamera создаёт источник снимков по HTTP.
func NewHTTPCamera(url string, timeout time.Duration) *HTTPCamera {
	return &HTTPCamera{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Snapshot скачивает очередной кадр.
func (c *HTTPCamera) Snapshot(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch snapshot: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotSize))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return data, nil
}

// Проверка реализации интерфейса
var _ port.Snapshotter = (*HTTPCamera)(nil)
