package app

import (
	"context"
	"log"
	"time"
)

// Poller периодически запускает цикл опроса манометра.
// Распознавание — тяжёлая операция (до секунд на кадр), поэтому оно
// выполняется только в этой фоновой горутине и каждый цикл ограничен
// интервалом опроса.
type Poller struct {
	service  *GaugeService
	interval time.Duration
}

// NewPoller создаёт планировщик с заданным интервалом опроса.
func NewPoller(service *GaugeService, interval time.Duration) *Poller {
	return &Poller{service: service, interval: interval}
}

// Run выполняет первый цикл сразу, далее по тикеру до отмены контекста.
func (p *Poller) Run(ctx context.Context) error {
	p.cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle выполняет один опрос. Любой исход логируется; ошибки не
// прерывают планировщик.
func (p *Poller) cycle(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	reading, err := p.service.ProcessOnce(cctx)
	switch {
	case err != nil:
		log.Printf("Poll cycle failed: %v", err)
	case !reading.Detected:
		log.Printf("Needle not detected on this frame")
	default:
		log.Printf("Gauge reading: %.2f", reading.Value)
	}
}
