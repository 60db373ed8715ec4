package container

import (
	"time"

	app "gauge-reader/internal/application"
	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

type Container struct {
	GaugeService *app.GaugeService
	Poller       *app.Poller
}

func New(camera port.Snapshotter, reader port.GaugeReader, store port.ReadingStore,
	notifier port.AlarmNotifier, cal entity.Calibration, alarms []entity.Alarm,
	interval time.Duration) *Container {
	gaugeService := app.NewGaugeService(camera, reader, store, notifier, cal, alarms)

	return &Container{
		GaugeService: gaugeService,
		Poller:       app.NewPoller(gaugeService, interval),
	}
}
