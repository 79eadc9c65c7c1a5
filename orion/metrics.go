package orion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	// handled lifecycle commands by command
	commands *prometheus.CounterVec

	framesDrawn prometheus.Counter
	workDrained prometheus.Counter

	// 1 while the delegate is in VR mode
	vrMode prometheus.Gauge

	frameDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visor_lifecycle_commands_total",
				Help: "Lifecycle commands handled, by command",
			},
			[]string{"command"},
		),

		framesDrawn: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "visor_frames_drawn_total",
				Help: "Frames drawn by the render loop",
			},
		),

		workDrained: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "visor_work_items_drained_total",
				Help: "Work items executed on the render thread",
			},
		),

		vrMode: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "visor_vr_mode",
				Help: "1 while the device is in VR mode, 0 otherwise",
			},
		),

		frameDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "visor_frame_duration_seconds",
				Help:    "Time between two drawn frames in seconds",
				Buckets: []float64{.004, .008, .011, .014, .017, .025, .033, .05, .1},
			},
		),
	}
}

func (m *metrics) observeVRMode(inVR bool) {
	if inVR {
		m.vrMode.Set(1)
	} else {
		m.vrMode.Set(0)
	}
}
