package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics.
type Metrics struct {
	BuildInfo      *prometheus.GaugeVec
	BracketsLoaded prometheus.Gauge
}

// New creates and registers the metrics with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildInfo: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ageutil_build_info",
			Help: "Build information, always 1",
		}, []string{"version", "go_version", "environment"}),
		BracketsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "ageutil_brackets_loaded",
			Help: "Number of brackets in the active catalog",
		}),
	}
}

func (m *Metrics) SetBuildInfo(version, environment string) {
	m.BuildInfo.WithLabelValues(version, runtime.Version(), environment).Set(1)
}

func (m *Metrics) SetBracketsLoaded(count int) {
	m.BracketsLoaded.Set(float64(count))
}
