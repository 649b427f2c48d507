package payloads

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	LoadsTotal  prometheus.Counter
	SavesTotal  prometheus.Counter
	SweepsTotal prometheus.Counter
	SweptTotal  prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			LoadsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "plotforge_payloads_loads_total",
				Help: "Total number of chart payload loads",
			}),
			SavesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "plotforge_payloads_saves_total",
				Help: "Total number of chart payload saves",
			}),
			SweepsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "plotforge_payloads_sweeps_total",
				Help: "Total number of retention sweeps",
			}),
			SweptTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "plotforge_payloads_swept_payloads_total",
				Help: "Total number of payloads removed by retention sweeps",
			}),
		}
	})
	return metricsInstance
}

func (m *Metrics) RecordLoad() {
	if m == nil || m.LoadsTotal == nil {
		return
	}
	m.LoadsTotal.Inc()
}

func (m *Metrics) RecordSave() {
	if m == nil || m.SavesTotal == nil {
		return
	}
	m.SavesTotal.Inc()
}

func (m *Metrics) RecordSweep(removed int) {
	if m == nil {
		return
	}
	if m.SweepsTotal != nil {
		m.SweepsTotal.Inc()
	}
	if m.SweptTotal != nil && removed > 0 {
		m.SweptTotal.Add(float64(removed))
	}
}
