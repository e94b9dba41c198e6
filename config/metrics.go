package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultLoaded  = "loaded"
	resultMissing = "missing"
	resultError   = "error"
)

type metrics struct {
	loads   *prometheus.CounterVec
	reloads prometheus.Counter
	cached  prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hjarta",
			Subsystem: "config",
			Name:      "section_loads_total",
			Help:      "Section loads by result.",
		}, []string{"result"}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hjarta",
			Subsystem: "config",
			Name:      "section_reloads_total",
			Help:      "Sections invalidated after a source change.",
		}),
		cached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hjarta",
			Subsystem: "config",
			Name:      "sections_cached",
			Help:      "Sections currently cached.",
		}),
	}

	for _, collector := range []prometheus.Collector{m.loads, m.reloads, m.cached} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering config metrics: %w", err)
		}
	}

	return m, nil
}

// The methods below are no-ops on a nil receiver so callers need no checks.

func (m *metrics) observeLoad(result string) {
	if m == nil {
		return
	}

	m.loads.WithLabelValues(result).Inc()
}

func (m *metrics) observeReload() {
	if m == nil {
		return
	}

	m.reloads.Inc()
}

func (m *metrics) setCached(count int) {
	if m == nil {
		return
	}

	m.cached.Set(float64(count))
}
