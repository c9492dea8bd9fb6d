package exporter

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	durations      *prometheus.SummaryVec
	resourcesTotal *prometheus.CounterVec
	skippedTotal   *prometheus.CounterVec
}

const (
	prometheusLabelContentType = "content_type"
	prometheusLabelReason      = "reason"
)

// skip reasons
const (
	reasonGate       = "gate"
	reasonConflict   = "conflict"
	reasonBody       = "body"
	reasonConversion = "conversion"
	reasonStore      = "store"
)

func setupMetrics(reg prometheus.Registerer) (m *metrics, err error) {
	m = &metrics{
		durations: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "exporter_resource_durations_seconds",
				Help:       "time to export a single resource including conversion",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{prometheusLabelContentType},
		),
		resourcesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exporter_resources_total",
				Help: "number of exported resources",
			},
			[]string{prometheusLabelContentType},
		),
		skippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exporter_skipped_total",
				Help: "number of resources, that were not exported",
			},
			[]string{prometheusLabelReason},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.durations, m.resourcesTotal, m.skippedTotal} {
		if errRegister := reg.Register(c); errRegister != nil {
			return nil, errRegister
		}
	}
	return m, nil
}
