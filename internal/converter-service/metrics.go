package converterservice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	conversions         prometheus.Counter
	persistenceFailures prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		conversions: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "currency_converter",
				Subsystem: "",
				Name:      "conversions_total",
				Help:      "total quantity of successful conversions",
			}),
		persistenceFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "currency_converter",
				Subsystem: "",
				Name:      "persistence_failures_total",
				Help:      "total quantity of conversion log writes that failed",
			}),
	}
}
