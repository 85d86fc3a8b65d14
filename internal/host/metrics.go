package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cricketarcade_deliveries_total",
		Help: "Resolved deliveries by outcome.",
	}, []string{"outcome"})

	planFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricketarcade_plan_failures_total",
		Help: "Delivery plan requests that failed.",
	})
)
