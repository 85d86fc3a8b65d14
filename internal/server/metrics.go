package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricketarcade_sessions_created_total",
		Help: "Sessions opened through POST /session.",
	})

	plansServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cricketarcade_plans_total",
		Help: "Delivery plans served by ball type.",
	}, []string{"ball_type"})

	scoreUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricketarcade_score_updates_total",
		Help: "Accepted score reports.",
	})
)
