package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "progression_events_handled_total",
		Help: "Number of domain events handled, by event name.",
	}, []string{"event"})

	eventsIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "progression_events_ignored_total",
		Help: "Number of domain events ignored due to a disabled feature flag.",
	}, []string{"event"})

	processSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "progression_process_skips_total",
		Help: "Number of pre-emptively skipped process starts, by process definition.",
	}, []string{"process"})

	processStarts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "progression_process_starts_total",
		Help: "Number of started process instances, by process definition.",
	}, []string{"process"})

	processStartFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "progression_process_start_failures_total",
		Help: "Number of failed process starts, by process definition.",
	}, []string{"process"})
)
