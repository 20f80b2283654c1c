// README: Prometheus collectors for the allocation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TripsCreated      prometheus.Counter
	TripCheckFailures *prometheus.CounterVec
	TripTransitions   *prometheus.CounterVec
	OpenMaintenance   prometheus.Gauge
)

func newCollectors() (prometheus.Counter, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Gauge) {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fleet_trips_created_total",
		Help: "Number of trips drafted with a successful reservation",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_trip_check_failures_total",
		Help: "Trip creations rejected by a constraint check",
	}, []string{"reason"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_trip_transitions_total",
		Help: "Committed trip status transitions",
	}, []string{"to"})
	open := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_open_maintenance_logs",
		Help: "Vehicles currently held in shop by an open maintenance log",
	})
	return created, failures, transitions, open
}

func init() {
	TripsCreated, TripCheckFailures, TripTransitions, OpenMaintenance = newCollectors()
	MustRegister(nil)
}

// MustRegister registers the engine collectors on reg, or on the default
// registerer when reg is nil.
func MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(TripsCreated, TripCheckFailures, TripTransitions, OpenMaintenance)
}
