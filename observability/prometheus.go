// Package observability provides a prometheus/client_golang implementation
// of arenahash.MetricsObserver, following the pattern demonstrated in
// hupe1980/vecgo's observability example: counters for operation outcomes,
// gauges for point-in-time occupancy.
package observability

import (
	"github.com/gostonefire/arenahash"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver implements arenahash.MetricsObserver, exporting
// operation counts and arena/bucket occupancy as Prometheus metrics.
type PrometheusObserver struct {
	ops             *prometheus.CounterVec
	bucketsOccupied prometheus.Gauge
	bucketsTotal    prometheus.Gauge
	arenaUsedBytes  prometheus.Gauge
	arenaTotalBytes prometheus.Gauge
}

// NewPrometheusObserver builds a PrometheusObserver and registers its
// metrics against reg. Pass prometheus.DefaultRegisterer to expose them on
// the process-wide /metrics handler.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arenahash_operations_total",
			Help: "Total table operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		bucketsOccupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arenahash_buckets_occupied",
			Help: "Number of buckets currently holding at least one record.",
		}),
		bucketsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arenahash_buckets_total",
			Help: "Total number of buckets in the table.",
		}),
		arenaUsedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arenahash_arena_used_bytes",
			Help: "Arena bytes claimed by the bump pointer (never decreases).",
		}),
		arenaTotalBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arenahash_arena_total_bytes",
			Help: "Total arena bytes available for record data.",
		}),
	}

	reg.MustRegister(o.ops, o.bucketsOccupied, o.bucketsTotal, o.arenaUsedBytes, o.arenaTotalBytes)
	return o
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	switch err.(type) {
	case arenahash.NotFoundError:
		return "not_found"
	case arenahash.NoSpaceError:
		return "no_space"
	case arenahash.InvalidError:
		return "invalid"
	default:
		return "error"
	}
}

// OnInsert implements arenahash.MetricsObserver.
func (o *PrometheusObserver) OnInsert(err error) {
	o.ops.WithLabelValues("insert", outcome(err)).Inc()
}

// OnRemove implements arenahash.MetricsObserver.
func (o *PrometheusObserver) OnRemove(err error) {
	o.ops.WithLabelValues("remove", outcome(err)).Inc()
}

// OnRetrieve implements arenahash.MetricsObserver.
func (o *PrometheusObserver) OnRetrieve(found bool) {
	if found {
		o.ops.WithLabelValues("retrieve", "success").Inc()
	} else {
		o.ops.WithLabelValues("retrieve", "not_found").Inc()
	}
}

// OnArenaUsage implements arenahash.MetricsObserver.
func (o *PrometheusObserver) OnArenaUsage(usedBytes, totalBytes uint64) {
	o.arenaUsedBytes.Set(float64(usedBytes))
	o.arenaTotalBytes.Set(float64(totalBytes))
}

// OnBucketsOccupied implements arenahash.MetricsObserver.
func (o *PrometheusObserver) OnBucketsOccupied(occupied, total uint32) {
	o.bucketsOccupied.Set(float64(occupied))
	o.bucketsTotal.Set(float64(total))
}
