package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TrialsTotal counts timed protocol trials, labeled by outcome.
	TrialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mpcbench_trials_total",
		Help: "Number of timed protocol trials executed.",
	}, []string{"outcome"})

	// TrialDuration tracks wall-clock duration of timed trials.
	TrialDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mpcbench_trial_duration_seconds",
		Help:    "Wall-clock duration of timed protocol trials.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	// PointsEvaluated counts fully aggregated benchmark points.
	PointsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mpcbench_points_evaluated_total",
		Help: "Number of benchmark parameter points aggregated.",
	})
)

// RecordTrial updates the trial metrics for one timed execution.
func RecordTrial(seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TrialsTotal.WithLabelValues(outcome).Inc()
	if err == nil {
		TrialDuration.Observe(seconds)
	}
}

// StartMetricsServer exposes Prometheus metrics on the given port. Long
// sweeps can be watched from outside; the server is opt-in since a benchmark
// run is otherwise a plain batch process.
func StartMetricsServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
}
