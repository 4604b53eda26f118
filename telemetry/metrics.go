package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FailureLoad    = "load"
	FailureDecode  = "decode"
	FailureCompute = "compute"
)

var (
	casesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_cases_processed",
		Help: "Test cases whose secret was recovered",
	})
	casesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recovery_cases_failed",
		Help: "Test cases that failed, by failure kind",
	}, []string{"kind"})
	subsetsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_subsets_evaluated",
		Help: "Point subsets interpolated at zero",
	})
	incorrectRoots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_incorrect_roots",
		Help: "Points reported as inconsistent",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recovery_cache_hits",
		Help: "Test cases answered from the result cache",
	})
)

func IncrementCasesProcessed() {
	casesProcessed.Inc()
}

func IncrementCasesFailed(kind string) {
	casesFailed.WithLabelValues(kind).Inc()
}

func IncrementSubsetsEvaluated() {
	subsetsEvaluated.Inc()
}

func AddIncorrectRoots(n int) {
	incorrectRoots.Add(float64(n))
}

func IncrementCacheHits() {
	cacheHits.Inc()
}
