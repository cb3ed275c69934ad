package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the deterministic projection endpoint
	SimulateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scenario_simulate_latency_seconds",
		Help:    "Latency of scenario projection requests",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of projection runs, by endpoint
	SimulationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scenario_simulation_runs_total",
		Help: "Total number of simulation runs served",
	}, []string{"endpoint"})

	// Agent-months stepped by the ABM, to watch simulation cost
	AbmAgentSteps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "abm_agent_steps_total",
		Help: "Total number of agent-month steps executed by the ABM",
	})

	// Segmentation cache outcomes
	SegmentationCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "segmentation_cache_hits_total",
		Help: "Number of segmentation requests served from cache",
	})
)

func Init() {
	prometheus.MustRegister(
		SimulateLatency,
		SimulationRuns,
		AbmAgentSteps,
		SegmentationCacheHits,
	)
}
