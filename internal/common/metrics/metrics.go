package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_queries_total",
			Help: "Total number of queries answered by the agent",
		},
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "agent_query_duration_seconds",
			Help: "Duration of full query pipelines in seconds",
		},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_llm_requests_total",
			Help: "Total number of language-model calls per stage",
		},
		[]string{"stage", "status"},
	)

	StageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_stage_fallbacks_total",
			Help: "Total number of times a pipeline stage degraded to its fallback",
		},
		[]string{"stage", "reason"},
	)

	CollectorInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_collector_invocations_total",
			Help: "Total number of collector invocations",
		},
		[]string{"collector", "status"},
	)
)
