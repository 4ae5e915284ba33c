package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of a full suggestion batch, including matchup loading
	SuggestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draft_suggest_latency_seconds",
		Help:    "Latency of draft suggestion requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	SuggestRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_suggest_requests_total",
		Help: "Total number of draft suggestion requests",
	}, []string{"procedure"})

	// Candidates that fell back to the neutral score
	DegradedSuggestions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "draft_degraded_suggestions_total",
		Help: "Suggestions served with limited analysis",
	})

	MatchupFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "opendota_matchup_fetches_total",
		Help: "Matchup lookups by source (cache, api, error)",
	}, []string{"source"})

	HeroSyncs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "opendota_hero_syncs_total",
		Help: "Hero stat syncs by result",
	}, []string{"result"})

	HeuristicsReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "heuristics_reloads_total",
		Help: "Heuristic table reloads by result",
	}, []string{"result"})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			SuggestLatency,
			SuggestRequests,
			DegradedSuggestions,
			MatchupFetches,
			HeroSyncs,
			HeuristicsReloads,
		)
	})
}
