// Package metrics defines the Prometheus instrumentation shared across the
// engine. Collectors register themselves on the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quranlex"

var (
	// DispatchTotal counts dispatched questions by question type slug.
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_total",
		Help:      "Dispatched questions by question type.",
	}, []string{"question_type"})

	// DispatchFailures counts dispatches that ended with an error message,
	// including unknown slugs.
	DispatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_failures_total",
		Help:      "Dispatches that halted with an error message.",
	}, []string{"question_type"})

	// MatchTotal counts successful word matches by tier.
	MatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_total",
		Help:      "Successful corpus matches by tier.",
	}, []string{"kind"})

	// MatchCacheHits and MatchCacheMisses track the match cache.
	MatchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_cache_hits_total",
		Help:      "Match cache hits.",
	})
	MatchCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_cache_misses_total",
		Help:      "Match cache misses.",
	})

	// Corpus size gauges, set once after loading.
	CorpusTokens = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "corpus_tokens",
		Help:      "Morphology tokens loaded.",
	})
	CorpusWords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "corpus_words",
		Help:      "Verse words loaded.",
	})
	GlossaryEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "glossary_entries",
		Help:      "Root glossary entries loaded.",
	})
	DictionaryEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dictionary_entries",
		Help:      "Dictionary entries loaded.",
	})
)
