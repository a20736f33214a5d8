package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "klaster_dataset_loads_total",
		Help: "Dataset loads by outcome.",
	}, []string{"outcome"})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "klaster_dataset_load_seconds",
		Help:    "Time to fetch and decode the dataset.",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "klaster_dataset_cache_hits_total",
		Help: "Dataset documents served from redis.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "klaster_dataset_cache_misses_total",
		Help: "Dataset documents not found in redis.",
	})
)
