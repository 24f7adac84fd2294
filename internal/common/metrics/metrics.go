package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datagen_records_generated_total",
			Help: "Total number of synthetic records generated",
		},
		[]string{"kind", "mode"},
	)

	PopulationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datagen_population_duration_seconds",
			Help:    "Wall-clock duration of a population run",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"mode"},
	)

	CorpusSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "datagen_corpus_size",
			Help: "Number of records currently held in the corpus",
		},
		[]string{"kind"},
	)

	UnparseableAmounts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datagen_unparseable_amounts_total",
			Help: "Budget or turnover strings skipped during aggregation",
		},
		[]string{"field"},
	)

	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datagen_publish_total",
			Help: "Corpus publish attempts per sink",
		},
		[]string{"sink", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job execution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)
)
