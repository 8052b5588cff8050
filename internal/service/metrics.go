package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики доменного слоя. Регистрируются в глобальном реестре prometheus.
var (
	manuscriptsUploadedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookcopy_manuscripts_uploaded_total",
		Help: "Total number of uploaded manuscripts by format.",
	}, []string{"format"})

	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookcopy_generations_total",
		Help: "Total number of AI generation requests by type and status.",
	}, []string{"type", "status"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookcopy_generation_duration_seconds",
		Help:    "Duration of AI generation requests.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"type"})
)
