package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// PricingDuration длительность расчета
	PricingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricing_duration_seconds",
			Help:    "Длительность расчета тарифов",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
		[]string{"tool_name"},
	)

	// BatchRows строки пакетного расчета
	BatchRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_rows_total",
			Help: "Строки пакетного расчета по статусу",
		},
		[]string{"status"},
	)

	// CacheLookups обращения к кэшу результатов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Обращения к кэшу результатов расчета",
		},
		[]string{"result"},
	)
)
