package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "taloyhtio_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	planGenerateTotal   *prometheus.CounterVec
	planGenerateLatency *prometheus.HistogramVec

	planExportTotal   *prometheus.CounterVec
	planExportLatency *prometheus.HistogramVec

	scoreRunTotal   *prometheus.CounterVec
	scoreRunLatency *prometheus.HistogramVec

	forecastRunTotal   *prometheus.CounterVec
	forecastRunLatency *prometheus.HistogramVec

	financingCalcTotal *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		planGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_generate_total",
				Help: "Total renovation plan builds by result",
			},
			[]string{"result"},
		)
		planGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "plan_generate_latency_seconds",
				Help:    "Renovation plan build latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		planExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_export_total",
				Help: "Total plan export operations by format and result",
			},
			[]string{"format", "result"},
		)
		planExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "plan_export_latency_seconds",
				Help:    "Plan export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		scoreRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "score_run_total",
				Help: "Total scoring runs by result",
			},
			[]string{"result"},
		)
		scoreRunLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "score_run_latency_seconds",
				Help:    "Scoring run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		forecastRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "forecast_run_total",
				Help: "Total forecast simulations by result",
			},
			[]string{"result"},
		)
		forecastRunLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "forecast_run_latency_seconds",
				Help:    "Forecast simulation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		financingCalcTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "financing_calc_total",
				Help: "Total financing calculations by kind and result",
			},
			[]string{"kind", "result"},
		)

		prometheus.MustRegister(
			planGenerateTotal,
			planGenerateLatency,
			planExportTotal,
			planExportLatency,
			scoreRunTotal,
			scoreRunLatency,
			forecastRunTotal,
			forecastRunLatency,
			financingCalcTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObservePlanGenerate records plan build latency and result.
func ObservePlanGenerate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if planGenerateTotal != nil {
		planGenerateTotal.WithLabelValues(result).Inc()
	}
	if planGenerateLatency != nil {
		planGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObservePlanExport records export latency and result.
func ObservePlanExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if planExportTotal != nil {
		planExportTotal.WithLabelValues(format, result).Inc()
	}
	if planExportLatency != nil {
		planExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveScoreRun records scoring run latency and result.
func ObserveScoreRun(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if scoreRunTotal != nil {
		scoreRunTotal.WithLabelValues(result).Inc()
	}
	if scoreRunLatency != nil {
		scoreRunLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveForecastRun records forecast simulation latency and result.
func ObserveForecastRun(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if forecastRunTotal != nil {
		forecastRunTotal.WithLabelValues(result).Inc()
	}
	if forecastRunLatency != nil {
		forecastRunLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncFinancingCalc increments financing calculation counters.
func IncFinancingCalc(kind, result string) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if financingCalcTotal != nil {
		financingCalcTotal.WithLabelValues(kind, result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
