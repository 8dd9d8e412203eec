package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mishura_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_ai_requests_total",
			Help: "Total number of model requests by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mishura_ai_request_duration_seconds",
			Help:    "Model request duration in seconds, retries included",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"operation"},
	)

	AIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_ai_retries_total",
			Help: "Total number of model request retries",
		},
		[]string{"operation"},
	)

	AnalysisCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_analysis_cache_total",
			Help: "Analysis cache lookups by result",
		},
		[]string{"result"},
	)

	ConsultationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_consultations_total",
			Help: "Total number of recorded consultations",
		},
		[]string{"kind"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_payments_total",
			Help: "Payments by gateway and resulting status",
		},
		[]string{"gateway", "status"},
	)

	BalanceCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mishura_balance_credited_total",
			Help: "Total number of STCoins credited from payments",
		},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishura_webhook_events_total",
			Help: "Payment webhook events by type and handling result",
		},
		[]string{"event", "result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAIRequest(operation, outcome string, duration float64) {
	AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	AIRequestDuration.WithLabelValues(operation).Observe(duration)
}

func RecordAIRetry(operation string) {
	AIRetriesTotal.WithLabelValues(operation).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		AnalysisCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	AnalysisCacheTotal.WithLabelValues("miss").Inc()
}

func RecordConsultation(kind string) {
	ConsultationsTotal.WithLabelValues(kind).Inc()
}

func RecordPayment(gateway, status string) {
	PaymentsTotal.WithLabelValues(gateway, status).Inc()
}

func RecordBalanceCredit(stcoins int64) {
	BalanceCreditedTotal.Add(float64(stcoins))
}

func RecordWebhookEvent(event, result string) {
	WebhookEventsTotal.WithLabelValues(event, result).Inc()
}
