package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	PointsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsEarned,
			Help: HelpTextPointsEarned,
		},
	)

	PointsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsSpent,
			Help: HelpTextPointsSpent,
		},
	)

	DebitsDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDebitsDenied,
			Help: HelpTextDebitsDenied,
		},
	)

	QuotesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuotesServed,
			Help: HelpTextQuotesServed,
		},
		[]string{LabelAction},
	)

	PurchasesSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesSettled,
			Help: HelpTextPurchasesSettled,
		},
		[]string{LabelOutcome},
	)

	AccountsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAccountsCreated,
			Help: HelpTextAccountsCreated,
		},
		[]string{LabelRole},
	)
)
