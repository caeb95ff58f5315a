package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNamePointsEarned      = "points_earned_total"
	MetricNamePointsSpent       = "points_spent_total"
	MetricNameDebitsDenied      = "wallet_debits_denied_total"
	MetricNameQuotesServed      = "pricing_quotes_served_total"
	MetricNamePurchasesSettled  = "wallet_purchases_settled_total"
	MetricNameAccountsCreated   = "wallet_accounts_created_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextPointsEarned     = "Total points credited to wallets"
	HelpTextPointsSpent      = "Total points debited from wallets"
	HelpTextDebitsDenied     = "Total debits denied for insufficient points"
	HelpTextQuotesServed     = "Total pricing quotes computed"
	HelpTextPurchasesSettled = "Total pending purchases settled, by outcome"
	HelpTextAccountsCreated  = "Total wallet accounts created, by role"
)

// Metric label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelAction  = "action"
	LabelOutcome = "outcome"
	LabelRole    = "role"
)

// HTTPLatencyBuckets for request duration histograms.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
