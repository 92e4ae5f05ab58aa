package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Deposit metrics
	DepositsInitiated prometheus.Counter
	DepositsConfirmed prometheus.Counter
	DepositsFailed    prometheus.Counter
	DepositAmount     prometheus.Histogram

	// Transfer metrics
	TransfersPosted prometheus.Counter
	TransferAmount  prometheus.Histogram
	TransferErrors  *prometheus.CounterVec

	// Wallet metrics
	WalletsCreated prometheus.Counter

	// Webhook metrics
	WebhookEvents *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_deposits_initiated_total",
			Help: "Total number of deposit intents created",
		}),
		DepositsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_deposits_confirmed_total",
			Help: "Total number of deposits credited",
		}),
		DepositsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_deposits_failed_total",
			Help: "Total number of deposits that ended failed",
		}),
		DepositAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_deposit_amount",
			Help:    "Deposit amounts in major units",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 100000, 1000000},
		}),

		TransfersPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_posted_total",
			Help: "Total number of transfers posted",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_transfer_amount",
			Help:    "Transfer amounts in major units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_wallets_created_total",
			Help: "Total number of wallets created",
		}),

		WebhookEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_webhook_events_total",
				Help: "Total provider webhook deliveries by outcome",
			},
			[]string{"outcome"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
