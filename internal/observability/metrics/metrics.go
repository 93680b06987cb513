package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success  Outcome = "success"
	Rejected Outcome = "rejected"
	Error    Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	ledgerOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Number of ledger operations by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
	queueMessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_messages_total",
			Help: "Number of queue messages handled by queue and outcome.",
		},
		[]string{"queue", "outcome"},
	)
	stakedBalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_staked_balance",
			Help: "Total principal currently staked.",
		},
	)
	rewardPerTokenGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_reward_per_token_stored",
			Help: "Last persisted value of the reward-per-token accumulator.",
		},
	)
)

// Init registers the collectors and serves them on addr.
func Init(addr string) {
	once.Do(func() {
		initMetricsRouter(addr)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsAddr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		ledgerOperationCounter,
		queueMessageCounter,
		stakedBalanceGauge,
		rewardPerTokenGauge,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

func RecordLedgerOperation(action string, outcome Outcome) {
	ledgerOperationCounter.WithLabelValues(action, outcome.String()).Inc()
}

func RecordQueueMessage(queueName string, outcome Outcome) {
	queueMessageCounter.WithLabelValues(queueName, outcome.String()).Inc()
}

// SetLedgerState publishes the global state. Values above 2^53 lose
// precision in the float gauge.
func SetLedgerState(stakedBalance, rewardPerToken float64) {
	stakedBalanceGauge.Set(stakedBalance)
	rewardPerTokenGauge.Set(rewardPerToken)
}
