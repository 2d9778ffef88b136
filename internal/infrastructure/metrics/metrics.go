package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// WithdrawalMetrics holds the payout workflow metrics.
type WithdrawalMetrics struct {
	// Request creation, by result: created, rejected_validation, insufficient_balance, error
	WithdrawalsRequestedTotal  *prometheus.CounterVec
	WithdrawalsRequestedAmount prometheus.Counter

	// Transitions by target status
	WithdrawalsTransitionedTotal  *prometheus.CounterVec
	WithdrawalsTransitionedAmount *prometheus.CounterVec

	// Notification failures by stage: created, transitioned
	NotificationFailuresTotal *prometheus.CounterVec

	TransactionsReconciledTotal prometheus.Counter

	OperationDuration *prometheus.HistogramVec
}

func NewWithdrawalMetrics(reg prometheus.Registerer) *WithdrawalMetrics {
	factory := promauto.With(reg)
	return &WithdrawalMetrics{
		WithdrawalsRequestedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_withdrawals_requested_total",
				Help: "Withdrawal requests by result",
			},
			[]string{"result"},
		),
		WithdrawalsRequestedAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payout_withdrawals_requested_amount_total",
				Help: "Sum of amounts debited by created withdrawal requests",
			},
		),
		WithdrawalsTransitionedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_withdrawals_transitioned_total",
				Help: "Withdrawal status transitions by target status",
			},
			[]string{"status"},
		),
		WithdrawalsTransitionedAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_withdrawals_transitioned_amount_total",
				Help: "Sum of withdrawal amounts by target status",
			},
			[]string{"status"},
		),
		NotificationFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_notification_failures_total",
				Help: "Seller notifications that could not be delivered",
			},
			[]string{"stage"},
		),
		TransactionsReconciledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payout_transactions_reconciled_total",
				Help: "History entries appended by the reconciler",
			},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payout_operation_duration_seconds",
				Help:    "Duration of payout operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (m *WithdrawalMetrics) RecordRequested(result string, amount decimal.Decimal) {
	m.WithdrawalsRequestedTotal.WithLabelValues(result).Inc()
	if result == "created" {
		m.WithdrawalsRequestedAmount.Add(amount.InexactFloat64())
	}
}

func (m *WithdrawalMetrics) RecordTransitioned(status string, amount decimal.Decimal) {
	m.WithdrawalsTransitionedTotal.WithLabelValues(status).Inc()
	m.WithdrawalsTransitionedAmount.WithLabelValues(status).Add(amount.InexactFloat64())
}

func (m *WithdrawalMetrics) RecordNotificationFailure(stage string) {
	m.NotificationFailuresTotal.WithLabelValues(stage).Inc()
}

func (m *WithdrawalMetrics) RecordReconciled(n int) {
	m.TransactionsReconciledTotal.Add(float64(n))
}

func (m *WithdrawalMetrics) ObserveDuration(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
