package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics records ledger activity per transaction type.
type StockMetrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewStockMetrics registers the stock engine metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_transactions_applied_total",
		Help: "Accepted stock transactions by type.",
	}, []string{"type", "automatic"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_transactions_rejected_total",
		Help: "Rejected stock transactions by error code.",
	}, []string{"type", "code"})
	reg.MustRegister(applied, rejected)
	return &StockMetrics{
		applied:  applied,
		rejected: rejected,
	}
}

// IncApplied increments the accepted counter for the transaction type.
func (s *StockMetrics) IncApplied(txType string, automatic bool) {
	if s == nil || s.applied == nil {
		return
	}
	auto := "false"
	if automatic {
		auto = "true"
	}
	s.applied.WithLabelValues(normalizeLabel(txType), auto).Inc()
}

// IncRejected increments the rejection counter for the transaction type.
func (s *StockMetrics) IncRejected(txType string, code string) {
	if s == nil || s.rejected == nil {
		return
	}
	s.rejected.WithLabelValues(normalizeLabel(txType), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
