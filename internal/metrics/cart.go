package metrics

import (
	"strings"

	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// CartMetrics records cart operations and finalized sales. A nil receiver is a no-op.
type CartMetrics struct {
	operations *prometheus.CounterVec
	sales      *prometheus.CounterVec
	amount     *prometheus.HistogramVec
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_cart_operations_total",
		Help: "Cart operations by outcome.",
	}, []string{"operation", "result"})
	sales := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_sales_total",
		Help: "Recorded sales by payment method.",
	}, []string{"payment_method"})
	amount := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdv_sales_amount",
		Help:    "Total amount of recorded sales.",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"currency"})
	reg.MustRegister(operations, sales, amount)
	return &CartMetrics{
		operations: operations,
		sales:      sales,
		amount:     amount,
	}
}

func (c *CartMetrics) ObserveOperation(operation, result string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), result).Inc()
}

func (c *CartMetrics) ObserveSale(sale domain.CompletedSale) {
	if c == nil || c.sales == nil || c.amount == nil {
		return
	}
	c.sales.WithLabelValues(normalizeLabel(string(sale.PaymentMethod))).Inc()
	c.amount.WithLabelValues(sale.Total.Currency.String()).Observe(sale.Total.Amount.InexactFloat64())
}

func normalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	return value
}
