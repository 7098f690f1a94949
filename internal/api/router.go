package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/pdv-demo/internal/inventory"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/metrics"
	"github.com/nikolayk812/pdv-demo/internal/notify"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"github.com/nikolayk812/pdv-demo/internal/sales"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/currency"
)

type Deps struct {
	Products  port.ProductRepository
	Inventory *inventory.Service
	Registers *Registers
	Sales     *sales.Service
	Formatter *notify.Formatter
	Notifier  port.Notifier
	Metrics   *metrics.CartMetrics
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer  prometheus.Gatherer
	Logger    *logger.Logger
	Currency  currency.Unit
	StoreName string
	Now       func() time.Time
}

func NewRouter(deps Deps) (http.Handler, error) {
	switch {
	case deps.Products == nil:
		return nil, fmt.Errorf("products is nil")
	case deps.Inventory == nil:
		return nil, fmt.Errorf("inventory is nil")
	case deps.Registers == nil:
		return nil, fmt.Errorf("registers is nil")
	case deps.Sales == nil:
		return nil, fmt.Errorf("sales is nil")
	case deps.Formatter == nil:
		return nil, fmt.Errorf("formatter is nil")
	}

	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(logg)
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	cur := deps.Currency
	if cur == (currency.Unit{}) {
		cur = currency.BRL
	}

	h := &handler{
		products:  deps.Products,
		inventory: deps.Inventory,
		registers: deps.Registers,
		sales:     deps.Sales,
		formatter: deps.Formatter,
		notifier:  notifier,
		metrics:   deps.Metrics,
		logg:      logg,
		currency:  cur,
		storeName: deps.StoreName,
		now:       now,
	}

	r := chi.NewRouter()
	r.Use(
		recoverer(logg),
		requestID(logg),
		logging(logg),
	)

	r.Get("/health", h.health)
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.searchProducts)
		r.Post("/products", h.createProduct)
		r.Get("/products/low-stock", h.lowStockProducts)
		r.Get("/products/{productID}", h.getProduct)
		r.Put("/products/{productID}", h.updateProduct)
		r.Delete("/products/{productID}", h.deleteProduct)

		r.Route("/registers/{registerID}", func(r chi.Router) {
			r.Use(registerContext(logg))

			r.Get("/cart", h.getCart)
			r.Delete("/cart", h.clearCart)
			r.Post("/cart/items", h.addItem)
			r.Put("/cart/items/{productID}", h.setQuantity)
			r.Delete("/cart/items/{productID}", h.removeItem)
			r.Post("/checkout", h.checkout)
		})

		r.Get("/sales/{saleID}", h.getSale)
		r.Get("/reports/sales", h.salesReport)
		r.Get("/reports/stock", h.stockReport)
	})

	return r, nil
}
