package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/cart"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/inventory"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/metrics"
	"github.com/nikolayk812/pdv-demo/internal/notify"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"github.com/nikolayk812/pdv-demo/internal/sales"
	"golang.org/x/text/currency"
)

const maxQueryLen = 100

type handler struct {
	products  port.ProductRepository
	inventory *inventory.Service
	registers *Registers
	sales     *sales.Service
	formatter *notify.Formatter
	notifier  port.Notifier
	metrics   *metrics.CartMetrics
	logg      *logger.Logger
	currency  currency.Unit
	storeName string
	now       func() time.Time
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

func (h *handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) > maxQueryLen {
		writeError(r.Context(), h.logg, w, &requestError{msg: "query is too long"}, nil)
		return
	}

	products, err := h.products.SearchProducts(r.Context(), query)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newProductDTOs(h.formatter, products), nil)
}

func (h *handler) lowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.LowStockProducts(r.Context())
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newProductDTOs(h.formatter, products), nil)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newProductDTO(h.formatter, product), nil)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	const op = "product_create"

	var body productRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	product, err := body.toDomain(uuid.Nil, h.currency)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	product, err = h.inventory.Create(r.Context(), product)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}

	h.respondProduct(w, r, op, http.StatusCreated, product, h.formatter.ProductSaved(product, true))
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "product_update"

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var body productRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	product, err := body.toDomain(productID, h.currency)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	product, err = h.inventory.Update(r.Context(), product)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}

	h.respondProduct(w, r, op, http.StatusOK, product, h.formatter.ProductSaved(product, false))
}

// deleteProduct also takes the product out of every open cart.
func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "product_delete"

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.inventory.Delete(r.Context(), productID)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}

	if carts := h.registers.RemoveProduct(productID); carts > 0 {
		h.logg.Info(h.logg.WithField(r.Context(), "carts", carts), "deleted product dropped from open carts")
	}

	h.respondProduct(w, r, op, http.StatusOK, product, h.formatter.ProductRemoved(product))
}

func (h *handler) stockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.inventory.StockReport(r.Context(), h.currency)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newStockReportDTO(h.formatter, report), nil)
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	registerID, engine, ok := h.engine(w, r, false)
	if !ok {
		return
	}

	view, err := h.cartView(r.Context(), registerID, engine)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, view, nil)
}

func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	const op = "add_item"

	registerID, engine, ok := h.engine(w, r, true)
	if !ok {
		return
	}

	var body addItemRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		writeError(r.Context(), h.logg, w, &requestError{msg: "invalid productId", err: err}, nil)
		return
	}

	line, err := engine.AddItem(r.Context(), productID)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	h.respond(w, r, op, http.StatusOK, registerID, engine, h.formatter.ItemAdded(product, line.Quantity))
}

func (h *handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "set_quantity"

	registerID, engine, ok := h.engine(w, r, false)
	if !ok {
		return
	}

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var body setQuantityRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	if err := engine.SetQuantity(r.Context(), productID, *body.Quantity); err != nil {
		h.reject(w, r, op, err)
		return
	}

	n := h.formatter.QuantityUpdated()
	if *body.Quantity == 0 {
		n = h.formatter.ItemRemoved()
	}

	h.respond(w, r, op, http.StatusOK, registerID, engine, n)
}

func (h *handler) removeItem(w http.ResponseWriter, r *http.Request) {
	registerID, engine, ok := h.engine(w, r, false)
	if !ok {
		return
	}

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	engine.RemoveItem(productID)

	h.respond(w, r, "remove_item", http.StatusOK, registerID, engine, h.formatter.ItemRemoved())
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	registerID, engine, ok := h.engine(w, r, false)
	if !ok {
		return
	}

	engine.Clear()

	h.respond(w, r, "clear", http.StatusOK, registerID, engine, h.formatter.CartCleared())
}

func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	const op = "finalize"

	_, engine, ok := h.engine(w, r, false)
	if !ok {
		return
	}

	var body checkoutRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(body.PaymentMethod)))

	sale, err := engine.Finalize(r.Context(), method)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}

	if err := h.sales.Record(r.Context(), sale); err != nil {
		if restoreErr := engine.Restore(sale); restoreErr != nil {
			h.logg.Error(r.Context(), "cart restore failed", restoreErr)
		}
		h.reject(w, r, op, err)
		return
	}

	n := h.formatter.SaleFinalized(sale)
	h.notifier.Notify(r.Context(), n)
	h.metrics.ObserveOperation(op, metrics.ResultOK)

	writeSuccess(w, http.StatusCreated, newSaleDTO(h.formatter, h.storeName, sale), &n)
}

func (h *handler) getSale(w http.ResponseWriter, r *http.Request) {
	saleID, err := uuid.Parse(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(r.Context(), h.logg, w, &requestError{msg: "invalid saleID", err: err}, nil)
		return
	}

	sale, err := h.sales.Get(r.Context(), saleID)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newSaleDTO(h.formatter, h.storeName, sale), nil)
}

// salesReport defaults to the current UTC day when from/to are omitted.
func (h *handler) salesReport(w http.ResponseWriter, r *http.Request) {
	today := h.now().UTC().Truncate(24 * time.Hour)

	from, err := parseTimeParam(r, "from", today)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	to, err := parseTimeParam(r, "to", from.Add(24*time.Hour))
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	if !from.Before(to) {
		writeError(r.Context(), h.logg, w, &requestError{msg: "from must be before to"}, nil)
		return
	}

	report, err := h.sales.Report(r.Context(), from, to, h.currency)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, http.StatusOK, newReportDTO(h.formatter, report), nil)
}

// engine resolves the register's cart. Only writes that put items in a cart
// pass create; the others see a detached empty cart for unknown registers.
func (h *handler) engine(w http.ResponseWriter, r *http.Request, create bool) (string, *cart.Engine, bool) {
	registerID := strings.TrimSpace(chi.URLParam(r, "registerID"))

	lookup := h.registers.Peek
	if create {
		lookup = h.registers.Get
	}

	engine, err := lookup(registerID)
	if err != nil {
		if errors.Is(err, errInvalidRegisterID) {
			err = &requestError{msg: "invalid registerID", err: err}
		}
		writeError(r.Context(), h.logg, w, err, nil)
		return "", nil, false
	}

	return registerID, engine, true
}

func (h *handler) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(r.Context(), h.logg, w, &requestError{msg: "invalid productID", err: err}, nil)
		return uuid.Nil, false
	}

	return productID, true
}

// respond sends the operator notification and answers with the current cart.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, op string, status int, registerID string, engine *cart.Engine, n domain.Notification) {
	h.notifier.Notify(r.Context(), n)
	h.metrics.ObserveOperation(op, metrics.ResultOK)

	view, err := h.cartView(r.Context(), registerID, engine)
	if err != nil {
		writeError(r.Context(), h.logg, w, err, nil)
		return
	}

	writeSuccess(w, status, view, &n)
}

func (h *handler) respondProduct(w http.ResponseWriter, r *http.Request, op string, status int, product domain.Product, n domain.Notification) {
	h.notifier.Notify(r.Context(), n)
	h.metrics.ObserveOperation(op, metrics.ResultOK)

	writeSuccess(w, status, newProductDTO(h.formatter, product), &n)
}

func (h *handler) reject(w http.ResponseWriter, r *http.Request, op string, err error) {
	n := h.formatter.Error(err)
	h.notifier.Notify(r.Context(), n)

	result := metrics.ResultRejected
	if status, _ := classify(err); status >= http.StatusInternalServerError {
		result = metrics.ResultError
	}
	h.metrics.ObserveOperation(op, result)

	writeError(r.Context(), h.logg, w, err, &n)
}

func (h *handler) cartView(ctx context.Context, registerID string, engine *cart.Engine) (cartDTO, error) {
	totals, err := engine.Totals(ctx)
	if err != nil {
		return cartDTO{}, err
	}

	items := engine.Items()
	lines := make([]lineDTO, 0, len(items))
	for _, item := range items {
		product, err := h.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return cartDTO{}, err
		}

		lines = append(lines, lineDTO{
			ProductID: item.ProductID,
			Code:      product.Code,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: newMoneyDTO(h.formatter, product.Price),
			Subtotal:  newMoneyDTO(h.formatter, product.Price.Mul(item.Quantity)),
		})
	}

	methods := engine.PaymentMethods()
	methodNames := make([]string, 0, len(methods))
	for _, m := range methods {
		methodNames = append(methodNames, string(m))
	}

	return cartDTO{
		RegisterID:     registerID,
		Items:          lines,
		Total:          newMoneyDTO(h.formatter, totals.Amount),
		ItemCount:      totals.ItemCount,
		PaymentMethods: methodNames,
	}, nil
}

func parseTimeParam(r *http.Request, key string, def time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, &requestError{
		msg:     "invalid query parameter",
		details: map[string]string{key: "must be RFC3339 or YYYY-MM-DD"},
		err:     errors.New(key + "=" + raw),
	}
}
