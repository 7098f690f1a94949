package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"golang.org/x/text/currency"
)

type Config struct {
	// Currency of the cart totals. Products priced in another currency are rejected.
	Currency currency.Unit

	// PaymentMethods accepted by Finalize.
	PaymentMethods []domain.PaymentMethod

	// Now stamps completed sales; defaults to time.Now.
	Now func() time.Time
}

// Engine holds the line items of one in-progress sale.
//
// Every operation is all-or-nothing: a rejected call returns an error and
// leaves the items exactly as they were. Operations hold the engine lock
// across the catalog lookup, the stock check and the write.
type Engine struct {
	mu sync.Mutex

	catalog  port.Catalog
	currency currency.Unit
	methods  []domain.PaymentMethod
	now      func() time.Time

	items []domain.LineItem
}

func New(catalog port.Catalog, cfg Config) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if len(cfg.PaymentMethods) == 0 {
		return nil, fmt.Errorf("paymentMethods is empty")
	}

	cur := cfg.Currency
	if cur == (currency.Unit{}) {
		cur = currency.BRL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		catalog:  catalog,
		currency: cur,
		methods:  slices.Clone(cfg.PaymentMethods),
		now:      now,
	}, nil
}

// AddItem adds one unit of the product, appending a new line or
// incrementing the existing one in place.
func (e *Engine) AddItem(ctx context.Context, productID uuid.UUID) (domain.LineItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	product, err := e.lookup(ctx, productID)
	if err != nil {
		return domain.LineItem{}, err
	}

	idx := e.indexOf(productID)
	if idx >= 0 {
		requested := e.items[idx].Quantity + 1
		if requested > product.Stock {
			return domain.LineItem{}, insufficientStock(product, requested)
		}

		e.items[idx].Quantity = requested
		return e.items[idx], nil
	}

	if product.Stock < 1 {
		return domain.LineItem{}, insufficientStock(product, 1)
	}

	item := domain.LineItem{ProductID: productID, Quantity: 1}
	e.items = append(e.items, item)

	return item, nil
}

// SetQuantity replaces the quantity of a line already in the cart.
// A zero quantity removes the line.
func (e *Engine) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID)
	if idx < 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotInCart)
	}

	if quantity == 0 {
		e.items = slices.Delete(e.items, idx, idx+1)
		return nil
	}

	if quantity < 0 {
		return fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	product, err := e.lookup(ctx, productID)
	if err != nil {
		return err
	}

	if quantity > product.Stock {
		return insufficientStock(product, quantity)
	}

	e.items[idx].Quantity = quantity

	return nil
}

// RemoveItem deletes the line for productID. Removing an absent product is a no-op.
func (e *Engine) RemoveItem(productID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = slices.DeleteFunc(e.items, func(item domain.LineItem) bool {
		return item.ProductID == productID
	})
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
}

// Items returns a copy of the lines in the order they were first added.
func (e *Engine) Items() []domain.LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.items)
}

func (e *Engine) PaymentMethods() []domain.PaymentMethod {
	return slices.Clone(e.methods)
}

// Totals prices the current lines against the catalog. Nothing is cached:
// every call reads the catalog again.
func (e *Engine) Totals(ctx context.Context) (domain.Totals, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines, _, err := e.priceLines(ctx)
	if err != nil {
		return domain.Totals{}, err
	}

	return e.sum(lines)
}

// Finalize turns the cart into a CompletedSale and empties it.
// Catalog stock is left untouched; recording the sale is up to the caller.
func (e *Engine) Finalize(ctx context.Context, method domain.PaymentMethod) (domain.CompletedSale, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		return domain.CompletedSale{}, domain.ErrEmptyCart
	}

	if !slices.Contains(e.methods, method) {
		return domain.CompletedSale{}, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, method)
	}

	lines, products, err := e.priceLines(ctx)
	if err != nil {
		return domain.CompletedSale{}, err
	}

	// stock may have moved since the line was last touched
	for i, line := range lines {
		if line.Quantity > products[i].Stock {
			return domain.CompletedSale{}, insufficientStock(products[i], line.Quantity)
		}
	}

	totals, err := e.sum(lines)
	if err != nil {
		return domain.CompletedSale{}, err
	}

	sale := domain.CompletedSale{
		ID:            uuid.New(),
		Items:         lines,
		Total:         totals.Amount,
		ItemCount:     totals.ItemCount,
		PaymentMethod: method,
		FinalizedAt:   e.now().UTC(),
	}

	e.items = nil

	return sale, nil
}

// Restore puts the lines of a finalized sale back into the cart, for when
// the sale could not be recorded. It fails if the cart is no longer empty.
func (e *Engine) Restore(sale domain.CompletedSale) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) > 0 {
		return fmt.Errorf("cart is not empty")
	}

	items := make([]domain.LineItem, 0, len(sale.Items))
	for _, line := range sale.Items {
		if line.Quantity <= 0 {
			return fmt.Errorf("quantity[%d]: %w", line.Quantity, domain.ErrInvalidQuantity)
		}
		items = append(items, domain.LineItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	e.items = items

	return nil
}

func (e *Engine) lookup(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	if product.Price.Currency != e.currency {
		return domain.Product{}, fmt.Errorf("product %s priced in %s, cart in %s: %w",
			productID, product.Price.Currency, e.currency, domain.ErrCurrencyMismatch)
	}

	return product, nil
}

// priceLines resolves every line against the catalog, returning sale lines
// and the products they were priced from, index-aligned.
func (e *Engine) priceLines(ctx context.Context) ([]domain.SaleItem, []domain.Product, error) {
	lines := make([]domain.SaleItem, 0, len(e.items))
	products := make([]domain.Product, 0, len(e.items))

	for _, item := range e.items {
		product, err := e.lookup(ctx, item.ProductID)
		if err != nil {
			return nil, nil, err
		}

		lines = append(lines, domain.SaleItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		products = append(products, product)
	}

	return lines, products, nil
}

func (e *Engine) sum(lines []domain.SaleItem) (domain.Totals, error) {
	totals := domain.Totals{Amount: domain.ZeroMoney(e.currency)}

	for _, line := range lines {
		amount, err := totals.Amount.Add(line.Subtotal())
		if err != nil {
			return domain.Totals{}, fmt.Errorf("totals.Add: %w", err)
		}

		totals.Amount = amount
		totals.ItemCount += line.Quantity
	}

	return totals, nil
}

func (e *Engine) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(e.items, func(item domain.LineItem) bool {
		return item.ProductID == productID
	})
}

func insufficientStock(product domain.Product, requested int) error {
	return &domain.InsufficientStockError{
		ProductID: product.ID,
		Available: product.Stock,
		Requested: requested,
	}
}
