package cart_test

import (
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/cart"
	"github.com/nikolayk812/pdv-demo/internal/catalog"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var allMethods = []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard, domain.PaymentPix}

func TestNew(t *testing.T) {
	memory, err := catalog.NewMemory()
	require.NoError(t, err)

	tests := []struct {
		name      string
		catalog   port.Catalog
		cfg       cart.Config
		wantError string
	}{
		{
			name:    "new engine: ok",
			catalog: memory,
			cfg:     cart.Config{PaymentMethods: allMethods},
		},
		{
			name:      "nil catalog: error",
			cfg:       cart.Config{PaymentMethods: allMethods},
			wantError: "catalog is nil",
		},
		{
			name:      "no payment methods: error",
			catalog:   memory,
			wantError: "paymentMethods is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := cart.New(tt.catalog, tt.cfg)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, engine.Items())
			assert.Equal(t, allMethods, engine.PaymentMethods())
		})
	}
}

// Stock 2: the third add is rejected and the quantity stays at 2.
func TestAddItem_StockCeiling(t *testing.T) {
	ctx := t.Context()
	p1 := newProduct("10.00", 2)
	engine, _ := newEngine(t, p1)

	item, err := engine.AddItem(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = engine.AddItem(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = engine.AddItem(ctx, p1.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, p1.ID, stockErr.ProductID)

	assert.Equal(t, []domain.LineItem{{ProductID: p1.ID, Quantity: 2}}, engine.Items())
}

func TestAddItem(t *testing.T) {
	inStock := newProduct("5.00", 3)
	outOfStock := newProduct("7.50", 0)
	dollars := newProduct("1.00", 5)
	dollars.Price.Currency = currency.USD

	tests := []struct {
		name      string
		productID uuid.UUID
		wantItems []domain.LineItem
		wantError error
	}{
		{
			name:      "add product in stock: ok",
			productID: inStock.ID,
			wantItems: []domain.LineItem{{ProductID: inStock.ID, Quantity: 1}},
		},
		{
			name:      "add unknown product: not found",
			productID: uuid.MustParse(gofakeit.UUID()),
			wantError: domain.ErrProductNotFound,
		},
		{
			name:      "add product without stock: insufficient stock",
			productID: outOfStock.ID,
			wantError: domain.ErrInsufficientStock,
		},
		{
			name:      "add product priced in another currency: error",
			productID: dollars.ID,
			wantError: domain.ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newEngine(t, inStock, outOfStock, dollars)

			_, err := engine.AddItem(t.Context(), tt.productID)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.Empty(t, engine.Items())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantItems, engine.Items())
		})
	}
}

func TestAddItem_OutOfStockReportsRequestedOne(t *testing.T) {
	p := newProduct("7.50", 0)
	engine, _ := newEngine(t, p)

	_, err := engine.AddItem(t.Context(), p.ID)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)
}

func TestAddItem_KeepsFirstAddedOrder(t *testing.T) {
	ctx := t.Context()
	p1, p2, p3 := newProduct("1.00", 5), newProduct("2.00", 5), newProduct("3.00", 5)
	engine, _ := newEngine(t, p1, p2, p3)

	for _, id := range []uuid.UUID{p1.ID, p2.ID, p3.ID, p1.ID, p2.ID, p1.ID} {
		_, err := engine.AddItem(ctx, id)
		require.NoError(t, err)
	}

	want := []domain.LineItem{
		{ProductID: p1.ID, Quantity: 3},
		{ProductID: p2.ID, Quantity: 2},
		{ProductID: p3.ID, Quantity: 1},
	}
	assert.Equal(t, want, engine.Items())
}

func TestSetQuantity(t *testing.T) {
	p1 := newProduct("10.00", 5)
	p2 := newProduct("4.00", 5)

	tests := []struct {
		name      string
		productID uuid.UUID
		quantity  int
		wantItems []domain.LineItem
		wantError error
	}{
		{
			name:      "set quantity within stock: ok",
			productID: p1.ID,
			quantity:  4,
			wantItems: []domain.LineItem{{ProductID: p1.ID, Quantity: 4}, {ProductID: p2.ID, Quantity: 1}},
		},
		{
			name:      "set quantity equal to stock: ok",
			productID: p1.ID,
			quantity:  5,
			wantItems: []domain.LineItem{{ProductID: p1.ID, Quantity: 5}, {ProductID: p2.ID, Quantity: 1}},
		},
		{
			name:      "set zero quantity: removes line",
			productID: p1.ID,
			quantity:  0,
			wantItems: []domain.LineItem{{ProductID: p2.ID, Quantity: 1}},
		},
		{
			name:      "set quantity above stock: insufficient stock",
			productID: p1.ID,
			quantity:  6,
			wantError: domain.ErrInsufficientStock,
		},
		{
			name:      "set negative quantity: invalid quantity",
			productID: p1.ID,
			quantity:  -1,
			wantError: domain.ErrInvalidQuantity,
		},
		{
			name:      "set quantity for product not in cart: not in cart",
			productID: uuid.MustParse(gofakeit.UUID()),
			quantity:  1,
			wantError: domain.ErrProductNotInCart,
		},
		{
			name:      "set zero quantity for product not in cart: not in cart",
			productID: uuid.MustParse(gofakeit.UUID()),
			quantity:  0,
			wantError: domain.ErrProductNotInCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			engine, _ := newEngine(t, p1, p2)

			_, err := engine.AddItem(ctx, p1.ID)
			require.NoError(t, err)
			_, err = engine.AddItem(ctx, p2.ID)
			require.NoError(t, err)

			before := engine.Items()

			err = engine.SetQuantity(ctx, tt.productID, tt.quantity)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.Equal(t, before, engine.Items())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantItems, engine.Items())
		})
	}
}

func TestSetQuantity_AboveStockReportsRequested(t *testing.T) {
	ctx := t.Context()
	p := newProduct("10.00", 3)
	engine, _ := newEngine(t, p)

	_, err := engine.AddItem(ctx, p.ID)
	require.NoError(t, err)

	err = engine.SetQuantity(ctx, p.ID, 7)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 7, stockErr.Requested)
}

// Setting a line to zero drops it.
func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := t.Context()
	p1 := newProduct("10.00", 5)
	engine, _ := newEngine(t, p1)

	addN(t, engine, p1.ID, 2)

	require.NoError(t, engine.SetQuantity(ctx, p1.ID, 0))
	assert.Empty(t, engine.Items())
}

func TestRemoveItem_Idempotent(t *testing.T) {
	ctx := t.Context()
	p1, p2 := newProduct("1.00", 5), newProduct("2.00", 5)
	engine, _ := newEngine(t, p1, p2)

	_, err := engine.AddItem(ctx, p1.ID)
	require.NoError(t, err)
	_, err = engine.AddItem(ctx, p2.ID)
	require.NoError(t, err)

	engine.RemoveItem(p1.ID)
	once := engine.Items()

	engine.RemoveItem(p1.ID)
	assert.Equal(t, once, engine.Items())
	assert.Equal(t, []domain.LineItem{{ProductID: p2.ID, Quantity: 1}}, once)

	// absent product is a no-op
	engine.RemoveItem(uuid.MustParse(gofakeit.UUID()))
	assert.Equal(t, once, engine.Items())
}

func TestClear(t *testing.T) {
	ctx := t.Context()
	p1 := newProduct("1.00", 5)
	engine, _ := newEngine(t, p1)

	addN(t, engine, p1.ID, 3)
	engine.Clear()
	assert.Empty(t, engine.Items())

	totals, err := engine.Totals(ctx)
	require.NoError(t, err)
	assertAmount(t, "0", totals.Amount)
	assert.Equal(t, 0, totals.ItemCount)

	// clearing an empty cart is fine
	engine.Clear()
	assert.Empty(t, engine.Items())
}

// P1 x2 at 10.00 and P2 x1 at 5.00 total 25.00 over 3 items.
func TestTotals(t *testing.T) {
	ctx := t.Context()
	p1, p2 := newProduct("10.00", 5), newProduct("5.00", 5)
	engine, _ := newEngine(t, p1, p2)

	addN(t, engine, p1.ID, 2)
	addN(t, engine, p2.ID, 1)

	totals, err := engine.Totals(ctx)
	require.NoError(t, err)
	assertAmount(t, "25.00", totals.Amount)
	assert.Equal(t, currency.BRL, totals.Amount.Currency)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestTotals_ReadsCurrentCatalogPrices(t *testing.T) {
	ctx := t.Context()
	p1 := newProduct("10.00", 5)
	engine, memory := newEngine(t, p1)

	addN(t, engine, p1.ID, 2)

	totals, err := engine.Totals(ctx)
	require.NoError(t, err)
	assertAmount(t, "20.00", totals.Amount)

	p1.Price.Amount = decimal.RequireFromString("12.50")
	require.NoError(t, memory.UpsertProduct(ctx, p1))

	totals, err = engine.Totals(ctx)
	require.NoError(t, err)
	assertAmount(t, "25.00", totals.Amount)
}

func TestFinalize_EmptyCart(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.Finalize(t.Context(), domain.PaymentCard)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, engine.Items())
}

// Finalize snapshots both lines and empties the cart.
func TestFinalize(t *testing.T) {
	ctx := t.Context()
	p1, p2 := newProduct("1499.90", 15), newProduct("39.90", 30)
	finalizedAt := time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

	memory, err := catalog.NewMemory(p1, p2)
	require.NoError(t, err)

	engine, err := cart.New(memory, cart.Config{
		PaymentMethods: allMethods,
		Now:            func() time.Time { return finalizedAt },
	})
	require.NoError(t, err)

	addN(t, engine, p1.ID, 1)
	addN(t, engine, p2.ID, 1)

	sale, err := engine.Finalize(ctx, domain.PaymentCash)
	require.NoError(t, err)

	want := domain.CompletedSale{
		Items: []domain.SaleItem{
			{ProductID: p1.ID, Name: p1.Name, Quantity: 1, UnitPrice: p1.Price},
			{ProductID: p2.ID, Name: p2.Name, Quantity: 1, UnitPrice: p2.Price},
		},
		Total:         brl("1539.80"),
		ItemCount:     2,
		PaymentMethod: domain.PaymentCash,
		FinalizedAt:   finalizedAt,
	}
	assertSale(t, want, sale)
	assert.NotEqual(t, uuid.Nil, sale.ID)

	assert.Empty(t, engine.Items())

	totals, err := engine.Totals(ctx)
	require.NoError(t, err)
	assertAmount(t, "0", totals.Amount)
	assert.Equal(t, 0, totals.ItemCount)

	// catalog stock is not the engine's business
	got, err := memory.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock)
}

func TestFinalize_Rejections(t *testing.T) {
	p1 := newProduct("10.00", 5)

	tests := []struct {
		name      string
		method    domain.PaymentMethod
		prepare   func(t *testing.T, memory *catalog.Memory)
		wantError error
	}{
		{
			name:      "unknown payment method: error",
			method:    "cheque",
			wantError: domain.ErrInvalidPaymentMethod,
		},
		{
			name:   "stock dropped below cart quantity: insufficient stock",
			method: domain.PaymentPix,
			prepare: func(t *testing.T, memory *catalog.Memory) {
				lowered := p1
				lowered.Stock = 1
				require.NoError(t, memory.UpsertProduct(t.Context(), lowered))
			},
			wantError: domain.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			engine, memory := newEngine(t, p1)
			addN(t, engine, p1.ID, 2)

			if tt.prepare != nil {
				tt.prepare(t, memory)
			}

			before := engine.Items()

			_, err := engine.Finalize(ctx, tt.method)
			require.ErrorIs(t, err, tt.wantError)
			assert.Equal(t, before, engine.Items())
		})
	}
}

func TestFinalize_OnlyConfiguredMethods(t *testing.T) {
	ctx := t.Context()
	p1 := newProduct("10.00", 5)

	memory, err := catalog.NewMemory(p1)
	require.NoError(t, err)

	engine, err := cart.New(memory, cart.Config{PaymentMethods: []domain.PaymentMethod{domain.PaymentCash}})
	require.NoError(t, err)

	addN(t, engine, p1.ID, 1)

	_, err = engine.Finalize(ctx, domain.PaymentCard)
	require.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	_, err = engine.Finalize(ctx, domain.PaymentCash)
	require.NoError(t, err)
}

func TestRestore(t *testing.T) {
	ctx := t.Context()
	p1, p2 := newProduct("10.00", 5), newProduct("2.50", 10)
	engine, _ := newEngine(t, p1, p2)

	addN(t, engine, p1.ID, 2)
	addN(t, engine, p2.ID, 3)
	before := engine.Items()

	sale, err := engine.Finalize(ctx, domain.PaymentPix)
	require.NoError(t, err)
	require.Empty(t, engine.Items())

	require.NoError(t, engine.Restore(sale))
	assert.Equal(t, before, engine.Items())

	err = engine.Restore(sale)
	require.EqualError(t, err, "cart is not empty")
	assert.Equal(t, before, engine.Items())
}

func TestAddItem_ConcurrentNeverExceedsStock(t *testing.T) {
	ctx := t.Context()
	p := newProduct("1.00", 50)
	engine, _ := newEngine(t, p)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.AddItem(ctx, p.ID); err != nil {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, rejected)
	assert.Equal(t, []domain.LineItem{{ProductID: p.ID, Quantity: 50}}, engine.Items())
}

func newEngine(t *testing.T, products ...domain.Product) (*cart.Engine, *catalog.Memory) {
	t.Helper()

	memory, err := catalog.NewMemory(products...)
	require.NoError(t, err)

	engine, err := cart.New(memory, cart.Config{
		Currency:       currency.BRL,
		PaymentMethods: allMethods,
	})
	require.NoError(t, err)

	return engine, memory
}

func newProduct(price string, stock int) domain.Product {
	return domain.Product{
		ID:       uuid.MustParse(gofakeit.UUID()),
		Code:     gofakeit.Numerify("789##########"),
		Name:     gofakeit.ProductName(),
		Category: gofakeit.ProductCategory(),
		Price:    brl(price),
		Stock:    stock,
	}
}

func brl(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.BRL}
}

func addN(t *testing.T, engine *cart.Engine, productID uuid.UUID, n int) {
	t.Helper()

	for range n {
		_, err := engine.AddItem(t.Context(), productID)
		require.NoError(t, err)
	}
}

func assertAmount(t *testing.T, want string, got domain.Money) {
	t.Helper()

	assert.True(t, decimal.RequireFromString(want).Equal(got.Amount),
		"want amount %s, got %s", want, got.Amount)
}

func assertSale(t *testing.T, expected, actual domain.CompletedSale) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CompletedSale{}, "ID"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
