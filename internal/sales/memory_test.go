package sales_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/catalog"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	iphoneID  = catalog.ProductID("7891234567890")
	galaxyID  = catalog.ProductID("7891234567891")
	chargerID = catalog.ProductID("7891234567894")
)

func TestNewMemoryRepository(t *testing.T) {
	_, err := sales.NewMemoryRepository(nil)
	require.EqualError(t, err, "stock is nil")
}

func TestMemoryRepository_SaveSale(t *testing.T) {
	tests := []struct {
		name      string
		items     []domain.SaleItem
		wantStock map[uuid.UUID]int
		wantError error
	}{
		{
			name:      "save sale and deduct stock: ok",
			items:     []domain.SaleItem{line(t, iphoneID, 2), line(t, chargerID, 5)},
			wantStock: map[uuid.UUID]int{iphoneID: 13, chargerID: 25},
		},
		{
			name:      "save sale above stock: error",
			items:     []domain.SaleItem{line(t, iphoneID, 1), line(t, galaxyID, 9)},
			wantStock: map[uuid.UUID]int{iphoneID: 15, galaxyID: 8},
			wantError: domain.ErrInsufficientStock,
		},
		{
			name:      "save sale of unknown product: error",
			items:     []domain.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: brl("1.00")}},
			wantError: domain.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			repo, memory := newRepository(t)

			sale := saleOf(time.Now(), domain.PaymentCash, tt.items...)

			err := repo.SaveSale(ctx, sale)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)

				_, err = repo.GetSale(ctx, sale.ID)
				require.ErrorIs(t, err, domain.ErrSaleNotFound)
			} else {
				require.NoError(t, err)

				got, err := repo.GetSale(ctx, sale.ID)
				require.NoError(t, err)
				assert.Equal(t, sale.ID, got.ID)
				assert.Len(t, got.Items, len(sale.Items))
			}

			for id, want := range tt.wantStock {
				p, err := memory.GetProduct(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, want, p.Stock)
			}
		})
	}
}

func TestMemoryRepository_SaveSale_Duplicate(t *testing.T) {
	ctx := t.Context()
	repo, memory := newRepository(t)

	sale := saleOf(time.Now(), domain.PaymentPix, line(t, iphoneID, 1))
	require.NoError(t, repo.SaveSale(ctx, sale))

	err := repo.SaveSale(ctx, sale)
	require.ErrorIs(t, err, domain.ErrSaleExists)

	p, err := memory.GetProduct(ctx, iphoneID)
	require.NoError(t, err)
	assert.Equal(t, 14, p.Stock)
}

func TestMemoryRepository_SaveSale_Invalid(t *testing.T) {
	repo, _ := newRepository(t)

	err := repo.SaveSale(t.Context(), domain.CompletedSale{Items: []domain.SaleItem{line(t, iphoneID, 1)}})
	require.EqualError(t, err, "sale ID is empty")

	err = repo.SaveSale(t.Context(), domain.CompletedSale{ID: uuid.New()})
	require.EqualError(t, err, "sale items are empty")
}

func TestMemoryRepository_ListSales(t *testing.T) {
	ctx := t.Context()
	repo, _ := newRepository(t)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	before := saleOf(base.Add(-time.Minute), domain.PaymentCash, line(t, chargerID, 1))
	first := saleOf(base, domain.PaymentCard, line(t, chargerID, 1))
	second := saleOf(base.Add(time.Hour), domain.PaymentPix, line(t, chargerID, 1))
	atEnd := saleOf(base.Add(2*time.Hour), domain.PaymentCash, line(t, chargerID, 1))

	for _, s := range []domain.CompletedSale{second, atEnd, first, before} {
		require.NoError(t, repo.SaveSale(ctx, s))
	}

	got, err := repo.ListSales(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	_, err = repo.ListSales(ctx, base, base)
	require.Error(t, err)
}

func newRepository(t *testing.T) (*sales.MemoryRepository, *catalog.Memory) {
	t.Helper()

	memory, err := catalog.NewMemory(catalog.DefaultProducts()...)
	require.NoError(t, err)

	repo, err := sales.NewMemoryRepository(memory)
	require.NoError(t, err)

	return repo, memory
}
