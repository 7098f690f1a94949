package sales

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
)

// StockDeducter takes sold quantities out of the catalog, all lines or none.
type StockDeducter interface {
	DeductStock(ctx context.Context, items []domain.SaleItem) error
}

// MemoryRepository keeps sales history in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	stock StockDeducter
	sales []domain.CompletedSale
	index map[uuid.UUID]int
}

func NewMemoryRepository(stock StockDeducter) (*MemoryRepository, error) {
	if stock == nil {
		return nil, fmt.Errorf("stock is nil")
	}

	return &MemoryRepository{
		stock: stock,
		index: make(map[uuid.UUID]int),
	}, nil
}

func (r *MemoryRepository) SaveSale(ctx context.Context, sale domain.CompletedSale) error {
	if sale.ID == uuid.Nil {
		return fmt.Errorf("sale ID is empty")
	}
	if len(sale.Items) == 0 {
		return fmt.Errorf("sale items are empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[sale.ID]; ok {
		return fmt.Errorf("sale %s: %w", sale.ID, domain.ErrSaleExists)
	}

	if err := r.stock.DeductStock(ctx, sale.Items); err != nil {
		return fmt.Errorf("stock.DeductStock: %w", err)
	}

	sale.Items = slices.Clone(sale.Items)
	r.index[sale.ID] = len(r.sales)
	r.sales = append(r.sales, sale)

	return nil
}

func (r *MemoryRepository) GetSale(_ context.Context, saleID uuid.UUID) (domain.CompletedSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[saleID]
	if !ok {
		return domain.CompletedSale{}, fmt.Errorf("sale %s: %w", saleID, domain.ErrSaleNotFound)
	}

	return cloneSale(r.sales[idx]), nil
}

// ListSales returns the sales finalized in [from, to), oldest first.
func (r *MemoryRepository) ListSales(_ context.Context, from, to time.Time) ([]domain.CompletedSale, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("from[%s] is not before to[%s]", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.CompletedSale
	for _, sale := range r.sales {
		if sale.FinalizedAt.Before(from) || !sale.FinalizedAt.Before(to) {
			continue
		}
		result = append(result, cloneSale(sale))
	}

	slices.SortStableFunc(result, func(a, b domain.CompletedSale) int {
		return a.FinalizedAt.Compare(b.FinalizedAt)
	})

	return result, nil
}

func cloneSale(sale domain.CompletedSale) domain.CompletedSale {
	sale.Items = slices.Clone(sale.Items)
	return sale
}
