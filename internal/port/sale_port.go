package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
)

// SaleRepository records finalized sales. SaveSale decrements catalog stock
// in the same unit of work and fails without side effects if any line
// exceeds the stock left.
type SaleRepository interface {
	SaveSale(ctx context.Context, sale domain.CompletedSale) error
	GetSale(ctx context.Context, saleID uuid.UUID) (domain.CompletedSale, error)
	ListSales(ctx context.Context, from, to time.Time) ([]domain.CompletedSale, error)
}
