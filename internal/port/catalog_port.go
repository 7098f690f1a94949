package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
)

// Catalog is the read-only product lookup used by the cart engine.
// GetProduct returns an error wrapping domain.ErrProductNotFound for unknown IDs.
type Catalog interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
}

type ProductRepository interface {
	Catalog
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	LowStockProducts(ctx context.Context) ([]domain.Product, error)
	UpsertProduct(ctx context.Context, product domain.Product) error
	// DeleteProduct returns an error wrapping domain.ErrProductNotFound for unknown IDs.
	// Recorded sales keep their lines.
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}
