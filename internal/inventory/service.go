package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"golang.org/x/text/currency"
)

type Service struct {
	products port.ProductRepository
	logg     *logger.Logger
}

func NewService(products port.ProductRepository, logg *logger.Logger) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("products is nil")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	return &Service{
		products: products,
		logg:     logg,
	}, nil
}

// Create stores a new product under a fresh ID.
func (s *Service) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.ID = uuid.New()

	if err := s.products.UpsertProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.UpsertProduct: %w", err)
	}

	s.logg.Info(s.productContext(ctx, product), "product created")

	return product, nil
}

// Update replaces every field of an existing product.
func (s *Service) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if _, err := s.products.GetProduct(ctx, product.ID); err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	if err := s.products.UpsertProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.UpsertProduct: %w", err)
	}

	s.logg.Info(s.productContext(ctx, product), "product updated")

	return product, nil
}

// Delete removes a product and returns it as it was. Recorded sales keep
// their own copy of the lines.
func (s *Service) Delete(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return domain.Product{}, fmt.Errorf("products.DeleteProduct: %w", err)
	}

	s.logg.Info(s.productContext(ctx, product), "product deleted")

	return product, nil
}

// StockReport values every product priced in cur. Others are skipped and logged.
func (s *Service) StockReport(ctx context.Context, cur currency.Unit) (domain.StockReport, error) {
	products, err := s.products.SearchProducts(ctx, "")
	if err != nil {
		return domain.StockReport{}, fmt.Errorf("products.SearchProducts: %w", err)
	}

	report := domain.StockReport{
		CostValue:  domain.ZeroMoney(cur),
		SaleValue:  domain.ZeroMoney(cur),
		ByCategory: make(map[string]domain.Money),
	}

	for _, p := range products {
		if p.Price.Currency != cur {
			s.logg.Warn(s.productContext(ctx, p), "product skipped in stock report: currency "+p.Price.Currency.String())
			continue
		}

		cost := p.StockValue()

		report.CostValue, err = report.CostValue.Add(cost)
		if err != nil {
			return domain.StockReport{}, fmt.Errorf("costValue.Add: %w", err)
		}

		report.SaleValue, err = report.SaleValue.Add(p.Price.Mul(p.Stock))
		if err != nil {
			return domain.StockReport{}, fmt.Errorf("saleValue.Add: %w", err)
		}

		byCategory, ok := report.ByCategory[p.Category]
		if !ok {
			byCategory = domain.ZeroMoney(cur)
		}
		report.ByCategory[p.Category], err = byCategory.Add(cost)
		if err != nil {
			return domain.StockReport{}, fmt.Errorf("byCategory.Add: %w", err)
		}

		report.ProductCount++
		report.UnitCount += p.Stock
		if p.LowStock() {
			report.LowStockCount++
		}
	}

	return report, nil
}

func (s *Service) productContext(ctx context.Context, p domain.Product) context.Context {
	return s.logg.WithFields(ctx, map[string]any{
		"product_id": p.ID.String(),
		"code":       p.Code,
	})
}
