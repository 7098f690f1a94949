package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-demo/internal/db"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	if productID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.q.SearchProducts(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("q.SearchProducts: %w", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListLowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListLowStockProducts: %w", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) UpsertProduct(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	switch {
	case product.Stock > math.MaxInt32:
		return fmt.Errorf("product stock[%d] is out of range", product.Stock)
	case product.MinStock > math.MaxInt32:
		return fmt.Errorf("product minStock[%d] is out of range", product.MinStock)
	}

	err := r.q.UpsertProduct(ctx, db.UpsertProductParams{
		ID:            product.ID,
		Code:          product.Code,
		Name:          product.Name,
		Category:      product.Category,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         int32(product.Stock),
		MinStock:      int32(product.MinStock),
		CostAmount:    product.CostPrice.Amount,
		Description:   product.Description,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("code[%s]: %w", product.Code, domain.ErrProductCodeTaken)
		}
		return fmt.Errorf("q.UpsertProduct: %w", err)
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	rows, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	return nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.Product{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		CostPrice:   domain.Money{Amount: row.CostAmount, Currency: parsedCurrency},
		Stock:       int(row.Stock),
		MinStock:    int(row.MinStock),
	}, nil
}

func mapProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	var products []domain.Product

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}
