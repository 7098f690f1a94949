package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-demo/internal/db"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const uniqueViolation = "23505"

type saleRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewSale(pool *pgxpool.Pool) port.SaleRepository {
	return &saleRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewSaleWithTx(tx pgx.Tx) port.SaleRepository {
	return &saleRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// SaveSale records the sale and its lines and takes the sold quantities out
// of product stock, all in one transaction.
func (r *saleRepository) SaveSale(ctx context.Context, sale domain.CompletedSale) error {
	if err := validateSale(sale); err != nil {
		return err
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		err := q.InsertSale(ctx, db.InsertSaleParams{
			ID:            sale.ID,
			PaymentMethod: string(sale.PaymentMethod),
			TotalAmount:   sale.Total.Amount,
			TotalCurrency: sale.Total.Currency.String(),
			ItemCount:     int32(sale.ItemCount),
			FinalizedAt:   sale.FinalizedAt,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return struct{}{}, fmt.Errorf("sale %s: %w", sale.ID, domain.ErrSaleExists)
			}
			return struct{}{}, fmt.Errorf("q.InsertSale: %w", err)
		}

		for i, item := range sale.Items {
			if err := deductStock(ctx, q, item); err != nil {
				return struct{}{}, err
			}

			err := q.InsertSaleItem(ctx, db.InsertSaleItemParams{
				SaleID:            sale.ID,
				Position:          int32(i),
				ProductID:         item.ProductID,
				Name:              item.Name,
				Quantity:          int32(item.Quantity),
				UnitPriceAmount:   item.UnitPrice.Amount,
				UnitPriceCurrency: item.UnitPrice.Currency.String(),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.InsertSaleItem: %w", err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func (r *saleRepository) GetSale(ctx context.Context, saleID uuid.UUID) (domain.CompletedSale, error) {
	if saleID == uuid.Nil {
		return domain.CompletedSale{}, fmt.Errorf("saleID is empty")
	}

	rows, err := r.q.GetSale(ctx, saleID)
	if err != nil {
		return domain.CompletedSale{}, fmt.Errorf("q.GetSale: %w", err)
	}

	if len(rows) == 0 {
		return domain.CompletedSale{}, fmt.Errorf("sale %s: %w", saleID, domain.ErrSaleNotFound)
	}

	sales, err := mapSaleRowsToDomain(toSaleRows(rows, func(row db.GetSaleRow) saleRow {
		return saleRow(row)
	}))
	if err != nil {
		return domain.CompletedSale{}, fmt.Errorf("mapSaleRowsToDomain: %w", err)
	}

	return sales[0], nil
}

// ListSales returns the sales finalized in [from, to), oldest first.
func (r *saleRepository) ListSales(ctx context.Context, from, to time.Time) ([]domain.CompletedSale, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("from[%s] is not before to[%s]", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	rows, err := r.q.ListSales(ctx, db.ListSalesParams{
		FromTime: from,
		ToTime:   to,
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListSales: %w", err)
	}

	sales, err := mapSaleRowsToDomain(toSaleRows(rows, func(row db.ListSalesRow) saleRow {
		return saleRow(row)
	}))
	if err != nil {
		return nil, fmt.Errorf("mapSaleRowsToDomain: %w", err)
	}

	return sales, nil
}

func deductStock(ctx context.Context, q *db.Queries, item domain.SaleItem) error {
	rowsAffected, err := q.DeductStock(ctx, db.DeductStockParams{
		Quantity: int32(item.Quantity),
		ID:       item.ProductID,
	})
	if err != nil {
		return fmt.Errorf("q.DeductStock: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	product, err := q.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrProductNotFound)
		}
		return fmt.Errorf("q.GetProduct: %w", err)
	}

	return &domain.InsufficientStockError{
		ProductID: item.ProductID,
		Available: int(product.Stock),
		Requested: item.Quantity,
	}
}

func validateSale(sale domain.CompletedSale) error {
	switch {
	case sale.ID == uuid.Nil:
		return fmt.Errorf("sale ID is empty")
	case len(sale.Items) == 0:
		return fmt.Errorf("sale items are empty")
	case sale.PaymentMethod == "":
		return fmt.Errorf("sale paymentMethod is empty")
	case sale.FinalizedAt.IsZero():
		return fmt.Errorf("sale finalizedAt is zero")
	case sale.ItemCount <= 0 || sale.ItemCount > math.MaxInt32:
		return fmt.Errorf("sale itemCount[%d] is out of range", sale.ItemCount)
	}

	for _, item := range sale.Items {
		if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return fmt.Errorf("sale item %s: quantity[%d] is out of range", item.ProductID, item.Quantity)
		}
	}

	return nil
}

// saleRow is the shape shared by the GetSale and ListSales joins.
type saleRow struct {
	ID                uuid.UUID
	PaymentMethod     string
	TotalAmount       decimal.Decimal
	TotalCurrency     string
	ItemCount         int32
	FinalizedAt       time.Time
	ProductID         uuid.UUID
	Name              string
	Quantity          int32
	UnitPriceAmount   decimal.Decimal
	UnitPriceCurrency string
}

func toSaleRows[T any](rows []T, fn func(T) saleRow) []saleRow {
	result := make([]saleRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, fn(row))
	}
	return result
}

// mapSaleRowsToDomain folds joined sale/item rows into sales. Rows of one
// sale must be adjacent, which both queries guarantee through ORDER BY.
func mapSaleRowsToDomain(rows []saleRow) ([]domain.CompletedSale, error) {
	var sales []domain.CompletedSale

	for _, row := range rows {
		if len(sales) == 0 || sales[len(sales)-1].ID != row.ID {
			totalCurrency, err := currency.ParseISO(row.TotalCurrency)
			if err != nil {
				return nil, fmt.Errorf("currency[%s] is not valid: %w", row.TotalCurrency, err)
			}

			sales = append(sales, domain.CompletedSale{
				ID:            row.ID,
				Total:         domain.Money{Amount: row.TotalAmount, Currency: totalCurrency},
				ItemCount:     int(row.ItemCount),
				PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
				FinalizedAt:   row.FinalizedAt.UTC(),
			})
		}

		unitCurrency, err := currency.ParseISO(row.UnitPriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", row.UnitPriceCurrency, err)
		}

		last := &sales[len(sales)-1]
		last.Items = append(last.Items, domain.SaleItem{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  int(row.Quantity),
			UnitPrice: domain.Money{Amount: row.UnitPriceAmount, Currency: unitCurrency},
		})
	}

	return sales, nil
}
