package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// priceExponent is the finest fraction a stored price can hold.
const priceExponent = -2

type Product struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description string
	Category    string
	Price       Money
	CostPrice   Money
	Stock       int
	MinStock    int
}

// LowStock reports whether the product has reached its replenishment threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Validate checks the fields every catalog backend requires. A zero
// CostPrice is accepted as "not set"; otherwise it must share the price currency.
func (p Product) Validate() error {
	switch {
	case p.ID == uuid.Nil:
		return fmt.Errorf("%w: product ID is empty", ErrInvalidProduct)
	case strings.TrimSpace(p.Code) == "":
		return fmt.Errorf("%w: product code is empty", ErrInvalidProduct)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product name is empty", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: product price is negative", ErrInvalidProduct)
	case p.Price.Amount.Exponent() < priceExponent:
		return fmt.Errorf("%w: product price[%s] has more than 2 decimal places", ErrInvalidProduct, p.Price.Amount)
	case p.CostPrice.IsNegative():
		return fmt.Errorf("%w: product cost price is negative", ErrInvalidProduct)
	case p.CostPrice.Amount.Exponent() < priceExponent:
		return fmt.Errorf("%w: product cost price[%s] has more than 2 decimal places", ErrInvalidProduct, p.CostPrice.Amount)
	case p.CostPrice.Currency != (currency.Unit{}) && p.CostPrice.Currency != p.Price.Currency:
		return fmt.Errorf("%w: product cost in %s, price in %s", ErrCurrencyMismatch, p.CostPrice.Currency, p.Price.Currency)
	case p.Stock < 0:
		return fmt.Errorf("%w: product stock is negative", ErrInvalidProduct)
	case p.MinStock < 0:
		return fmt.Errorf("%w: product minStock is negative", ErrInvalidProduct)
	}

	return nil
}

// StockValue is the stock priced at cost, in the price currency.
func (p Product) StockValue() Money {
	return Money{Amount: p.CostPrice.Amount, Currency: p.Price.Currency}.Mul(p.Stock)
}

// StockReport values the inventory on hand.
type StockReport struct {
	ProductCount  int
	UnitCount     int
	LowStockCount int
	CostValue     Money
	SaleValue     Money
	ByCategory    map[string]Money
}
