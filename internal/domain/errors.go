package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrProductCodeTaken     = errors.New("product code already used")
	ErrProductNotInCart     = errors.New("product not in cart")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCurrencyMismatch     = errors.New("currency mismatch")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrSaleExists           = errors.New("sale already recorded")
)

type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
