package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

type SaleItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice Money
}

func (i SaleItem) Subtotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// CompletedSale is the snapshot handed over when a cart is finalized.
type CompletedSale struct {
	ID            uuid.UUID
	Items         []SaleItem
	Total         Money
	ItemCount     int
	PaymentMethod PaymentMethod
	FinalizedAt   time.Time
}

type SalesReport struct {
	From            time.Time
	To              time.Time
	Revenue         Money
	SaleCount       int
	ItemCount       int
	ByPaymentMethod map[PaymentMethod]Money
}
