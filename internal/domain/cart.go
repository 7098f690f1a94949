package domain

import (
	"github.com/google/uuid"
)

// LineItem is one row of an in-progress sale. Quantity is always positive.
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type Totals struct {
	Amount    Money
	ItemCount int
}
