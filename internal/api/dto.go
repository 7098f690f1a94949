package api

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/notify"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,max=32"`
}

type productRequest struct {
	Code        string `json:"code" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
	Price       string `json:"price" validate:"required,numeric"`
	CostPrice   string `json:"costPrice" validate:"omitempty,numeric"`
	Stock       *int   `json:"stock" validate:"required,min=0"`
	MinStock    int    `json:"minStock" validate:"min=0"`
}

func (req productRequest) toDomain(productID uuid.UUID, cur currency.Unit) (domain.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return domain.Product{}, &requestError{msg: "invalid price", err: err}
	}

	cost := decimal.Zero
	if req.CostPrice != "" {
		if cost, err = decimal.NewFromString(req.CostPrice); err != nil {
			return domain.Product{}, &requestError{msg: "invalid costPrice", err: err}
		}
	}

	return domain.Product{
		ID:          productID,
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       domain.Money{Amount: price, Currency: cur},
		CostPrice:   domain.Money{Amount: cost, Currency: cur},
		Stock:       *req.Stock,
		MinStock:    req.MinStock,
	}, nil
}

type moneyDTO struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type productDTO struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       moneyDTO  `json:"price"`
	CostPrice   moneyDTO  `json:"costPrice"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	LowStock    bool      `json:"lowStock"`
}

type lineDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice moneyDTO  `json:"unitPrice"`
	Subtotal  moneyDTO  `json:"subtotal"`
}

type cartDTO struct {
	RegisterID     string    `json:"registerId"`
	Items          []lineDTO `json:"items"`
	Total          moneyDTO  `json:"total"`
	ItemCount      int       `json:"itemCount"`
	PaymentMethods []string  `json:"paymentMethods"`
}

type saleItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice moneyDTO  `json:"unitPrice"`
	Subtotal  moneyDTO  `json:"subtotal"`
}

type saleDTO struct {
	ID            uuid.UUID     `json:"id"`
	StoreName     string        `json:"storeName,omitempty"`
	Items         []saleItemDTO `json:"items"`
	Total         moneyDTO      `json:"total"`
	ItemCount     int           `json:"itemCount"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentLabel  string        `json:"paymentLabel"`
	FinalizedAt   time.Time     `json:"finalizedAt"`
}

type reportDTO struct {
	From            time.Time           `json:"from"`
	To              time.Time           `json:"to"`
	Revenue         moneyDTO            `json:"revenue"`
	SaleCount       int                 `json:"saleCount"`
	ItemCount       int                 `json:"itemCount"`
	ByPaymentMethod map[string]moneyDTO `json:"byPaymentMethod"`
}

type stockReportDTO struct {
	ProductCount  int                 `json:"productCount"`
	UnitCount     int                 `json:"unitCount"`
	LowStockCount int                 `json:"lowStockCount"`
	CostValue     moneyDTO            `json:"costValue"`
	SaleValue     moneyDTO            `json:"saleValue"`
	ByCategory    map[string]moneyDTO `json:"byCategory"`
}

func newMoneyDTO(f *notify.Formatter, m domain.Money) moneyDTO {
	return moneyDTO{
		Amount:    m.Amount.StringFixed(2),
		Currency:  m.Currency.String(),
		Formatted: f.Amount(m),
	}
}

func newProductDTO(f *notify.Formatter, p domain.Product) productDTO {
	cost := domain.Money{Amount: p.CostPrice.Amount, Currency: p.Price.Currency}

	return productDTO{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       newMoneyDTO(f, p.Price),
		CostPrice:   newMoneyDTO(f, cost),
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.LowStock(),
	}
}

func newProductDTOs(f *notify.Formatter, products []domain.Product) []productDTO {
	result := make([]productDTO, 0, len(products))
	for _, p := range products {
		result = append(result, newProductDTO(f, p))
	}
	return result
}

func newSaleDTO(f *notify.Formatter, storeName string, sale domain.CompletedSale) saleDTO {
	items := make([]saleItemDTO, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, saleItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: newMoneyDTO(f, item.UnitPrice),
			Subtotal:  newMoneyDTO(f, item.Subtotal()),
		})
	}

	return saleDTO{
		ID:            sale.ID,
		StoreName:     storeName,
		Items:         items,
		Total:         newMoneyDTO(f, sale.Total),
		ItemCount:     sale.ItemCount,
		PaymentMethod: string(sale.PaymentMethod),
		PaymentLabel:  f.PaymentMethod(sale.PaymentMethod),
		FinalizedAt:   sale.FinalizedAt,
	}
}

func newReportDTO(f *notify.Formatter, report domain.SalesReport) reportDTO {
	byMethod := make(map[string]moneyDTO, len(report.ByPaymentMethod))
	for method, amount := range report.ByPaymentMethod {
		byMethod[string(method)] = newMoneyDTO(f, amount)
	}

	return reportDTO{
		From:            report.From,
		To:              report.To,
		Revenue:         newMoneyDTO(f, report.Revenue),
		SaleCount:       report.SaleCount,
		ItemCount:       report.ItemCount,
		ByPaymentMethod: byMethod,
	}
}

func newStockReportDTO(f *notify.Formatter, report domain.StockReport) stockReportDTO {
	byCategory := make(map[string]moneyDTO, len(report.ByCategory))
	for category, amount := range report.ByCategory {
		byCategory[category] = newMoneyDTO(f, amount)
	}

	return stockReportDTO{
		ProductCount:  report.ProductCount,
		UnitCount:     report.UnitCount,
		LowStockCount: report.LowStockCount,
		CostValue:     newMoneyDTO(f, report.CostValue),
		SaleValue:     newMoneyDTO(f, report.SaleValue),
		ByCategory:    byCategory,
	}
}
