package catalog

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ProductID derives a stable product ID from its barcode.
func ProductID(code string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("pdv:product:"+code))
}

// FixtureCurrency is the currency DefaultProducts are priced in.
func FixtureCurrency() currency.Unit {
	return currency.BRL
}

// DefaultProducts is the demo store's starting inventory.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		fixture("7891234567890", "iPhone 15 Pro 128GB", "Smartphone Apple com chip A17 Pro", "Smartphones", "1499.90", "1200.00", 15, 5),
		fixture("7891234567891", "Samsung Galaxy S24 256GB", "Smartphone Samsung com 256GB", "Smartphones", "1199.90", "950.00", 8, 10),
		fixture("7891234567892", "Xiaomi Redmi Note 13 128GB", "Smartphone Xiaomi com tela AMOLED", "Smartphones", "599.90", "420.00", 25, 5),
		fixture("7891234567893", "Fone Bluetooth JBL Tune 510BT", "Fone de ouvido sem fio", "Fones", "129.90", "89.90", 12, 5),
		fixture("7891234567894", "Carregador USB-C 20W", "Carregador rápido USB-C", "Carregadores", "39.90", "22.50", 30, 15),
		fixture("7891234567895", "Película de Vidro Temperado", "Película 9H para smartphones", "Acessórios", "19.90", "6.90", 45, 20),
	}
}

func fixture(code, name, description, category, price, cost string, stock, minStock int) domain.Product {
	return domain.Product{
		ID:          ProductID(code),
		Code:        code,
		Name:        name,
		Description: description,
		Category:    category,
		Price: domain.Money{
			Amount:   decimal.RequireFromString(price),
			Currency: FixtureCurrency(),
		},
		CostPrice: domain.Money{
			Amount:   decimal.RequireFromString(cost),
			Currency: FixtureCurrency(),
		},
		Stock:    stock,
		MinStock: minStock,
	}
}
