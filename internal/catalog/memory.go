package catalog

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/domain"
)

// Memory is a thread-safe in-memory product catalog.
type Memory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewMemory(products ...domain.Product) (*Memory, error) {
	m := &Memory{
		products: make(map[uuid.UUID]domain.Product, len(products)),
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product[%s]: %w", p.Code, err)
		}
		if id, taken := m.codeOwner(p); taken {
			return nil, fmt.Errorf("code[%s] already used by product %s: %w", p.Code, id, domain.ErrProductCodeTaken)
		}
		m.products[p.ID] = p
	}

	return m, nil
}

func (m *Memory) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	return p, nil
}

// SearchProducts matches a case-insensitive substring of the name or a
// substring of the barcode. An empty query lists every product.
func (m *Memory) SearchProducts(_ context.Context, query string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.TrimSpace(query)
	needle := strings.ToLower(query)

	var result []domain.Product
	for p := range maps.Values(m.products) {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(p.Code, query) {
			result = append(result, p)
		}
	}

	sortByName(result)

	return result, nil
}

func (m *Memory) LowStockProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []domain.Product
	for p := range maps.Values(m.products) {
		if p.LowStock() {
			result = append(result, p)
		}
	}

	sortByName(result)

	return result, nil
}

func (m *Memory) UpsertProduct(_ context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id, taken := m.codeOwner(product); taken {
		return fmt.Errorf("code[%s] already used by product %s: %w", product.Code, id, domain.ErrProductCodeTaken)
	}

	m.products[product.ID] = product

	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[productID]; !ok {
		return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}
	delete(m.products, productID)

	return nil
}

// DeductStock removes sold quantities from stock. Either every line is
// deducted or none is.
func (m *Memory) DeductStock(_ context.Context, items []domain.SaleItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	requested := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		requested[item.ProductID] += item.Quantity
	}

	// first pass: validate
	for productID, qty := range requested {
		p, ok := m.products[productID]
		if !ok {
			return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}
		if p.Stock < qty {
			return &domain.InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: qty}
		}
	}

	// second pass: mutate
	for productID, qty := range requested {
		p := m.products[productID]
		p.Stock -= qty
		m.products[productID] = p
	}

	return nil
}

func (m *Memory) codeOwner(product domain.Product) (uuid.UUID, bool) {
	for id, p := range m.products {
		if p.Code == product.Code && id != product.ID {
			return id, true
		}
	}
	return uuid.Nil, false
}

func sortByName(products []domain.Product) {
	slices.SortFunc(products, func(a, b domain.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Code, b.Code))
	})
}
