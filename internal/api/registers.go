package api

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-demo/internal/cart"
	"github.com/nikolayk812/pdv-demo/internal/domain"
)

const (
	maxRegisterIDLen = 64
	// idleAfter is how long an empty cart stays registered once the limit is reached.
	idleAfter = 5 * time.Minute
)

var (
	ErrRegisterLimit     = errors.New("register limit reached")
	errInvalidRegisterID = errors.New("invalid registerID")
)

// EngineFactory builds the cart engine of a newly seen register.
type EngineFactory func() (*cart.Engine, error)

type registerEntry struct {
	engine   *cart.Engine
	lastUsed time.Time
}

// Registers holds one cart engine per checkout register. An engine is created
// by Get on the first write and never by Peek. At most limit engines are held;
// empty engines idle for longer than idleAfter make room for new registers.
type Registers struct {
	mu      sync.Mutex
	factory EngineFactory
	limit   int
	engines map[string]*registerEntry
	now     func() time.Time
}

func NewRegisters(factory EngineFactory, limit int) (*Registers, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit[%d] must be positive", limit)
	}

	return &Registers{
		factory: factory,
		limit:   limit,
		engines: make(map[string]*registerEntry),
		now:     time.Now,
	}, nil
}

// Get returns the register's engine, creating it when missing.
func (r *Registers) Get(registerID string) (*cart.Engine, error) {
	registerID, err := normalizeRegisterID(registerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.engines[registerID]; ok {
		entry.lastUsed = r.now()
		return entry.engine, nil
	}

	if len(r.engines) >= r.limit && r.evictIdle() == 0 {
		return nil, fmt.Errorf("%d registers in use: %w", len(r.engines), ErrRegisterLimit)
	}

	engine, err := r.factory()
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	r.engines[registerID] = &registerEntry{engine: engine, lastUsed: r.now()}

	return engine, nil
}

// Peek returns the register's engine, or a detached empty engine when the
// register holds no cart. The detached engine is not kept.
func (r *Registers) Peek(registerID string) (*cart.Engine, error) {
	registerID, err := normalizeRegisterID(registerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.engines[registerID]; ok {
		entry.lastUsed = r.now()
		return entry.engine, nil
	}

	engine, err := r.factory()
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}

	return engine, nil
}

// RemoveProduct drops productID from every held cart and reports how many carts had it.
func (r *Registers) RemoveProduct(productID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var affected int
	for _, entry := range r.engines {
		if slices.ContainsFunc(entry.engine.Items(), func(item domain.LineItem) bool {
			return item.ProductID == productID
		}) {
			entry.engine.RemoveItem(productID)
			affected++
		}
	}

	return affected
}

func (r *Registers) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.engines)
}

// evictIdle drops empty engines unused for idleAfter. Must hold r.mu.
func (r *Registers) evictIdle() int {
	cutoff := r.now().Add(-idleAfter)

	var evicted int
	for id, entry := range r.engines {
		if len(entry.engine.Items()) == 0 && entry.lastUsed.Before(cutoff) {
			delete(r.engines, id)
			evicted++
		}
	}

	return evicted
}

func normalizeRegisterID(registerID string) (string, error) {
	registerID = strings.TrimSpace(registerID)
	if registerID == "" {
		return "", fmt.Errorf("%w: registerID is empty", errInvalidRegisterID)
	}
	if len(registerID) > maxRegisterIDLen {
		return "", fmt.Errorf("%w: registerID is longer than %d", errInvalidRegisterID, maxRegisterIDLen)
	}

	return registerID, nil
}
