// Package store owns the product catalog and the order-processing algorithm.
package store

import (
	"fmt"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/product"
)

// ErrEmptyOrder is returned when an order contains no line items.
var ErrEmptyOrder = errors.New("order must contain at least one line item")

// ProductNotFoundError indicates an ordered product that does not belong to
// the store's catalog. The whole order is rejected before any mutation.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s is not available in this store", e.Name)
}

// LineItem is one (product, requested quantity) pair within an order. The
// same product may appear on multiple lines; lines are priced independently.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// Store holds an ordered collection of products. Insertion order is
// preserved for listings. Membership is by product identity: two entries
// with identical attributes remain distinct.
//
// The catalog is an in-memory resource owned by a single operator session,
// but Order still runs under a mutex so the validate-then-commit sequence
// stays a single critical section if the store is ever shared.
type Store struct {
	mu       sync.RWMutex
	products []product.Product
}

// New creates a store stocked with the given products. Duplicate entries
// (same identity) are collapsed to one.
func New(products ...product.Product) *Store {
	s := &Store{}
	for _, p := range products {
		s.Add(p)
	}
	return s
}

// Add appends a product to the catalog. Adding a product that is already
// present is a no-op.
func (s *Store) Add(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p) >= 0 {
		return
	}
	s.products = append(s.products, p)
}

// Remove deletes a product from the catalog. Removing an absent product is
// a no-op.
func (s *Store) Remove(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p)
	if i < 0 {
		return
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
}

// Contains reports whether the product belongs to this store's catalog.
func (s *Store) Contains(p product.Product) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(p) >= 0
}

// indexOf returns the catalog position of p, matched by identity, or -1.
// Callers must hold mu.
func (s *Store) indexOf(p product.Product) int {
	if p == nil {
		return -1
	}
	for i, candidate := range s.products {
		if candidate.ID() == p.ID() {
			return i
		}
	}
	return -1
}

// ActiveProducts returns the currently purchasable products in catalog
// insertion order. It is a pure read.
func (s *Store) ActiveProducts() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// TotalQuantity returns the summed stock across all stocked products.
// Non-stocked products have no countable stock and are excluded.
func (s *Store) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.products {
		if p.Stocked() {
			total += p.Quantity()
		}
	}
	return total
}

// Combine returns a new store whose catalog is the concatenation of both
// catalogs. Neither operand is mutated.
func (s *Store) Combine(other *Store) *Store {
	s.mu.RLock()
	mine := append([]product.Product(nil), s.products...)
	s.mu.RUnlock()

	other.mu.RLock()
	theirs := append([]product.Product(nil), other.products...)
	other.mu.RUnlock()

	return New(append(mine, theirs...)...)
}

// Order processes a multi-item order and returns the total charge, rounded
// to 2 decimal places.
//
// The order is atomic as a whole: every line is validated against current
// read-only state first, and stock is mutated only once every line is known
// to succeed. A failure therefore never leaves partial stock decrements.
// Validation sums the requested quantity per product across lines, so
// duplicate lines for one product that are each fine alone but jointly
// exceed stock are rejected up front rather than failing mid-commit.
func (s *Store) Order(items []LineItem) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		return decimal.Zero, ErrEmptyOrder
	}

	// Validate phase: membership, per-line purchase rules, then aggregate
	// stock demand per product.
	requested := make(map[string]int, len(items))
	for _, item := range items {
		p := item.Product
		if s.indexOf(p) < 0 {
			name := "unknown"
			if p != nil {
				name = p.Name()
			}
			return decimal.Zero, &ProductNotFoundError{Name: name}
		}
		if err := p.CanPurchase(item.Quantity); err != nil {
			return decimal.Zero, err
		}
		requested[p.ID()] += item.Quantity
	}
	for _, item := range items {
		p := item.Product
		if !p.Stocked() {
			continue
		}
		if total := requested[p.ID()]; total > p.Quantity() {
			return decimal.Zero, &product.InsufficientStockError{
				Product:   p.Name(),
				Requested: total,
				Available: p.Quantity(),
			}
		}
	}

	// Commit phase: every line is now guaranteed to succeed.
	total := decimal.Zero
	for _, item := range items {
		charge, err := item.Product.Purchase(item.Quantity)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "purchase %s", item.Product.Name())
		}
		total = total.Add(charge)
	}

	return total.Round(2), nil
}
