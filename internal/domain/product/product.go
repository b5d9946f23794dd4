// Package product models catalog entries and their purchase rules. The
// variant set is closed: Standard tracks stock, NonStocked has no quantity
// concept, and Limited adds a per-order purchase cap on top of stock.
package product

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/promotion"
)

// Construction and validation errors.
var (
	ErrEmptyName          = errors.New("product name cannot be empty")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrNegativeQuantity   = errors.New("quantity cannot be negative")
	ErrInvalidMaxPerOrder = errors.New("max per order must be greater than 0")

	// ErrInvalidQuantity is returned when a purchase is requested with a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("purchase quantity must be greater than 0")

	// ErrNotStocked is returned when a stock operation is applied to a
	// product that has no quantity concept.
	ErrNotStocked = errors.New("product does not track stock")
)

// InsufficientStockError indicates a purchase request exceeding available stock.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Product, e.Requested, e.Available)
}

// MaxQuantityExceededError indicates a purchase request exceeding a limited
// product's per-order cap. The cap is checked before any stock check.
type MaxQuantityExceededError struct {
	Product   string
	Requested int
	Max       int
}

func (e *MaxQuantityExceededError) Error() string {
	return fmt.Sprintf("order limit exceeded for %s: requested %d, at most %d per order",
		e.Product, e.Requested, e.Max)
}

// Product is the capability contract shared by all catalog entry variants.
//
// Identity is the generated ID: two products with identical attributes are
// still distinct catalog entries. Price comparisons (see ByPrice) are a
// sorting convenience, not equality.
type Product interface {
	ID() string
	Name() string
	Price() decimal.Decimal

	// Quantity returns the current stock. Non-stocked products report 0;
	// check Stocked to tell "sold out" apart from "not tracked".
	Quantity() int
	// Stocked reports whether this variant tracks stock at all.
	Stocked() bool
	// IsActive reports whether the product can currently be purchased.
	// Stocked variants are active exactly while quantity > 0.
	IsActive() bool

	// Promotion returns the attached promotion, or nil.
	Promotion() *promotion.Promotion
	// SetPromotion replaces any existing promotion; nil clears it.
	SetPromotion(p *promotion.Promotion)

	// CanPurchase validates a purchase of the given quantity without
	// mutating anything. It returns the same errors Purchase would.
	CanPurchase(quantity int) error
	// Purchase buys the given quantity, returning the line charge. It
	// either fully succeeds (charge computed, stock decremented) or fails
	// without touching stock.
	Purchase(quantity int) (decimal.Decimal, error)
	// Restock explicitly sets the stock level. Setting a positive quantity
	// is the only way a sold-out product becomes active again.
	Restock(quantity int) error

	// Display formats the product for operator-facing listings.
	Display() string
}

func validateNew(name string, price decimal.Decimal) error {
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return errors.Wrapf(ErrNegativePrice, "product %s", name)
	}
	return nil
}

// lineCharge computes the charge for quantity units, applying the promotion
// when one is attached.
func lineCharge(price decimal.Decimal, promo *promotion.Promotion, quantity int) decimal.Decimal {
	if promo != nil {
		return promo.Apply(price, quantity)
	}
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Standard is a regular stocked product: purchases decrement stock and the
// product deactivates the moment stock reaches zero.
type Standard struct {
	id       string
	name     string
	price    decimal.Decimal
	quantity int
	promo    *promotion.Promotion
}

// NewStandard creates a stocked product with the given initial quantity.
func NewStandard(name string, price decimal.Decimal, quantity int) (*Standard, error) {
	if err := validateNew(name, price); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errors.Wrapf(ErrNegativeQuantity, "product %s", name)
	}
	return &Standard{
		id:       uuid.New().String(),
		name:     name,
		price:    price,
		quantity: quantity,
	}, nil
}

func (p *Standard) ID() string             { return p.id }
func (p *Standard) Name() string           { return p.name }
func (p *Standard) Price() decimal.Decimal { return p.price }
func (p *Standard) Quantity() int          { return p.quantity }
func (p *Standard) Stocked() bool          { return true }
func (p *Standard) IsActive() bool         { return p.quantity > 0 }

func (p *Standard) Promotion() *promotion.Promotion      { return p.promo }
func (p *Standard) SetPromotion(pr *promotion.Promotion) { p.promo = pr }

func (p *Standard) CanPurchase(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > p.quantity {
		return &InsufficientStockError{Product: p.name, Requested: quantity, Available: p.quantity}
	}
	return nil
}

func (p *Standard) Purchase(quantity int) (decimal.Decimal, error) {
	if err := p.CanPurchase(quantity); err != nil {
		return decimal.Zero, err
	}
	p.quantity -= quantity
	return lineCharge(p.price, p.promo, quantity), nil
}

func (p *Standard) Restock(quantity int) error {
	if quantity < 0 {
		return errors.Wrapf(ErrNegativeQuantity, "product %s", p.name)
	}
	p.quantity = quantity
	return nil
}

func (p *Standard) Display() string {
	s := fmt.Sprintf("%s, Price: %s, Quantity: %d", p.name, p.price, p.quantity)
	if p.promo != nil {
		s += ", Promotion: " + p.promo.Name
	}
	return s
}

// NonStocked is a product with no quantity concept, e.g. a digital license.
// It is always purchasable and never deactivates.
type NonStocked struct {
	id    string
	name  string
	price decimal.Decimal
	promo *promotion.Promotion
}

// NewNonStocked creates a product without stock tracking.
func NewNonStocked(name string, price decimal.Decimal) (*NonStocked, error) {
	if err := validateNew(name, price); err != nil {
		return nil, err
	}
	return &NonStocked{
		id:    uuid.New().String(),
		name:  name,
		price: price,
	}, nil
}

func (p *NonStocked) ID() string             { return p.id }
func (p *NonStocked) Name() string           { return p.name }
func (p *NonStocked) Price() decimal.Decimal { return p.price }

// Quantity is always 0: non-stocked products have no stock to count and are
// excluded from store quantity totals.
func (p *NonStocked) Quantity() int  { return 0 }
func (p *NonStocked) Stocked() bool  { return false }
func (p *NonStocked) IsActive() bool { return true }

func (p *NonStocked) Promotion() *promotion.Promotion      { return p.promo }
func (p *NonStocked) SetPromotion(pr *promotion.Promotion) { p.promo = pr }

func (p *NonStocked) CanPurchase(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

func (p *NonStocked) Purchase(quantity int) (decimal.Decimal, error) {
	if err := p.CanPurchase(quantity); err != nil {
		return decimal.Zero, err
	}
	return lineCharge(p.price, p.promo, quantity), nil
}

func (p *NonStocked) Restock(int) error {
	return errors.Wrapf(ErrNotStocked, "product %s", p.name)
}

func (p *NonStocked) Display() string {
	s := fmt.Sprintf("%s, Price: %s", p.name, p.price)
	if p.promo != nil {
		s += ", Promotion: " + p.promo.Name
	}
	return s
}

// Limited is a stocked product with a per-order purchase cap. The cap is
// checked before the stock check and independently of available stock.
type Limited struct {
	id          string
	name        string
	price       decimal.Decimal
	quantity    int
	maxPerOrder int
	promo       *promotion.Promotion
}

// NewLimited creates a stocked product capped at maxPerOrder units per purchase.
func NewLimited(name string, price decimal.Decimal, quantity, maxPerOrder int) (*Limited, error) {
	if err := validateNew(name, price); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errors.Wrapf(ErrNegativeQuantity, "product %s", name)
	}
	if maxPerOrder < 1 {
		return nil, errors.Wrapf(ErrInvalidMaxPerOrder, "product %s", name)
	}
	return &Limited{
		id:          uuid.New().String(),
		name:        name,
		price:       price,
		quantity:    quantity,
		maxPerOrder: maxPerOrder,
	}, nil
}

func (p *Limited) ID() string             { return p.id }
func (p *Limited) Name() string           { return p.name }
func (p *Limited) Price() decimal.Decimal { return p.price }
func (p *Limited) Quantity() int          { return p.quantity }
func (p *Limited) MaxPerOrder() int       { return p.maxPerOrder }
func (p *Limited) Stocked() bool          { return true }
func (p *Limited) IsActive() bool         { return p.quantity > 0 }

func (p *Limited) Promotion() *promotion.Promotion      { return p.promo }
func (p *Limited) SetPromotion(pr *promotion.Promotion) { p.promo = pr }

// CanPurchase checks, in order: quantity validity, the per-order cap, then stock.
func (p *Limited) CanPurchase(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > p.maxPerOrder {
		return &MaxQuantityExceededError{Product: p.name, Requested: quantity, Max: p.maxPerOrder}
	}
	if quantity > p.quantity {
		return &InsufficientStockError{Product: p.name, Requested: quantity, Available: p.quantity}
	}
	return nil
}

func (p *Limited) Purchase(quantity int) (decimal.Decimal, error) {
	if err := p.CanPurchase(quantity); err != nil {
		return decimal.Zero, err
	}
	p.quantity -= quantity
	return lineCharge(p.price, p.promo, quantity), nil
}

func (p *Limited) Restock(quantity int) error {
	if quantity < 0 {
		return errors.Wrapf(ErrNegativeQuantity, "product %s", p.name)
	}
	p.quantity = quantity
	return nil
}

func (p *Limited) Display() string {
	s := fmt.Sprintf("%s, Price: %s, Quantity: %d", p.name, p.price, p.quantity)
	if p.promo != nil {
		s += ", Promotion: " + p.promo.Name
	}
	s += fmt.Sprintf(", Max per order: %d", p.maxPerOrder)
	return s
}

// ByPrice sorts products by unit price, ascending.
type ByPrice []Product

func (s ByPrice) Len() int           { return len(s) }
func (s ByPrice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByPrice) Less(i, j int) bool { return s[i].Price().LessThan(s[j].Price()) }
