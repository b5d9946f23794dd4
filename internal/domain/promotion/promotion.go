// Package promotion implements the pricing rules that can be attached to a
// catalog product. A promotion is a pure function of (unit price, quantity):
// it never consults stock state and holds no mutable state, so applying it
// repeatedly or concurrently is always safe.
package promotion

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Type enumerates the supported promotion pricing strategies.
type Type string

const (
	// TypePercentDiscount removes a fixed percentage from the line subtotal.
	TypePercentDiscount Type = "percent_discount"
	// TypeSecondHalfPrice charges every second unit at half price.
	TypeSecondHalfPrice Type = "second_half_price"
	// TypeThirdOneFree charges two units out of every group of three.
	TypeThirdOneFree Type = "third_one_free"
)

// ErrInvalidParameter is returned when a promotion is constructed with an
// out-of-range parameter, e.g. a discount percentage outside [0, 100].
var ErrInvalidParameter = errors.New("invalid promotion parameter")

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
	two     = decimal.NewFromInt(2)
)

// Promotion is a named pricing rule. Values are constructed through the
// New* constructors, which validate strategy parameters up front.
type Promotion struct {
	Name string
	Type Type

	// Percent is the discount rate in [0, 100]. Only meaningful for
	// TypePercentDiscount.
	Percent decimal.Decimal
}

// NewPercentDiscount creates a percentage discount promotion. The percent
// must be within [0, 100]; anything else fails with ErrInvalidParameter.
func NewPercentDiscount(name string, percent decimal.Decimal) (*Promotion, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, errors.Wrapf(ErrInvalidParameter, "discount percent %s outside [0, 100]", percent)
	}
	return &Promotion{Name: name, Type: TypePercentDiscount, Percent: percent}, nil
}

// NewSecondHalfPrice creates a promotion where every second unit is half price.
func NewSecondHalfPrice(name string) *Promotion {
	return &Promotion{Name: name, Type: TypeSecondHalfPrice}
}

// NewThirdOneFree creates a buy-two-get-one-free promotion.
func NewThirdOneFree(name string) *Promotion {
	return &Promotion{Name: name, Type: TypeThirdOneFree}
}

// Apply computes the total charge for quantity units at unitPrice under this
// promotion. Callers guarantee quantity >= 1; zero-quantity line items are
// rejected upstream by the store. The result is never negative and never
// exceeds unitPrice * quantity.
func (p *Promotion) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))

	switch p.Type {
	case TypePercentDiscount:
		subtotal := unitPrice.Mul(qty)
		discount := subtotal.Mul(p.Percent).Div(hundred)
		return subtotal.Sub(discount)

	case TypeSecondHalfPrice:
		// Priced in pairs: one full price unit plus one half price unit,
		// any remaining single unit at full price.
		pairs := decimal.NewFromInt(int64(quantity / 2))
		rest := decimal.NewFromInt(int64(quantity % 2))
		pairPrice := unitPrice.Add(unitPrice.Mul(half))
		return pairPrice.Mul(pairs).Add(unitPrice.Mul(rest))

	case TypeThirdOneFree:
		// Priced in groups of three: two units charged, one free.
		groups := decimal.NewFromInt(int64(quantity / 3))
		rest := decimal.NewFromInt(int64(quantity % 3))
		groupPrice := unitPrice.Mul(two)
		return groupPrice.Mul(groups).Add(unitPrice.Mul(rest))

	default:
		return unitPrice.Mul(qty)
	}
}
