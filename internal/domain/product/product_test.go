package product

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/promotion"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newStandard(t *testing.T, name string, price string, quantity int) *Standard {
	t.Helper()
	p, err := NewStandard(name, d(price), quantity)
	require.NoError(t, err)
	return p
}

func TestNewStandardValidation(t *testing.T) {
	_, err := NewStandard("", d("10"), 5)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewStandard("Widget", d("-1"), 5)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewStandard("Widget", d("10"), -1)
	require.ErrorIs(t, err, ErrNegativeQuantity)

	p, err := NewStandard("Widget", d("0"), 0)
	require.NoError(t, err)
	assert.False(t, p.IsActive(), "zero stock product starts inactive")
}

func TestStandardPurchase(t *testing.T) {
	p := newStandard(t, "Bose QuietComfort Earbuds", "250", 500)

	charge, err := p.Purchase(50)
	require.NoError(t, err)
	assert.True(t, d("12500").Equal(charge), "got %s", charge)
	assert.Equal(t, 450, p.Quantity())
	assert.True(t, p.IsActive())
}

func TestStandardPurchaseInvalidQuantity(t *testing.T) {
	p := newStandard(t, "Widget", "10", 5)

	for _, qty := range []int{0, -1, -100} {
		_, err := p.Purchase(qty)
		require.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", qty)
		assert.Equal(t, 5, p.Quantity(), "failed purchase must not touch stock")
	}
}

func TestStandardPurchaseInsufficientStock(t *testing.T) {
	p := newStandard(t, "Widget", "10", 5)

	_, err := p.Purchase(6)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.Product)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 5, p.Quantity())
}

func TestStandardDeactivatesAtZero(t *testing.T) {
	p := newStandard(t, "Widget", "10", 1)

	_, err := p.Purchase(1)
	require.NoError(t, err)
	assert.False(t, p.IsActive())
	assert.Equal(t, 0, p.Quantity())

	// Sold out: any further purchase fails with insufficient stock.
	_, err = p.Purchase(1)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestStandardRestockReactivates(t *testing.T) {
	p := newStandard(t, "Widget", "10", 1)

	_, err := p.Purchase(1)
	require.NoError(t, err)
	require.False(t, p.IsActive())

	require.NoError(t, p.Restock(1000))
	assert.True(t, p.IsActive())
	assert.Equal(t, 1000, p.Quantity())

	require.ErrorIs(t, p.Restock(-1), ErrNegativeQuantity)
	assert.Equal(t, 1000, p.Quantity())
}

func TestStandardPurchaseWithPromotion(t *testing.T) {
	p := newStandard(t, "MacBook Air M2", "1450", 100)
	p.SetPromotion(promotion.NewSecondHalfPrice("Second Half price!"))

	charge, err := p.Purchase(2)
	require.NoError(t, err)
	assert.True(t, d("2175").Equal(charge), "got %s", charge)
	assert.Equal(t, 98, p.Quantity(), "promotion only affects price, never stock")
}

func TestSetPromotionReplacesAndClears(t *testing.T) {
	p := newStandard(t, "Widget", "10", 5)
	require.Nil(t, p.Promotion())

	first := promotion.NewThirdOneFree("Third One Free!")
	p.SetPromotion(first)
	assert.Same(t, first, p.Promotion())

	second := promotion.NewSecondHalfPrice("Second Half price!")
	p.SetPromotion(second)
	assert.Same(t, second, p.Promotion())

	p.SetPromotion(nil)
	assert.Nil(t, p.Promotion())

	charge, err := p.Purchase(2)
	require.NoError(t, err)
	assert.True(t, d("20").Equal(charge), "cleared promotion means full price, got %s", charge)
}

func TestNonStocked(t *testing.T) {
	p, err := NewNonStocked("Windows License", d("125"))
	require.NoError(t, err)

	assert.False(t, p.Stocked())
	assert.Equal(t, 0, p.Quantity())
	assert.True(t, p.IsActive())

	// Purchasable in any quantity regardless of any stock notion.
	charge, err := p.Purchase(1_000_000)
	require.NoError(t, err)
	assert.True(t, d("125000000").Equal(charge), "got %s", charge)
	assert.True(t, p.IsActive())

	_, err = p.Purchase(0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	require.ErrorIs(t, p.Restock(10), ErrNotStocked)
}

func TestLimitedCapCheckedBeforeStock(t *testing.T) {
	p, err := NewLimited("Shipping", d("10"), 250, 1)
	require.NoError(t, err)

	// Stock would easily cover the request; the cap still rejects it.
	_, err = p.Purchase(2)
	var capErr *MaxQuantityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Shipping", capErr.Product)
	assert.Equal(t, 2, capErr.Requested)
	assert.Equal(t, 1, capErr.Max)
	assert.Equal(t, 250, p.Quantity())

	charge, err := p.Purchase(1)
	require.NoError(t, err)
	assert.True(t, d("10").Equal(charge))
	assert.Equal(t, 249, p.Quantity())
}

func TestLimitedCapBeatsStockCheck(t *testing.T) {
	p, err := NewLimited("Shipping", d("10"), 2, 5)
	require.NoError(t, err)

	// Request over both the cap and the stock: the cap error wins.
	_, err = p.Purchase(6)
	var capErr *MaxQuantityExceededError
	require.ErrorAs(t, err, &capErr)

	// Request within the cap but over the stock.
	_, err = p.Purchase(4)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestNewLimitedValidation(t *testing.T) {
	_, err := NewLimited("Shipping", d("10"), 5, 0)
	require.ErrorIs(t, err, ErrInvalidMaxPerOrder)

	_, err = NewLimited("Shipping", d("10"), -1, 1)
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestDisplay(t *testing.T) {
	std := newStandard(t, "Google Pixel 7", "500", 250)
	assert.Equal(t, "Google Pixel 7, Price: 500, Quantity: 250", std.Display())

	promo, err := promotion.NewPercentDiscount("30% off!", d("30"))
	require.NoError(t, err)
	std.SetPromotion(promo)
	assert.Equal(t, "Google Pixel 7, Price: 500, Quantity: 250, Promotion: 30% off!", std.Display())

	ns, err := NewNonStocked("Windows License", d("125"))
	require.NoError(t, err)
	assert.Equal(t, "Windows License, Price: 125", ns.Display())

	lim, err := NewLimited("Shipping", d("10"), 250, 1)
	require.NoError(t, err)
	assert.Equal(t, "Shipping, Price: 10, Quantity: 250, Max per order: 1", lim.Display())
}

func TestProductsAreDistinctByIdentity(t *testing.T) {
	a := newStandard(t, "Widget", "10", 5)
	b := newStandard(t, "Widget", "10", 5)

	assert.NotEqual(t, a.ID(), b.ID(), "identical attributes must not collapse identity")
}

func TestByPriceSort(t *testing.T) {
	mac := newStandard(t, "MacBook Air M2", "1450", 100)
	bose := newStandard(t, "Bose QuietComfort Earbuds", "250", 500)
	pixel := newStandard(t, "Google Pixel 7", "500", 250)

	items := ByPrice{mac, bose, pixel}
	sort.Sort(items)

	assert.Equal(t, []string{"Bose QuietComfort Earbuds", "Google Pixel 7", "MacBook Air M2"},
		[]string{items[0].Name(), items[1].Name(), items[2].Name()})
}
