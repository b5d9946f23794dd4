package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/storefront/internal/cli"
	"github.com/xenking/storefront/internal/domain/product"
	"github.com/xenking/storefront/internal/domain/promotion"
	"github.com/xenking/storefront/internal/domain/store"
)

// Run seeds the demo catalog and drives the operator menu until the session
// ends. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	st, err := seedCatalog()
	if err != nil {
		return errors.Wrap(err, "seed catalog")
	}

	lg.Info("Catalog ready",
		zap.Int("products", len(st.ActiveProducts())),
		zap.Int("total_quantity", st.TotalQuantity()),
	)

	menu := cli.New(cli.Config{
		Prompt:   cfg.Prompt,
		DoneWord: cfg.DoneWord,
	}, st, os.Stdin, os.Stdout, lg)

	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "menu")
	}
	return nil
}

// seedCatalog builds the demo inventory: three stocked products with the
// full promotion set, a digital license without stock tracking, and a
// shipping fee capped at one per order.
func seedCatalog() (*store.Store, error) {
	mac, err := product.NewStandard("MacBook Air M2", decimal.NewFromInt(1450), 100)
	if err != nil {
		return nil, err
	}
	bose, err := product.NewStandard("Bose QuietComfort Earbuds", decimal.NewFromInt(250), 500)
	if err != nil {
		return nil, err
	}
	pixel, err := product.NewStandard("Google Pixel 7", decimal.NewFromInt(500), 250)
	if err != nil {
		return nil, err
	}
	license, err := product.NewNonStocked("Windows License", decimal.NewFromInt(125))
	if err != nil {
		return nil, err
	}
	shipping, err := product.NewLimited("Shipping", decimal.NewFromInt(10), 250, 1)
	if err != nil {
		return nil, err
	}

	thirtyOff, err := promotion.NewPercentDiscount("30% off!", decimal.NewFromInt(30))
	if err != nil {
		return nil, err
	}
	mac.SetPromotion(promotion.NewSecondHalfPrice("Second Half price!"))
	bose.SetPromotion(promotion.NewThirdOneFree("Third One Free!"))
	pixel.SetPromotion(thirtyOff)

	return store.New(mac, bose, pixel, license, shipping), nil
}
