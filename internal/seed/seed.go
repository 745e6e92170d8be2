// Package seed provisions a fresh store with a demo account and the
// built-in price list, for local development.
package seed

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/pricing"
	"cocktailhaven/internal/service/session"
	"cocktailhaven/internal/store"
)

// DemoEmail is the seeded account's login.
const DemoEmail = "demo@cocktailhaven.dev"

// DemoPassword is the seeded account's password.
const DemoPassword = "cocktails"

// Apply registers the demo account and persists the built-in price table
// as overrides. Running it twice is safe.
func Apply(ctx context.Context, provider store.Provider, logger *zap.Logger) error {
	shared := provider.Namespace(store.SharedNamespace)

	sessions := session.New(shared, logger)
	_, err := sessions.Register(ctx, session.RegisterInput{
		FirstName:       "Demo",
		LastName:        "Customer",
		Email:           DemoEmail,
		Password:        DemoPassword,
		ConfirmPassword: DemoPassword,
	})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		logger.Info("demo account already present", zap.String("email", DemoEmail))
	case err != nil:
		return err
	default:
		logger.Info("demo account created", zap.String("email", DemoEmail))
	}

	raw, err := json.Marshal(pricing.NewTable().Snapshot())
	if err != nil {
		return err
	}
	if err := shared.Set(ctx, pricing.StoreKey, raw); err != nil {
		return err
	}
	logger.Info("price list seeded")
	return nil
}
