package category

import (
	"context"
	"fmt"

	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/eventbus"
)

// HandleUserRegistered seeds the default categories for every newly
// registered user.
func HandleUserRegistered(svc *Service) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.UserRegistered)
		if !ok {
			return fmt.Errorf("unexpected event type %T", e)
		}
		logger := svc.logger.With("handler", "HandleUserRegistered", "userID", evt.UserID)
		logger.Info("🟢 [START] Received UserRegistered event")
		if err := svc.SeedDefaults(ctx, evt.UserID); err != nil {
			logger.Error("❌ [ERROR] Failed to seed default categories", "error", err)
			return err
		}
		logger.Info("✅ [SUCCESS] Default categories seeded")
		return nil
	}
}
