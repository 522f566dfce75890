// Package app wires the services together and registers the event handlers
// they react to.
package app

import (
	"context"

	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/service/category"
)

// setupEventBus registers all event handlers with the application's bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger

	bus.Register(
		events.EventTypeUserRegistered.String(),
		category.HandleUserRegistered(a.CategoryService),
	)

	bus.Register(
		events.EventTypeZakatCalculated.String(),
		func(_ context.Context, e events.Event) error {
			if evt, ok := e.(*events.ZakatCalculated); ok && !evt.Persisted {
				logger.Warn("zakat calculation was not recorded", "userID", evt.UserID)
			}
			return nil
		},
	)

	bus.Register(
		events.EventTypeTransactionApplied.String(),
		func(_ context.Context, e events.Event) error {
			if evt, ok := e.(*events.TransactionApplied); ok {
				logger.Debug("ledger transaction applied",
					"userID", evt.UserID,
					"transactionID", evt.TransactionID,
					"operation", evt.Operation,
				)
			}
			return nil
		},
	)
}
