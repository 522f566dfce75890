package transaction

import (
	"errors"
	"fmt"

	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	ledgersvc "github.com/amirasaad/amanah/pkg/service/ledger"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for ledger transactions. Every mutation keeps
// account balances consistent with the stored transactions.
//
// Routes:
//   - GET    /transactions     : List transactions (?startDate&endDate&categoryId&accountId).
//   - POST   /transactions     : Record an income, expense or transfer.
//   - GET    /transactions/:id : Retrieve one transaction.
//   - PUT    /transactions/:id : Change a transaction and rebalance the accounts.
//   - DELETE /transactions/:id : Delete a transaction and reverse its effects.
func Routes(app *fiber.App, ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Get("/", ListTransactions(ledgerSvc, authSvc))
	group.Post("/", CreateTransaction(ledgerSvc, authSvc))
	group.Get("/:id", GetTransaction(ledgerSvc, authSvc))
	group.Put("/:id", UpdateTransaction(ledgerSvc, authSvc))
	group.Delete("/:id", DeleteTransaction(ledgerSvc, authSvc))
}

// CreateTransaction records a transaction for the current user and applies
// its balance effects.
// @Summary Record a transaction
// @Description Income credits the destination, expense debits the source, a transfer does both. The date defaults to today.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid amount, kind or transfer"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account or category not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transactions [post]
// @Security Bearer
func CreateTransaction(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		cmd := dto.TransactionCommand{
			UserID: userID,
			Kind:   input.Kind,
			Amount: input.Amount,
			Note:   input.Note,
		}
		if err := parseRefs(input.SourceAccountID, input.DestinationAccountID, input.CategoryID,
			&cmd.SourceAccountID, &cmd.DestinationAccountID, &cmd.CategoryID); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request", err, fiber.StatusBadRequest)
		}
		if cmd.Date, err = common.ParseDate(input.Date); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid date", err, fiber.StatusBadRequest)
		}
		tx, err := ledgerSvc.CreateTransaction(c.Context(), cmd)
		if err != nil {
			log.Errorf("Failed to create transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", ToTransactionDTO(tx))
	}
}

// ListTransactions lists the current user's transactions, newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param categoryId query string false "Category ID"
// @Param accountId query string false "Account ID on either side"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid filter"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err, fiber.StatusBadRequest)
		}
		txs, err := ledgerSvc.ListTransactions(c.Context(), userID, filter)
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", ToTransactionDTOs(txs))
	}
}

// GetTransaction fetches one transaction.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid transaction ID")
		if !ok {
			return err
		}
		tx, err := ledgerSvc.GetTransaction(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", ToTransactionDTO(tx))
	}
}

// UpdateTransaction changes a transaction. The old effects are reversed and
// the new ones applied in one storage transaction.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid amount, kind or transfer"
// @Failure 404 {object} common.ProblemDetails "Transaction, account or category not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid transaction ID")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		patch := dto.TransactionPatch{
			Kind:   input.Kind,
			Amount: input.Amount,
			Note:   input.Note,
		}
		if err := parseRefs(input.SourceAccountID, input.DestinationAccountID, input.CategoryID,
			&patch.SourceAccountID, &patch.DestinationAccountID, &patch.CategoryID); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request", err, fiber.StatusBadRequest)
		}
		if patch.Date, err = common.ParseDate(input.Date); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid date", err, fiber.StatusBadRequest)
		}
		tx, err := ledgerSvc.UpdateTransaction(c.Context(), userID, id, patch)
		if err != nil {
			log.Errorf("Failed to update transaction %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", ToTransactionDTO(tx))
	}
}

// DeleteTransaction deletes a transaction and reverses its balance effects.
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Router /transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid transaction ID")
		if !ok {
			return err
		}
		if err := ledgerSvc.DeleteTransaction(c.Context(), userID, id); err != nil {
			log.Errorf("Failed to delete transaction %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", fiber.Map{"id": id.String()})
	}
}

func parseRefs(source, destination, category *string, sourceID, destinationID, categoryID **uuid.UUID) error {
	var err error
	if *sourceID, err = common.ParseUUID(source); err != nil {
		return fmt.Errorf("%w: source_account_id", domain.ErrInvalidInput)
	}
	if *destinationID, err = common.ParseUUID(destination); err != nil {
		return fmt.Errorf("%w: destination_account_id", domain.ErrInvalidInput)
	}
	if *categoryID, err = common.ParseUUID(category); err != nil {
		return fmt.Errorf("%w: category_id", domain.ErrInvalidInput)
	}
	return nil
}

func parseFilter(c *fiber.Ctx) (filter dto.TransactionFilter, err error) {
	query := func(key string) *string {
		if v := c.Query(key); v != "" {
			return &v
		}
		return nil
	}
	if filter.StartDate, err = common.ParseDate(query("startDate")); err != nil {
		return filter, fmt.Errorf("startDate: %w", err)
	}
	if filter.EndDate, err = common.ParseDate(query("endDate")); err != nil {
		return filter, fmt.Errorf("endDate: %w", err)
	}
	if filter.CategoryID, err = common.ParseUUID(query("categoryId")); err != nil {
		return filter, errors.New("categoryId must be a valid UUID")
	}
	if filter.AccountID, err = common.ParseUUID(query("accountId")); err != nil {
		return filter, errors.New("accountId must be a valid UUID")
	}
	return filter, nil
}
