package account

import (
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	accountsvc "github.com/amirasaad/amanah/pkg/service/account"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for account operations. All routes require a
// valid JWT and only ever touch the caller's own accounts.
//
// Routes:
//   - GET    /accounts     : List the user's accounts.
//   - POST   /accounts     : Open an account.
//   - GET    /accounts/:id : Retrieve one account with its current balance.
//   - PUT    /accounts/:id : Rename, retype or rebase an account.
//   - DELETE /accounts/:id : Delete an account that no transaction references.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/accounts", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Get("/", ListAccounts(accountSvc, authSvc))
	group.Post("/", CreateAccount(accountSvc, authSvc))
	group.Get("/:id", GetAccount(accountSvc, authSvc))
	group.Put("/:id", UpdateAccount(accountSvc, authSvc))
	group.Delete("/:id", DeleteAccount(accountSvc, authSvc))
}

// CreateAccount returns a Fiber handler that opens an account for the current user.
// The current balance starts at the initial balance.
// @Summary Create a new account
// @Description Opens a cash or bank account. The currency defaults to the configured ledger currency.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account created successfully"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /accounts [post]
// @Security Bearer
func CreateAccount(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), dto.AccountCommand{
			UserID:         userID,
			Name:           input.Name,
			Kind:           input.Kind,
			InitialBalance: input.InitialBalance,
			Currency:       input.Currency,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// ListAccounts returns a Fiber handler listing the current user's accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /accounts [get]
// @Security Bearer
func ListAccounts(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", ToAccountDTOs(accounts))
	}
}

// GetAccount returns a Fiber handler fetching one account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id} [get]
// @Security Bearer
func GetAccount(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		accountID, ok, err := common.ParamID(c, "Invalid account ID")
		if !ok {
			return err
		}
		a, err := accountSvc.GetAccount(c.Context(), userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}

// UpdateAccount returns a Fiber handler applying a partial account update.
// Changing initial_balance shifts the current balance by the same difference.
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /accounts/{id} [put]
// @Security Bearer
func UpdateAccount(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		accountID, ok, err := common.ParamID(c, "Invalid account ID")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.UpdateAccount(c.Context(), userID, accountID, dto.AccountUpdate{
			Name:           input.Name,
			Kind:           input.Kind,
			Currency:       input.Currency,
			InitialBalance: input.InitialBalance,
		})
		if err != nil {
			log.Errorf("Failed to update account %s: %v", accountID, err)
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", ToAccountDTO(a))
	}
}

// DeleteAccount returns a Fiber handler deleting an unreferenced account.
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Account has transactions"
// @Router /accounts/{id} [delete]
// @Security Bearer
func DeleteAccount(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		accountID, ok, err := common.ParamID(c, "Invalid account ID")
		if !ok {
			return err
		}
		if err := accountSvc.DeleteAccount(c.Context(), userID, accountID); err != nil {
			log.Errorf("Failed to delete account %s: %v", accountID, err)
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", fiber.Map{"id": accountID.String()})
	}
}
