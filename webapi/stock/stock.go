package stock

import (
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	stocksvc "github.com/amirasaad/amanah/pkg/service/stock"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for manually valued holdings.
//
// Routes:
//   - GET    /stocks     : List holdings, newest first.
//   - POST   /stocks     : Record a holding.
//   - GET    /stocks/:id : Retrieve one holding.
//   - PUT    /stocks/:id : Change a holding's name, value or notes.
//   - DELETE /stocks/:id : Delete a holding.
func Routes(app *fiber.App, stockSvc *stocksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/stocks", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Get("/", ListStocks(stockSvc, authSvc))
	group.Post("/", CreateStock(stockSvc, authSvc))
	group.Get("/:id", GetStock(stockSvc, authSvc))
	group.Put("/:id", UpdateStock(stockSvc, authSvc))
	group.Delete("/:id", DeleteStock(stockSvc, authSvc))
}

// CreateStock records a holding for the current user.
// @Summary Record a holding
// @Tags stocks
// @Accept json
// @Produce json
// @Param request body CreateStockRequest true "Holding details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /stocks [post]
// @Security Bearer
func CreateStock(stockSvc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CreateStockRequest](c)
		if input == nil {
			return err
		}
		h, err := stockSvc.CreateStock(c.Context(), stocksvc.CreateCommand{
			UserID: userID,
			Name:   input.Name,
			Value:  input.Value,
			Notes:  input.Notes,
		})
		if err != nil {
			log.Errorf("Failed to create holding: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create holding", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Holding created", ToStockDTO(h))
	}
}

// ListStocks lists the current user's holdings.
// @Summary List holdings
// @Tags stocks
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /stocks [get]
// @Security Bearer
func ListStocks(stockSvc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		stocks, err := stockSvc.ListStocks(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list holdings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holdings fetched", ToStockDTOs(stocks))
	}
}

// GetStock fetches one holding.
// @Summary Get a holding
// @Tags stocks
// @Produce json
// @Param id path string true "Holding ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Holding not found"
// @Router /stocks/{id} [get]
// @Security Bearer
func GetStock(stockSvc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid holding ID")
		if !ok {
			return err
		}
		h, err := stockSvc.GetStock(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get holding", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holding fetched", ToStockDTO(h))
	}
}

// UpdateStock changes a holding.
// @Summary Update a holding
// @Tags stocks
// @Accept json
// @Produce json
// @Param id path string true "Holding ID"
// @Param request body UpdateStockRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Holding not found"
// @Router /stocks/{id} [put]
// @Security Bearer
func UpdateStock(stockSvc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid holding ID")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateStockRequest](c)
		if input == nil {
			return err
		}
		h, err := stockSvc.UpdateStock(c.Context(), userID, id, dto.StockUpdate{
			Name:  input.Name,
			Value: input.Value,
			Notes: input.Notes,
		})
		if err != nil {
			log.Errorf("Failed to update holding %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update holding", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holding updated", ToStockDTO(h))
	}
}

// DeleteStock deletes a holding.
// @Summary Delete a holding
// @Tags stocks
// @Produce json
// @Param id path string true "Holding ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails "Holding not found"
// @Router /stocks/{id} [delete]
// @Security Bearer
func DeleteStock(stockSvc *stocksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		id, ok, err := common.ParamID(c, "Invalid holding ID")
		if !ok {
			return err
		}
		if err := stockSvc.DeleteStock(c.Context(), userID, id); err != nil {
			log.Errorf("Failed to delete holding %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to delete holding", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holding deleted", fiber.Map{"id": id.String()})
	}
}
