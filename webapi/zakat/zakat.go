package zakat

import (
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	zakatsvc "github.com/amirasaad/amanah/pkg/service/zakat"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the zakat and net worth endpoints.
//
// Routes:
//   - POST /zakat/calculate : Calculate zakat and store the result.
//   - GET  /zakat/history   : Stored calculations, most recent first.
//   - GET  /zakat/net-worth : Balances summed by account kind.
func Routes(app *fiber.App, zakatSvc *zakatsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/zakat", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Post("/calculate", Calculate(zakatSvc, authSvc))
	group.Get("/history", History(zakatSvc, authSvc))
	group.Get("/net-worth", NetWorth(zakatSvc, authSvc))
}

// Calculate runs the zakat calculation for the current user.
// @Summary Calculate zakat
// @Description Zakat is 2.5% of net assets when they reach the nisab of 87.48 g gold or 612.36 g silver. The result is recorded in history; a failure to record it does not fail the request.
// @Tags zakat
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Assets and prices"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid zakat input"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /zakat/calculate [post]
// @Security Bearer
func Calculate(zakatSvc *zakatsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[CalculateRequest](c)
		if input == nil {
			return err
		}
		res, err := zakatSvc.Calculate(c.Context(), dto.ZakatCommand{
			UserID:       userID,
			ManualCash:   input.ManualCash,
			GoldWeight:   input.GoldWeight,
			GoldPrice:    input.GoldPrice,
			SilverWeight: input.SilverWeight,
			SilverPrice:  input.SilverPrice,
			Investments:  input.Investments,
			Debts:        input.Debts,
			NisabBasis:   input.NisabBasis,
		})
		if err != nil {
			log.Errorf("Failed to calculate zakat: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to calculate zakat", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Zakat calculated", ToZakatDTO(res))
	}
}

// History lists the current user's stored calculations.
// @Summary Zakat history
// @Tags zakat
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /zakat/history [get]
// @Security Bearer
func History(zakatSvc *zakatsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		records, err := zakatSvc.GetHistory(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch zakat history", err)
		}
		out := make([]*RecordDTO, 0, len(records))
		for _, r := range records {
			out = append(out, ToRecordDTO(r))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Zakat history fetched", out)
	}
}

// NetWorth sums the current user's balances.
// @Summary Net worth
// @Tags zakat
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /zakat/net-worth [get]
// @Security Bearer
func NetWorth(zakatSvc *zakatsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		nw, err := zakatSvc.GetNetWorth(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute net worth", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Net worth fetched", ToNetWorthDTO(nw))
	}
}
