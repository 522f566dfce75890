package user

import (
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	usersvc "github.com/amirasaad/amanah/pkg/service/user"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the profile endpoints of the current user.
//
// Routes:
//   - GET /profile : Retrieve the profile.
//   - PUT /profile : Change the display name or default currency.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Get("/profile", middleware.JwtProtected(cfg.Auth.Jwt), GetProfile(userSvc, authSvc))
	app.Put("/profile", middleware.JwtProtected(cfg.Auth.Jwt), UpdateProfile(userSvc, authSvc))
}

// GetProfile returns the current user's profile.
// @Summary Get the profile
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "User not found"
// @Router /profile [get]
// @Security Bearer
func GetProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		u, err := userSvc.GetUser(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile fetched", ToProfileDTO(u))
	}
}

// UpdateProfile changes the current user's name or default currency.
// @Summary Update the profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /profile [put]
// @Security Bearer
func UpdateProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.CurrentUserID(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateProfileRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.UpdateProfile(c.Context(), userID, dto.UserUpdate{
			Name:            input.Name,
			DefaultCurrency: input.DefaultCurrency,
		})
		if err != nil {
			log.Errorf("Failed to update profile %s: %v", userID, err)
			return common.ProblemDetailsJSON(c, "Failed to update profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", ToProfileDTO(u))
	}
}
