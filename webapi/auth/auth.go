package auth

import (
	"errors"
	"time"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	usersvc "github.com/amirasaad/amanah/pkg/service/user"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the public authentication endpoints.
//
// Routes:
//   - POST /auth/register : Create a user. Default categories are seeded on UserRegistered.
//   - POST /auth/login    : Exchange username and password for a JWT.
func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service) {
	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register handles user sign-up.
// @Summary Register a user
// @Description Creates a user with a unique username and seeds the default income and expense categories.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails "Username already taken"
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.Context(), usersvc.RegisterCommand{
			Username:        input.Username,
			Password:        input.Password,
			Name:            input.Name,
			DefaultCurrency: input.DefaultCurrency,
		})
		if err != nil {
			log.Errorf("Failed to register user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", ToUserDTO(u))
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate a user with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid username or password", nil, "Username or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		token, err := authSvc.GenerateToken(c.Context(), u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}

// ToUserDTO maps a user read model to its API shape.
func ToUserDTO(u *dto.UserRead) *UserDTO {
	return &UserDTO{
		ID:              u.ID.String(),
		Username:        u.Username,
		Name:            u.Name,
		DefaultCurrency: u.DefaultCurrency,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
	}
}
