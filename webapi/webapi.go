// Package webapi provides the HTTP API of the ledger. It is organized into
// sub-packages per resource:
// - auth: registration and login
// - account: cash and bank accounts
// - category: income and expense categories
// - transaction: ledger transactions
// - stock: manually valued holdings
// - user: the current user's profile
// - zakat: zakat calculation, history and net worth
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/amanah/docs"
	"github.com/amirasaad/amanah/pkg/app"
	accountweb "github.com/amirasaad/amanah/webapi/account"
	authweb "github.com/amirasaad/amanah/webapi/auth"
	categoryweb "github.com/amirasaad/amanah/webapi/category"
	"github.com/amirasaad/amanah/webapi/common"
	stockweb "github.com/amirasaad/amanah/webapi/stock"
	transactionweb "github.com/amirasaad/amanah/webapi/transaction"
	userweb "github.com/amirasaad/amanah/webapi/user"
	zakatweb "github.com/amirasaad/amanah/webapi/zakat"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, err, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	if rl := a.Config.RateLimit; rl != nil && rl.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:        rl.MaxRequests,
			Expiration: rl.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				// Behind a proxy the first X-Forwarded-For hop is the client.
				if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
					if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
						return strings.TrimSpace(forwardedFor[:commaIndex])
					}
					return strings.TrimSpace(forwardedFor)
				}
				if realIP := c.Get("X-Real-IP"); realIP != "" {
					return realIP
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Amanah API is running!")
	})

	authweb.Routes(fiberApp, a.AuthService, a.UserService)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService, a.Config)
	categoryweb.Routes(fiberApp, a.CategoryService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)
	stockweb.Routes(fiberApp, a.StockService, a.AuthService, a.Config)
	zakatweb.Routes(fiberApp, a.ZakatService, a.AuthService, a.Config)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	return fiberApp
}
