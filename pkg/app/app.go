package app

import (
	"log/slog"

	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/eventbus"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/amirasaad/amanah/pkg/service/account"
	"github.com/amirasaad/amanah/pkg/service/auth"
	"github.com/amirasaad/amanah/pkg/service/category"
	"github.com/amirasaad/amanah/pkg/service/ledger"
	"github.com/amirasaad/amanah/pkg/service/stock"
	"github.com/amirasaad/amanah/pkg/service/user"
	"github.com/amirasaad/amanah/pkg/service/zakat"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow             repository.UnitOfWork
	EventBus        eventbus.Bus
	MetalPriceCache cache.MetalPriceCache
	Logger          *slog.Logger
}

type App struct {
	Deps            *Deps
	Config          *config.App
	AuthService     *auth.Service
	UserService     *user.Service
	AccountService  *account.Service
	CategoryService *category.Service
	LedgerService   *ledger.Service
	StockService    *stock.Service
	ZakatService    *zakat.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	if cfg.Auth != nil && cfg.Auth.Jwt != nil {
		app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, deps.Logger)
	}

	currency := config.DefaultCurrency(cfg)
	app.UserService = user.New(deps.Uow, deps.EventBus, currency, deps.Logger)
	app.AccountService = account.New(deps.Uow, currency, deps.Logger)
	app.CategoryService = category.New(deps.Uow, deps.Logger)
	app.LedgerService = ledger.New(deps.Uow, deps.EventBus, deps.Logger)
	app.StockService = stock.New(deps.Uow, deps.Logger)
	app.ZakatService = zakat.New(
		deps.Uow,
		deps.MetalPriceCache,
		deps.EventBus,
		cfg.Zakat,
		deps.Logger,
	)

	app.setupEventBus()
	return app
}
