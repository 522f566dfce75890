package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/amanah/infra/initializer"
	"github.com/amirasaad/amanah/pkg/app"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/webapi"
	log "github.com/charmbracelet/log"
)

// @title Amanah API
// @version 1.0.0
// @description Personal finance ledger with a zakat calculator
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Enter your Bearer token in the format: Bearer {token}
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Default().Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
