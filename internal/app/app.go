package app

import (
	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/config"
	"webhook-examples/internal/providers"
	"webhook-examples/internal/server"

	"github.com/gorilla/mux"
)

// App holds the application dependencies
type App struct {
	Config    *config.Config
	Endpoints []providers.Endpoint
	Logger    logging.Logger
}

// New creates a new application instance with every catalog endpoint wired
// to its credentials
func New(cfg *config.Config) *App {
	app := &App{
		Config:    cfg,
		Endpoints: providers.All(cfg),
		Logger:    logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	names := make([]string, 0, len(app.Endpoints))
	for _, endpoint := range app.Endpoints {
		names = append(names, endpoint.Name)
	}
	app.Logger.Info("Catalog endpoints registered",
		logging.Int("count", len(app.Endpoints)),
		logging.Strings("providers", names),
	)

	// Endpoints stay up without their credential, they just answer 500
	// until it is provided
	if missing := app.Config.MissingCredentials(); len(missing) > 0 {
		app.Logger.Warn("Credentials are unset",
			logging.Strings("variables", missing),
		)
	}

	return app
}

// RunServer builds the router with all catalog routes and wraps it in the
// HTTP server
func (app *App) RunServer() *server.Server {
	router := mux.NewRouter()
	SetupRoutes(router, app)

	return server.New(router, app.Config.Port, app.Config.TLSCert, app.Config.TLSKey)
}
