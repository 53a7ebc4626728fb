package app

import (
	"fmt"
	"log/slog"

	"skyglance.app/api"
	"skyglance.app/config"
	"skyglance.app/metrics"
	"skyglance.app/pkg/logger"
	"skyglance.app/providers"
	"skyglance.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	server *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	provider, err := app.createProvider()
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}

	weatherService := service.NewWeatherService(provider)
	widgetSessions := service.NewWidgetSessionService(provider)

	app.server = api.NewServer(app.config, weatherService, widgetSessions)

	slog.Info("Services initialized successfully")
	return nil
}

// createProvider assembles the decorated provider stack: the OpenWeatherMap
// client wrapped in logging, wrapped in the instrumented cache proxy.
func (app *Application) createProvider() (providers.WeatherProvider, error) {
	slog.Debug("Creating weather provider...")

	snapshotCache, err := providers.NewSnapshotCache(&app.config.Cache)
	if err != nil {
		return nil, err
	}

	log := logger.NewFromEnv()

	provider := providers.NewOpenWeatherProvider(app.config.Weather.APIKey, app.config.Weather.BaseURL)
	provider = providers.NewWeatherLoggerDecorator(provider, log, "openweathermap")
	provider = providers.NewWeatherCacheProxy(
		provider,
		snapshotCache,
		app.config.Cache.TTL(),
		metrics.NewCacheMetrics(app.config.Cache.Type),
	)

	return provider, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
