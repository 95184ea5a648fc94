package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gypcmake/internal/config"
	"github.com/specialistvlad/gypcmake/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
}

// NewApp builds an App with its own logger and resolved translator
// settings: built-in defaults, then the settings file, then the CLI token.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings := config.Default()
	if appConfig.SettingsPath != "" {
		loaded, err := config.Load(ctx, appConfig.SettingsPath, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
	}

	switch {
	case appConfig.Token != "":
		settings.Token = appConfig.Token
	case settings.Token == "":
		settings.Token = config.NewToken()
		logger.Debug("Generated root token chosen.", "token", settings.Token)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	logger.Debug("Settings resolved.", "configurations", settings.Configurations, "policy", settings.Policy.String())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
	}, nil
}

// Settings returns the resolved translator settings. This is primarily for testing.
func (a *App) Settings() *config.Settings {
	return a.settings
}
