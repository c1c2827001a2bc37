// Package app provides the application context and dependency management
// for the stocksync CLI: configuration, logging, and lazily built clients.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/stocksync"
	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/config"
	"github.com/agentstation/stocksync/internal/history"
)

// App represents the stocksync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Resolved settings (lazy-initialized once flags are parsed)
	mu       sync.Mutex
	settings *config.Config
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the CLI configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings resolves marketplace, feed and history settings on first use,
// after the config file flag has been applied.
func (a *App) Settings() (*config.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.settings != nil {
		return a.settings, nil
	}
	settings, err := a.config.LoadSettings()
	if err != nil {
		return nil, err
	}
	a.settings = settings
	return settings, nil
}

// Client builds a sync client from the settings.
func (a *App) Client(opts ...stocksync.Option) (appcontext.Client, error) {
	settings, err := a.Settings()
	if err != nil {
		return nil, err
	}
	client, err := stocksync.New(settings, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// History opens the run history database.
func (a *App) History(dsn string) (*history.Store, error) {
	return history.Open(dsn)
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSettings sets resolved settings, skipping config file and env loading.
func WithSettings(settings *config.Config) Option {
	return func(a *App) error {
		a.settings = settings
		return nil
	}
}
