package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stocksync"
	"github.com/agentstation/stocksync/internal/config"
	"github.com/agentstation/stocksync/internal/history"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SettingsFunc     func() (*config.Config, error)
	ClientFunc       func(...stocksync.Option) (Client, error)
	HistoryFunc      func(dsn string) (*history.Store, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
}

// Settings returns settings using the mock function or an empty config.
func (m *Mock) Settings() (*config.Config, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return &config.Config{}, nil
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client(opts ...stocksync.Option) (Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	return nil, nil
}

// History opens a store using the mock function or history.Open.
func (m *Mock) History(dsn string) (*history.Store, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(dsn)
	}
	return history.Open(dsn)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
