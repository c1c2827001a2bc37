// Package appcontext provides the application context interface shared by
// all CLI commands, so commands can be tested against a mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/stocksync"
	"github.com/agentstation/stocksync/internal/config"
	"github.com/agentstation/stocksync/internal/history"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

// Client is the part of *stocksync.Client that commands use.
type Client interface {
	Sync(ctx context.Context, opts ...stocksync.SyncOption) (*sync.Result, error)
	Catalog(ctx context.Context, market offers.MarketplaceID, campaign string) (*offers.IDSet, error)
	Snapshot(ctx context.Context) ([]offers.Record, error)
	OnBatchSubmitted(fn stocksync.BatchSubmittedHook)
}

var _ Client = (*stocksync.Client)(nil)

// Interface defines the application context that commands need.
// The App struct from cmd/stocksync/app implements it.
type Interface interface {
	// Settings returns the resolved marketplace, feed and history configuration.
	Settings() (*config.Config, error)

	// Client builds a sync client from Settings with extra options applied.
	Client(opts ...stocksync.Option) (Client, error)

	// History opens the run history database at dsn.
	History(dsn string) (*history.Store, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
