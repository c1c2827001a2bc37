package stocksync

import (
	"net/http"
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

// options holds Client construction settings.
type options struct {
	markets    map[offers.MarketplaceID]sync.Marketplace
	snapshot   SnapshotLoader
	recorder   Recorder
	httpClient *http.Client
	clock      func() time.Time
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithMarketplace uses market instead of building a client from config.
func WithMarketplace(market sync.Marketplace) Option {
	return func(o *options) error {
		if market == nil {
			return errors.NewValidationError("marketplace", nil, "marketplace is nil")
		}
		o.markets[market.ID()] = market
		return nil
	}
}

// WithSnapshotLoader replaces the default feed download.
func WithSnapshotLoader(loader SnapshotLoader) Option {
	return func(o *options) error {
		o.snapshot = loader
		return nil
	}
}

// WithRecorder stores every target outcome in recorder.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) error {
		o.recorder = recorder
		return nil
	}
}

// WithHTTPClient sets the http.Client used by marketplace clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithClock overrides the time source for run start and stock timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		o.clock = clock
		return nil
	}
}

// syncOptions holds per-run settings.
type syncOptions struct {
	marketplaces []offers.MarketplaceID
	dryRun       bool
	snapshot     []offers.Record
}

// SyncOption configures one Sync call.
type SyncOption func(*syncOptions)

// WithMarketplaces limits the run to the given marketplaces.
func WithMarketplaces(ids ...offers.MarketplaceID) SyncOption {
	return func(o *syncOptions) {
		o.marketplaces = append(o.marketplaces, ids...)
	}
}

// WithDryRun reconciles and chunks without calling any write API.
func WithDryRun(dryRun bool) SyncOption {
	return func(o *syncOptions) {
		o.dryRun = dryRun
	}
}

// WithSnapshot uses records instead of loading the snapshot.
func WithSnapshot(records []offers.Record) SyncOption {
	return func(o *syncOptions) {
		if records == nil {
			records = []offers.Record{}
		}
		o.snapshot = records
	}
}
