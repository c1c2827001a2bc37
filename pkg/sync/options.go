// Package sync runs one reconciliation pass for a marketplace campaign:
// drain the catalog, reconcile stocks and prices against the snapshot,
// chunk both update lists, and submit every chunk in order.
package sync

import (
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
)

// Target is one marketplace campaign to reconcile, with its write limits.
type Target struct {
	Marketplace offers.MarketplaceID `json:"marketplace" yaml:"marketplace"`

	// Name labels the target in logs and reports (for example "fbs").
	Name string `json:"name" yaml:"name"`

	// CampaignID scopes catalog and write calls. Empty when the marketplace
	// has a single implicit campaign.
	CampaignID string `json:"campaign_id,omitempty" yaml:"campaign_id,omitempty"`

	// WarehouseID is attached to stock updates when set.
	WarehouseID string `json:"warehouse_id,omitempty" yaml:"warehouse_id,omitempty"`

	Currency       offers.Currency `json:"currency" yaml:"currency"`
	StockBatchSize int             `json:"stock_batch_size" yaml:"stock_batch_size"`
	PriceBatchSize int             `json:"price_batch_size" yaml:"price_batch_size"`

	// Timestamped stamps stock updates with the pass start time.
	Timestamped bool `json:"timestamped,omitempty" yaml:"timestamped,omitempty"`
}

// String returns "marketplace/name".
func (t Target) String() string {
	if t.Name == "" {
		return t.Marketplace.String()
	}
	return t.Marketplace.String() + "/" + t.Name
}

// Validate checks that the target carries usable limits.
func (t Target) Validate() error {
	if t.Marketplace == "" {
		return errors.NewValidationError("marketplace", t.Marketplace, "marketplace is required")
	}
	if t.StockBatchSize <= 0 {
		return errors.NewValidationError("stock_batch_size", t.StockBatchSize, "must be positive")
	}
	if t.PriceBatchSize <= 0 {
		return errors.NewValidationError("price_batch_size", t.PriceBatchSize, "must be positive")
	}
	if t.Currency == "" {
		return errors.NewValidationError("currency", t.Currency, "currency is required")
	}
	return nil
}

// BatchEvent describes one chunk handed to a marketplace write API.
type BatchEvent struct {
	Target   Target
	Resource Resource
	Index    int // zero-based chunk index
	Total    int // number of chunks for this resource
	Size     int // updates in this chunk
	DryRun   bool
}

// Resource is the kind of update being written.
type Resource string

// Update resources.
const (
	ResourceStocks Resource = "stocks"
	ResourcePrices Resource = "prices"
)

// Options controls a pass.
type Options struct {
	DryRun  bool             // Reconcile and chunk without submitting
	Clock   func() time.Time // Source of the stock timestamp
	OnBatch func(BatchEvent) // Called after each chunk is submitted (or skipped in dry run)
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun: false,
		Clock:  time.Now,
	}
}

// Apply applies the given options to the sync options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDryRun skips every write call.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithClock overrides the time source used for stock timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

// WithBatchHook registers a callback invoked after every chunk.
func WithBatchHook(fn func(BatchEvent)) Option {
	return func(o *Options) {
		o.OnBatch = fn
	}
}
