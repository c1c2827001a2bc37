package sync

import (
	"fmt"
	"time"

	"github.com/agentstation/stocksync/pkg/offers"
)

// TargetResult is the outcome of one pass over a target.
type TargetResult struct {
	Target Target `json:"target" yaml:"target"`

	CatalogSize int `json:"catalog_size" yaml:"catalog_size"`

	// Stocks holds one update per catalog offer.
	Stocks []offers.StockUpdate `json:"stocks" yaml:"stocks"`

	// ActiveStocks is the subset of Stocks with non-zero stock.
	ActiveStocks []offers.StockUpdate `json:"active_stocks" yaml:"active_stocks"`

	// Prices holds updates for offers present in the snapshot.
	Prices []offers.PriceUpdate `json:"prices" yaml:"prices"`

	// Chunk counts actually submitted; on failure they show how far the pass got.
	StockBatches int `json:"stock_batches" yaml:"stock_batches"`
	PriceBatches int `json:"price_batches" yaml:"price_batches"`

	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary returns a one-line description of the result.
func (r *TargetResult) Summary() string {
	s := fmt.Sprintf("%s: %d offers, %d stock updates (%d in stock), %d price updates",
		r.Target, r.CatalogSize, len(r.Stocks), len(r.ActiveStocks), len(r.Prices))
	if r.DryRun {
		s += " (dry run)"
	}
	return s
}

// Result is the outcome of a pass over several targets.
type Result struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Snapshot  int             `json:"snapshot_records" yaml:"snapshot_records"`
	Targets   []*TargetResult `json:"targets" yaml:"targets"`
	DryRun    bool            `json:"dry_run" yaml:"dry_run"`
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	stocks, prices := 0, 0
	for _, t := range r.Targets {
		stocks += len(t.Stocks)
		prices += len(t.Prices)
	}
	s := fmt.Sprintf("%d targets synced: %d stock updates, %d price updates from %d snapshot records",
		len(r.Targets), stocks, prices, r.Snapshot)
	if r.DryRun {
		s += " (dry run)"
	}
	return s
}
