package sync

import (
	"context"
	"time"

	"github.com/agentstation/stocksync/pkg/batch"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/pager"
	"github.com/agentstation/stocksync/pkg/reconcile"
)

// TimestampLayout is the UTC, second-precision layout of stock timestamps.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Marketplace is the write and listing surface of one marketplace API.
type Marketplace interface {
	// ID identifies the marketplace.
	ID() offers.MarketplaceID

	// Strategy tells how this marketplace's catalog listing ends.
	Strategy() pager.Strategy

	// FetchPage returns one page of the campaign's offer listing.
	FetchPage(ctx context.Context, campaignID, cursor string) (*pager.Page, error)

	// SubmitStocks writes one chunk of stock updates.
	SubmitStocks(ctx context.Context, campaignID string, chunk []offers.StockUpdate) error

	// SubmitPrices writes one chunk of price updates.
	SubmitPrices(ctx context.Context, campaignID string, chunk []offers.PriceUpdate) error
}

// Orchestrator runs passes against a single marketplace.
// Each Run owns its catalog and update lists; nothing is shared between runs.
type Orchestrator struct {
	market  Marketplace
	options *Options
}

// New creates an Orchestrator for market.
func New(market Marketplace, opts ...Option) *Orchestrator {
	return &Orchestrator{
		market:  market,
		options: Defaults().Apply(opts...),
	}
}

// CatalogIDs drains the campaign's offer listing.
func (o *Orchestrator) CatalogIDs(ctx context.Context, campaignID string) (*offers.IDSet, error) {
	fetch := pager.FetcherFunc(func(ctx context.Context, cursor string) (*pager.Page, error) {
		return o.market.FetchPage(ctx, campaignID, cursor)
	})
	return pager.New(o.market.Strategy()).All(ctx, fetch)
}

// Run performs one pass for target: catalog, stock and price reconciliation,
// then sequential submission of stock chunks followed by price chunks.
//
// The first error stops the pass. Chunks submitted before it stay applied;
// the returned result reports how many were sent.
func (o *Orchestrator) Run(ctx context.Context, target Target, snapshot []offers.Record) (*TargetResult, error) {
	started := o.options.Clock()
	result := &TargetResult{Target: target, DryRun: o.options.DryRun}
	defer func() {
		result.Duration = o.options.Clock().Sub(started)
	}()

	mp := target.Marketplace.String()
	if target.Marketplace != o.market.ID() {
		return result, errors.NewValidationError("marketplace", target.Marketplace,
			"target does not belong to marketplace "+o.market.ID().String())
	}
	if err := target.Validate(); err != nil {
		return result, err
	}

	ctx = logging.WithMarketplace(ctx, mp)
	if target.Name != "" {
		ctx = logging.WithCampaign(ctx, target.Name)
	}
	logger := logging.FromContext(ctx)

	catalog, err := o.CatalogIDs(ctx, target.CampaignID)
	if err != nil {
		return result, errors.WrapSync(mp, target.Name, "catalog", err)
	}
	result.CatalogSize = catalog.Len()
	logger.Info().Int("offers", catalog.Len()).Msg("Catalog fetched")

	var stockOpts []reconcile.StockOption
	if target.WarehouseID != "" {
		stockOpts = append(stockOpts, reconcile.WithWarehouse(target.WarehouseID))
	}
	if target.Timestamped {
		stockOpts = append(stockOpts, reconcile.WithTimestamp(started.UTC().Format(TimestampLayout)))
	}

	stocks, err := reconcile.Stocks(snapshot, catalog, stockOpts...)
	if err != nil {
		return result, errors.WrapSync(mp, target.Name, "reconcile", err)
	}
	prices, err := reconcile.Prices(snapshot, catalog, target.Currency)
	if err != nil {
		return result, errors.WrapSync(mp, target.Name, "reconcile", err)
	}
	result.Stocks = stocks
	result.ActiveStocks = offers.Active(stocks)
	result.Prices = prices

	logger.Info().
		Int("stocks", len(stocks)).
		Int("in_stock", len(result.ActiveStocks)).
		Int("prices", len(prices)).
		Msg("Snapshot reconciled")

	err = submitAll(ctx, o, target, ResourceStocks, stocks, target.StockBatchSize, &result.StockBatches,
		func(ctx context.Context, chunk []offers.StockUpdate) error {
			return o.market.SubmitStocks(ctx, target.CampaignID, chunk)
		})
	if err != nil {
		return result, errors.WrapSync(mp, target.Name, string(ResourceStocks), err)
	}

	err = submitAll(ctx, o, target, ResourcePrices, prices, target.PriceBatchSize, &result.PriceBatches,
		func(ctx context.Context, chunk []offers.PriceUpdate) error {
			return o.market.SubmitPrices(ctx, target.CampaignID, chunk)
		})
	if err != nil {
		return result, errors.WrapSync(mp, target.Name, string(ResourcePrices), err)
	}

	return result, nil
}

// submitAll sends chunks of updates one at a time, counting successes in sent.
func submitAll[T any](ctx context.Context, o *Orchestrator, target Target, resource Resource,
	updates []T, size int, sent *int, submit func(context.Context, []T) error) error {
	chunks, err := batch.Chunks(updates, size)
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	total := batch.Count(len(updates), size)
	index := 0
	for chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return &errors.TransportError{
				Marketplace: target.Marketplace.String(),
				Operation:   string(resource),
				Timeout:     errors.Is(err, context.DeadlineExceeded),
				Err:         err,
			}
		}

		start := time.Now()
		if !o.options.DryRun {
			if err := submit(ctx, chunk); err != nil {
				return err
			}
			*sent++
		}

		logger.Debug().
			Str("resource", string(resource)).
			Int("chunk", index+1).
			Int("chunks", total).
			Int("size", len(chunk)).
			Dur("took", time.Since(start)).
			Bool("dry_run", o.options.DryRun).
			Msg("Chunk submitted")

		if o.options.OnBatch != nil {
			o.options.OnBatch(BatchEvent{
				Target:   target,
				Resource: resource,
				Index:    index,
				Total:    total,
				Size:     len(chunk),
				DryRun:   o.options.DryRun,
			})
		}
		index++
	}
	return nil
}
