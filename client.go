// Package stocksync pushes a distributor's stock and price snapshot into
// marketplace catalogs.
//
// A sync run loads the snapshot once, then visits every configured target
// (the Ozon seller account and each Yandex Market campaign) in turn: it drains
// the target's offer listing, reconciles stocks and prices against the
// snapshot, and submits the updates in chunks the marketplace accepts.
// Offers the distributor no longer reports are zeroed so they stop selling.
//
// Example usage:
//
//	cfg, err := config.Load(v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := stocksync.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnTargetSynced(func(r *sync.TargetResult, err error) {
//	    log.Printf("%s done: %v", r.Target, err)
//	})
//
//	result, err := client.Sync(ctx, stocksync.WithMarketplaces(offers.MarketplaceYandex))
package stocksync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/stocksync/internal/config"
	"github.com/agentstation/stocksync/internal/feed"
	"github.com/agentstation/stocksync/internal/marketplaces/ozon"
	"github.com/agentstation/stocksync/internal/marketplaces/yandex"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

// SnapshotLoader produces the distributor snapshot for a run.
type SnapshotLoader interface {
	Load(ctx context.Context) ([]offers.Record, error)
}

// Recorder stores the outcome of each target.
type Recorder interface {
	Record(ctx context.Context, runID string, startedAt time.Time, result *sync.TargetResult, err error) error
}

// Client runs sync passes for the marketplaces in a Config.
type Client struct {
	cfg      *config.Config
	markets  map[offers.MarketplaceID]sync.Marketplace
	snapshot SnapshotLoader
	recorder Recorder
	clock    func() time.Time
	hooks    *hooks
}

// New creates a Client. Marketplace clients are built for every marketplace
// that has credentials unless one is supplied with WithMarketplace.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.NewValidationError("config", nil, "config is required")
	}

	o := &options{markets: map[offers.MarketplaceID]sync.Marketplace{}}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	c := &Client{
		cfg:      cfg,
		markets:  o.markets,
		snapshot: o.snapshot,
		recorder: o.recorder,
		clock:    o.clock,
		hooks:    newHooks(),
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.snapshot == nil {
		c.snapshot = feed.New(
			feed.WithURL(cfg.Feed.URL),
			feed.WithHeaderRow(cfg.Feed.HeaderRow),
		)
	}

	for _, id := range cfg.Marketplaces() {
		if _, ok := c.markets[id]; ok {
			continue
		}
		market, err := newMarketplace(cfg, id, o)
		if err != nil {
			return nil, err
		}
		c.markets[id] = market
	}
	return c, nil
}

func newMarketplace(cfg *config.Config, id offers.MarketplaceID, o *options) (sync.Marketplace, error) {
	switch id {
	case offers.MarketplaceOzon:
		return ozon.New(ozon.Config{
			ClientID:   cfg.Ozon.ClientID,
			APIKey:     cfg.Ozon.APIKey,
			BaseURL:    cfg.Ozon.BaseURL,
			PageSize:   cfg.Ozon.PageSize,
			Timeout:    cfg.Timeout,
			HTTPClient: o.httpClient,
		})
	case offers.MarketplaceYandex:
		return yandex.New(yandex.Config{
			Token:      cfg.Yandex.Token,
			BaseURL:    cfg.Yandex.BaseURL,
			PageSize:   cfg.Yandex.PageSize,
			Timeout:    cfg.Timeout,
			HTTPClient: o.httpClient,
		})
	}
	return nil, errors.NewValidationError("marketplace", id, "unknown marketplace")
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Snapshot loads the distributor snapshot.
func (c *Client) Snapshot(ctx context.Context) ([]offers.Record, error) {
	return c.snapshot.Load(ctx)
}

// Catalog drains the offer listing of one target of market. campaign selects
// a target by name or campaign id; empty selects the first target.
func (c *Client) Catalog(ctx context.Context, market offers.MarketplaceID, campaign string) (*offers.IDSet, error) {
	target, err := c.target(market, campaign)
	if err != nil {
		return nil, err
	}
	mp, err := c.marketplace(market)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithMarketplace(ctx, market.String())
	return sync.New(mp).CatalogIDs(ctx, target.CampaignID)
}

func (c *Client) target(market offers.MarketplaceID, campaign string) (sync.Target, error) {
	targets, err := c.cfg.Targets(market)
	if err != nil {
		return sync.Target{}, err
	}
	if campaign == "" {
		return targets[0], nil
	}
	for _, t := range targets {
		if t.Name == campaign || t.CampaignID == campaign {
			return t, nil
		}
	}
	return sync.Target{}, errors.NewNotFoundError("campaign", campaign)
}

func (c *Client) marketplace(id offers.MarketplaceID) (sync.Marketplace, error) {
	mp, ok := c.markets[id]
	if !ok {
		return nil, errors.NewConfigError(id.String(), "marketplace is not configured", errors.ErrCredentialsRequired)
	}
	return mp, nil
}

// Sync loads the snapshot and runs every selected target in order. The first
// failing target stops the run; the result lists every target attempted,
// including the failed one with whatever it completed.
func (c *Client) Sync(ctx context.Context, opts ...SyncOption) (*sync.Result, error) {
	so := &syncOptions{}
	for _, opt := range opts {
		opt(so)
	}

	result := &sync.Result{
		RunID:     uuid.NewString(),
		StartedAt: c.clock(),
		DryRun:    so.dryRun,
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx)

	markets, err := c.selected(so.marketplaces)
	if err != nil {
		return result, err
	}

	snapshot := so.snapshot
	if snapshot == nil {
		snapshot, err = c.snapshot.Load(ctx)
		if err != nil {
			return result, err
		}
	}
	result.Snapshot = len(snapshot)
	logger.Info().Int("records", len(snapshot)).Int("marketplaces", len(markets)).Msg("Sync started")

	for _, id := range markets {
		targets, err := c.cfg.Targets(id)
		if err != nil {
			return result, err
		}
		mp, err := c.marketplace(id)
		if err != nil {
			return result, err
		}

		orch := sync.New(mp,
			sync.WithDryRun(so.dryRun),
			sync.WithClock(c.clock),
			sync.WithBatchHook(c.hooks.triggerBatch),
		)
		for _, target := range targets {
			res, err := orch.Run(ctx, target, snapshot)
			result.Targets = append(result.Targets, res)
			c.record(ctx, result, res, err)
			c.hooks.triggerTarget(res, err)
			if err != nil {
				return result, err
			}
			logger.Info().Str("target", target.String()).Msg(res.Summary())
		}
	}

	logger.Info().Msg(result.Summary())
	return result, nil
}

// selected resolves the marketplace filter. An empty filter selects every
// marketplace with credentials.
func (c *Client) selected(filter []offers.MarketplaceID) ([]offers.MarketplaceID, error) {
	if len(filter) == 0 {
		configured := c.cfg.Marketplaces()
		if len(configured) == 0 {
			return nil, errors.NewConfigError("marketplaces", "no marketplace has credentials", errors.ErrCredentialsRequired)
		}
		return configured, nil
	}

	want := map[offers.MarketplaceID]bool{}
	for _, id := range filter {
		want[id] = true
	}
	var ids []offers.MarketplaceID
	for _, id := range offers.Marketplaces() {
		if want[id] {
			ids = append(ids, id)
			delete(want, id)
		}
	}
	for id := range want {
		return nil, errors.NewValidationError("marketplace", id, "unknown marketplace")
	}
	return ids, nil
}

// record stores a target outcome. History is best effort and never fails a run.
func (c *Client) record(ctx context.Context, run *sync.Result, res *sync.TargetResult, syncErr error) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, run.RunID, run.StartedAt, res, syncErr); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to record sync history")
	}
}
