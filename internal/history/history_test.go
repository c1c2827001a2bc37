package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	stsync "github.com/agentstation/stocksync/pkg/sync"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite://" + filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fbsResult() *stsync.TargetResult {
	return &stsync.TargetResult{
		Target: stsync.Target{
			Marketplace: offers.MarketplaceYandex,
			Name:        "fbs",
			CampaignID:  "21621656",
		},
		CatalogSize:  2,
		Stocks:       []offers.StockUpdate{{OfferID: "A", Stock: 100}, {OfferID: "B"}},
		ActiveStocks: []offers.StockUpdate{{OfferID: "A", Stock: 100}},
		Prices:       []offers.PriceUpdate{{OfferID: "A", Value: 1000}},
		StockBatches: 1,
		PriceBatches: 1,
		Duration:     1500 * time.Millisecond,
	}
}

func TestNewRun(t *testing.T) {
	started := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("MSK", 3*60*60))

	run := NewRun("run-1", started, fbsResult(), nil)
	assert.Equal(t, "yandex", run.Marketplace)
	assert.Equal(t, "yandex/fbs", run.Target)
	assert.Equal(t, 2, run.StockUpdates)
	assert.Equal(t, 1, run.ActiveStocks)
	assert.Equal(t, int64(1500), run.DurationMs)
	assert.Equal(t, StatusOK, run.Status)
	assert.Equal(t, time.UTC, run.StartedAt.Location())

	failed := NewRun("run-1", started, nil, errors.New("boom"))
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "boom", failed.Error)
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	started := time.Now()

	require.NoError(t, store.Record(ctx, "run-1", started, fbsResult(), nil))
	require.NoError(t, store.Record(ctx, "run-2", started, fbsResult(), errors.New("prices: 500")))

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].RunID, "newest first")
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "21621656", runs[1].CampaignID)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open("")
	assert.True(t, errors.IsValidationError(err))
}
