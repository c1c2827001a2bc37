package alerts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

func TestForResult(t *testing.T) {
	result := &sync.Result{Targets: []*sync.TargetResult{
		{Target: sync.Target{Marketplace: offers.MarketplaceOzon, Name: "seller"}, CatalogSize: 3},
		{Target: sync.Target{Marketplace: offers.MarketplaceYandex, Name: "fbs"}, DryRun: true},
	}}

	got := ForResult(result, nil)
	require.Len(t, got, 2)
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, LevelInfo, got[1].Level)
	assert.Contains(t, got[0].String(), "✓ ozon/seller: 3 offers")
}

func TestForResultFailure(t *testing.T) {
	cause := errors.NewSyncError("yandex", "dbs", "stocks", errors.ErrTimeout)

	got := ForResult(&sync.Result{}, cause)
	require.Len(t, got, 1)
	assert.Equal(t, LevelError, got[0].Level)

	partial := &sync.Result{Targets: []*sync.TargetResult{
		{Target: sync.Target{Marketplace: offers.MarketplaceOzon, Name: "seller"}},
	}}
	got = ForResult(partial, cause)
	require.Len(t, got, 2)
	assert.Equal(t, LevelWarning, got[1].Level)
	assert.Contains(t, got[1].String(), "! sync stopped: sync yandex/dbs failed at stocks")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Alert{{Level: LevelSuccess, Message: "done"}, {Level: LevelError, Message: "x"}}))
	assert.Equal(t, "✓ done\n✗ x\n", buf.String())
}
