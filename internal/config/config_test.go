package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Ozon.StockBatchSize)
	assert.Equal(t, 1000, cfg.Ozon.PriceBatchSize)
	assert.Equal(t, 1000, cfg.Ozon.PageSize)
	assert.Equal(t, 2000, cfg.Yandex.StockBatchSize)
	assert.Equal(t, 500, cfg.Yandex.PriceBatchSize)
	assert.Equal(t, 200, cfg.Yandex.PageSize)
	assert.Equal(t, "https://timeworld.ru/upload/files/ostatki.zip", cfg.Feed.URL)
	assert.Equal(t, 17, cfg.Feed.HeaderRow)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Marketplaces())
}

func TestLoadLegacyEnv(t *testing.T) {
	t.Setenv("CLIENT_ID", "836")
	t.Setenv("SELLER_TOKEN", "ozon-key")
	t.Setenv("MARKET_TOKEN", "y0_token")
	t.Setenv("FBS_ID", "21621656")
	t.Setenv("WAREHOUSE_FBS_ID", "54321")
	t.Setenv("DBS_ID", "21621657")
	t.Setenv("WAREHOUSE_DBS_ID", "54322")
	t.Setenv("OZON_PRICE_BATCH_SIZE", "900")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "836", cfg.Ozon.ClientID)
	assert.Equal(t, "ozon-key", cfg.Ozon.APIKey)
	assert.Equal(t, 900, cfg.Ozon.PriceBatchSize)
	assert.Equal(t, []offers.MarketplaceID{offers.MarketplaceOzon, offers.MarketplaceYandex}, cfg.Marketplaces())
	assert.Equal(t, []Campaign{
		{Name: CampaignFBS, ID: "21621656", WarehouseID: "54321"},
		{Name: CampaignDBS, ID: "21621657", WarehouseID: "54322"},
	}, cfg.Yandex.Campaigns)

	targets, err := cfg.Targets(offers.MarketplaceYandex)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "yandex/fbs", targets[0].String())
	assert.Equal(t, "54322", targets[1].WarehouseID)
	assert.True(t, targets[0].Timestamped)
	assert.Equal(t, offers.CurrencyRUR, targets[0].Currency)
	assert.NoError(t, targets[0].Validate())

	ozon, err := cfg.Targets(offers.MarketplaceOzon)
	require.NoError(t, err)
	require.Len(t, ozon, 1)
	assert.Equal(t, 900, ozon[0].PriceBatchSize)
	assert.Equal(t, offers.CurrencyRUB, ozon[0].Currency)
	assert.False(t, ozon[0].Timestamped)
}

func TestTargetsWithoutCredentials(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	_, err = cfg.Targets(offers.MarketplaceOzon)
	assert.ErrorIs(t, err, errors.ErrCredentialsRequired)

	_, err = cfg.Targets(offers.MarketplaceYandex)
	assert.ErrorIs(t, err, errors.ErrCredentialsRequired)

	_, err = cfg.Targets("wildberries")
	assert.True(t, errors.IsValidationError(err))
}

func TestTargetsYandexWithoutCampaigns(t *testing.T) {
	t.Setenv("MARKET_TOKEN", "y0_token")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	_, err = cfg.Targets(offers.MarketplaceYandex)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadRejectsBadLimits(t *testing.T) {
	t.Setenv("YANDEX_STOCK_BATCH_SIZE", "0")

	_, err := Load(newViper(t))
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "yandex.stock_batch_size", cfgErr.Component)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadRejectsCampaignWithoutWarehouse(t *testing.T) {
	t.Setenv("FBS_ID", "21621656")

	_, err := Load(newViper(t))
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "yandex.fbs", cfgErr.Component)
}
