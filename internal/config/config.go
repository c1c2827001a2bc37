// Package config loads marketplace credentials, campaign targets and write
// limits from viper. Legacy environment names (SELLER_TOKEN, CLIENT_ID,
// MARKET_TOKEN, FBS_ID, ...) are bound alongside the dotted keys so existing
// .env files keep working.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	stsync "github.com/agentstation/stocksync/pkg/sync"
)

// Yandex campaign names.
const (
	CampaignFBS = "fbs"
	CampaignDBS = "dbs"
)

// Config is the resolved configuration of one stocksync process.
type Config struct {
	Ozon    Ozon          `json:"ozon" yaml:"ozon"`
	Yandex  Yandex        `json:"yandex" yaml:"yandex"`
	Feed    Feed          `json:"feed" yaml:"feed"`
	History string        `json:"history,omitempty" yaml:"history,omitempty"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Ozon holds Seller API settings.
type Ozon struct {
	ClientID       string `json:"client_id" yaml:"client_id"`
	APIKey         string `json:"-" yaml:"-"`
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	PageSize       int    `json:"page_size" yaml:"page_size"`
	StockBatchSize int    `json:"stock_batch_size" yaml:"stock_batch_size"`
	PriceBatchSize int    `json:"price_batch_size" yaml:"price_batch_size"`
}

// Configured reports whether both credentials are present.
func (o Ozon) Configured() bool {
	return o.ClientID != "" && o.APIKey != ""
}

// Yandex holds Partner API settings.
type Yandex struct {
	Token          string     `json:"-" yaml:"-"`
	BaseURL        string     `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	PageSize       int        `json:"page_size" yaml:"page_size"`
	StockBatchSize int        `json:"stock_batch_size" yaml:"stock_batch_size"`
	PriceBatchSize int        `json:"price_batch_size" yaml:"price_batch_size"`
	Campaigns      []Campaign `json:"campaigns" yaml:"campaigns"`
}

// Configured reports whether the token is present.
func (y Yandex) Configured() bool {
	return y.Token != ""
}

// Campaign is one Yandex Market storefront and the warehouse its stock lives in.
type Campaign struct {
	Name        string `json:"name" yaml:"name"`
	ID          string `json:"id" yaml:"id"`
	WarehouseID string `json:"warehouse_id" yaml:"warehouse_id"`
}

// Feed locates the distributor snapshot.
type Feed struct {
	URL       string `json:"url" yaml:"url"`
	HeaderRow int    `json:"header_row" yaml:"header_row"`
}

// envBindings maps config keys to the environment names they are read from.
var envBindings = map[string][]string{
	"ozon.client_id":          {"CLIENT_ID", "OZON_CLIENT_ID"},
	"ozon.api_key":            {"SELLER_TOKEN", "OZON_API_KEY"},
	"yandex.token":            {"MARKET_TOKEN", "YANDEX_TOKEN"},
	"yandex.fbs.campaign_id":  {"FBS_ID"},
	"yandex.fbs.warehouse_id": {"WAREHOUSE_FBS_ID"},
	"yandex.dbs.campaign_id":  {"DBS_ID"},
	"yandex.dbs.warehouse_id": {"WAREHOUSE_DBS_ID"},
	"history":                 {"STOCKSYNC_HISTORY"},
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ozon.page_size", constants.OzonPageSize)
	v.SetDefault("ozon.stock_batch_size", constants.OzonStockBatchSize)
	v.SetDefault("ozon.price_batch_size", constants.OzonPriceBatchSize)
	v.SetDefault("yandex.page_size", constants.YandexPageSize)
	v.SetDefault("yandex.stock_batch_size", constants.YandexStockBatchSize)
	v.SetDefault("yandex.price_batch_size", constants.YandexPriceBatchSize)
	v.SetDefault("feed.url", constants.DefaultFeedURL)
	v.SetDefault("feed.header_row", constants.DefaultFeedHeaderRow)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
}

// BindEnv enables environment lookups on v: dotted keys map to upper-case
// underscore names (ozon.page_size -> OZON_PAGE_SIZE) and legacy names are
// bound explicitly.
func BindEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return errors.NewConfigError("env", "failed to bind "+key, err)
		}
	}
	return nil
}

// Load resolves a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Ozon: Ozon{
			ClientID:       v.GetString("ozon.client_id"),
			APIKey:         v.GetString("ozon.api_key"),
			BaseURL:        v.GetString("ozon.base_url"),
			PageSize:       v.GetInt("ozon.page_size"),
			StockBatchSize: v.GetInt("ozon.stock_batch_size"),
			PriceBatchSize: v.GetInt("ozon.price_batch_size"),
		},
		Yandex: Yandex{
			Token:          v.GetString("yandex.token"),
			BaseURL:        v.GetString("yandex.base_url"),
			PageSize:       v.GetInt("yandex.page_size"),
			StockBatchSize: v.GetInt("yandex.stock_batch_size"),
			PriceBatchSize: v.GetInt("yandex.price_batch_size"),
		},
		Feed: Feed{
			URL:       v.GetString("feed.url"),
			HeaderRow: v.GetInt("feed.header_row"),
		},
		History: v.GetString("history"),
		Timeout: v.GetDuration("timeout"),
	}

	for _, name := range []string{CampaignFBS, CampaignDBS} {
		id := v.GetString("yandex." + name + ".campaign_id")
		if id == "" {
			continue
		}
		cfg.Yandex.Campaigns = append(cfg.Yandex.Campaigns, Campaign{
			Name:        name,
			ID:          id,
			WarehouseID: v.GetString("yandex." + name + ".warehouse_id"),
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks limits and campaign settings. Missing credentials are not
// an error here; they are reported when a marketplace is selected.
func (c *Config) Validate() error {
	limits := map[string]int{
		"ozon.page_size":          c.Ozon.PageSize,
		"ozon.stock_batch_size":   c.Ozon.StockBatchSize,
		"ozon.price_batch_size":   c.Ozon.PriceBatchSize,
		"yandex.page_size":        c.Yandex.PageSize,
		"yandex.stock_batch_size": c.Yandex.StockBatchSize,
		"yandex.price_batch_size": c.Yandex.PriceBatchSize,
	}
	for key, n := range limits {
		if n <= 0 {
			return errors.NewConfigError(key, "must be positive", errors.NewValidationError(key, n, "must be positive"))
		}
	}
	if c.Feed.HeaderRow < 0 {
		return errors.NewConfigError("feed.header_row", "must not be negative", nil)
	}
	for _, camp := range c.Yandex.Campaigns {
		if camp.WarehouseID == "" {
			return errors.NewConfigError("yandex."+camp.Name, "campaign "+camp.ID+" has no warehouse id", nil)
		}
	}
	return nil
}

// Marketplaces returns the marketplaces that have credentials.
func (c *Config) Marketplaces() []offers.MarketplaceID {
	var ids []offers.MarketplaceID
	if c.Ozon.Configured() {
		ids = append(ids, offers.MarketplaceOzon)
	}
	if c.Yandex.Configured() {
		ids = append(ids, offers.MarketplaceYandex)
	}
	return ids
}

// Targets returns the sync targets of market.
func (c *Config) Targets(market offers.MarketplaceID) ([]stsync.Target, error) {
	switch market {
	case offers.MarketplaceOzon:
		if !c.Ozon.Configured() {
			return nil, credentialsError(market, "CLIENT_ID and SELLER_TOKEN must be set")
		}
		return []stsync.Target{{
			Marketplace:    offers.MarketplaceOzon,
			Name:           "seller",
			Currency:       offers.CurrencyRUB,
			StockBatchSize: c.Ozon.StockBatchSize,
			PriceBatchSize: c.Ozon.PriceBatchSize,
		}}, nil

	case offers.MarketplaceYandex:
		if !c.Yandex.Configured() {
			return nil, credentialsError(market, "MARKET_TOKEN must be set")
		}
		if len(c.Yandex.Campaigns) == 0 {
			return nil, errors.NewConfigError("yandex", "no campaigns configured (FBS_ID, DBS_ID)", nil)
		}
		targets := make([]stsync.Target, 0, len(c.Yandex.Campaigns))
		for _, camp := range c.Yandex.Campaigns {
			targets = append(targets, stsync.Target{
				Marketplace:    offers.MarketplaceYandex,
				Name:           camp.Name,
				CampaignID:     camp.ID,
				WarehouseID:    camp.WarehouseID,
				Currency:       offers.CurrencyRUR,
				StockBatchSize: c.Yandex.StockBatchSize,
				PriceBatchSize: c.Yandex.PriceBatchSize,
				Timestamped:    true,
			})
		}
		return targets, nil
	}
	return nil, errors.NewValidationError("marketplace", market, "unknown marketplace")
}

func credentialsError(market offers.MarketplaceID, message string) error {
	return errors.NewConfigError(market.String(), message, errors.ErrCredentialsRequired)
}
