// Package yandex implements the Yandex Market Partner API calls used by a
// sync pass. Every call is scoped to a campaign (an FBS or DBS storefront).
package yandex

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/pager"
)

// DefaultBaseURL is the production Partner API endpoint.
const DefaultBaseURL = "https://api.partner.market.yandex.ru"

// StockTypeFit marks stock that is available for sale.
const StockTypeFit = "FIT"

// Config holds the Partner API token and listing settings.
type Config struct {
	Token      string
	BaseURL    string
	PageSize   int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a Yandex Market Partner API client.
type Client struct {
	http     *transport.Client
	pageSize int
}

// New creates a client. Token is required.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.NewConfigError("yandex", "api token is required", errors.ErrCredentialsRequired)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = constants.YandexPageSize
	}

	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.Timeout))
	}

	return &Client{
		http:     transport.New(offers.MarketplaceYandex.String(), cfg.BaseURL, transport.BearerAuth{Token: cfg.Token}, opts...),
		pageSize: cfg.PageSize,
	}, nil
}

// ID implements sync.Marketplace.
func (c *Client) ID() offers.MarketplaceID {
	return offers.MarketplaceYandex
}

// Strategy implements sync.Marketplace. The listing hands out a next-page
// token until the last page.
func (c *Client) Strategy() pager.Strategy {
	return pager.TokenStrategy{}
}

func campaignPath(campaignID, rest string) (string, error) {
	if campaignID == "" {
		return "", errors.NewValidationError("campaign_id", campaignID, "campaign id is required")
	}
	return "campaigns/" + url.PathEscape(campaignID) + "/" + rest, nil
}

type mappingResponse struct {
	Status string `json:"status"`
	Result *struct {
		Paging struct {
			NextPageToken string `json:"nextPageToken"`
		} `json:"paging"`
		OfferMappingEntries []struct {
			Offer struct {
				ShopSku string `json:"shopSku"`
			} `json:"offer"`
		} `json:"offerMappingEntries"`
	} `json:"result"`
}

// FetchPage implements sync.Marketplace. cursor is the page token returned
// by the previous page.
func (c *Client) FetchPage(ctx context.Context, campaignID, cursor string) (*pager.Page, error) {
	path, err := campaignPath(campaignID, "offer-mapping-entries")
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"page_token": {cursor},
		"limit":      {strconv.Itoa(c.pageSize)},
	}

	var resp mappingResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(path, resp.Status); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, errors.NewProtocolError(offers.MarketplaceYandex.String(), path, "response has no result")
	}

	page := &pager.Page{
		IDs:  make([]string, 0, len(resp.Result.OfferMappingEntries)),
		Next: resp.Result.Paging.NextPageToken,
	}
	for _, entry := range resp.Result.OfferMappingEntries {
		page.IDs = append(page.IDs, entry.Offer.ShopSku)
	}
	return page, nil
}

type skuStock struct {
	SKU         string      `json:"sku"`
	WarehouseID int64       `json:"warehouseId"`
	Items       []stockItem `json:"items"`
}

type stockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type offerPrice struct {
	ID    string `json:"id"`
	Price struct {
		Value      int    `json:"value"`
		CurrencyID string `json:"currencyId"`
	} `json:"price"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// SubmitStocks implements sync.Marketplace. Every update must carry a
// numeric warehouse id.
func (c *Client) SubmitStocks(ctx context.Context, campaignID string, chunk []offers.StockUpdate) error {
	path, err := campaignPath(campaignID, "offers/stocks")
	if err != nil {
		return err
	}

	skus := make([]skuStock, len(chunk))
	for i, u := range chunk {
		warehouse, err := strconv.ParseInt(u.WarehouseID, 10, 64)
		if err != nil {
			return errors.NewValidationError("warehouse_id", u.WarehouseID, "warehouse id must be numeric")
		}
		skus[i] = skuStock{
			SKU:         u.OfferID,
			WarehouseID: warehouse,
			Items:       []stockItem{{Count: u.Stock, Type: StockTypeFit, UpdatedAt: u.UpdatedAt}},
		}
	}

	var resp statusResponse
	if err := c.http.DoJSON(ctx, http.MethodPut, path, nil, map[string]any{"skus": skus}, &resp); err != nil {
		return err
	}
	return checkStatus(path, resp.Status)
}

// SubmitPrices implements sync.Marketplace.
func (c *Client) SubmitPrices(ctx context.Context, campaignID string, chunk []offers.PriceUpdate) error {
	path, err := campaignPath(campaignID, "offer-prices/updates")
	if err != nil {
		return err
	}

	prices := make([]offerPrice, len(chunk))
	for i, u := range chunk {
		currency := u.Currency
		if currency == "" {
			currency = offers.CurrencyRUR
		}
		prices[i].ID = u.OfferID
		prices[i].Price.Value = u.Value
		prices[i].Price.CurrencyID = string(currency)
	}

	var resp statusResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, path, nil, map[string]any{"offers": prices}, &resp); err != nil {
		return err
	}
	return checkStatus(path, resp.Status)
}

// checkStatus rejects a 2xx response whose body still reports a failure.
func checkStatus(endpoint, status string) error {
	if status == "" || status == "OK" {
		return nil
	}
	return errors.NewProtocolError(offers.MarketplaceYandex.String(), endpoint, "response status "+status)
}
