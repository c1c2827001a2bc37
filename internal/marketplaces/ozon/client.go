// Package ozon implements the Ozon Seller API calls used by a sync pass:
// the product listing, stock import and price import endpoints.
package ozon

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/pager"
)

// DefaultBaseURL is the production Seller API endpoint.
const DefaultBaseURL = "https://api-seller.ozon.ru"

// API paths.
const (
	listPath   = "/v2/product/list"
	stocksPath = "/v1/product/import/stocks"
	pricesPath = "/v1/product/import/prices"
)

// Config holds Seller API credentials and listing settings.
type Config struct {
	ClientID   string
	APIKey     string
	BaseURL    string
	PageSize   int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is an Ozon Seller API client.
type Client struct {
	http     *transport.Client
	pageSize int
}

// New creates a client. ClientID and APIKey are required.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.APIKey == "" {
		return nil, errors.NewConfigError("ozon", "client id and api key are required", errors.ErrCredentialsRequired)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = constants.OzonPageSize
	}

	opts := []transport.Option{transport.WithHTTPClient(cfg.HTTPClient)}
	if cfg.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.Timeout))
	}
	auth := transport.Chain{
		transport.HeaderAuth{Header: "Client-Id", Value: cfg.ClientID},
		transport.HeaderAuth{Header: "Api-Key", Value: cfg.APIKey},
	}

	return &Client{
		http:     transport.New(offers.MarketplaceOzon.String(), cfg.BaseURL, auth, opts...),
		pageSize: cfg.PageSize,
	}, nil
}

// ID implements sync.Marketplace.
func (c *Client) ID() offers.MarketplaceID {
	return offers.MarketplaceOzon
}

// Strategy implements sync.Marketplace. The listing reports a total and is
// complete once that many items were read.
func (c *Client) Strategy() pager.Strategy {
	return pager.CountStrategy{}
}

type listRequest struct {
	Filter listFilter `json:"filter"`
	LastID string     `json:"last_id"`
	Limit  int        `json:"limit"`
}

type listFilter struct {
	Visibility string `json:"visibility"`
}

type listResponse struct {
	Result *struct {
		Items []struct {
			OfferID   string `json:"offer_id"`
			ProductID int64  `json:"product_id"`
		} `json:"items"`
		Total  *int   `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

// FetchPage implements sync.Marketplace. Ozon has a single implicit campaign,
// so campaignID is ignored; cursor is the last_id of the previous page.
func (c *Client) FetchPage(ctx context.Context, _ string, cursor string) (*pager.Page, error) {
	req := listRequest{
		Filter: listFilter{Visibility: "ALL"},
		LastID: cursor,
		Limit:  c.pageSize,
	}

	var resp listResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, listPath, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, errors.NewProtocolError(offers.MarketplaceOzon.String(), listPath, "response has no result")
	}

	page := &pager.Page{
		IDs:  make([]string, 0, len(resp.Result.Items)),
		Next: resp.Result.LastID,
	}
	for _, item := range resp.Result.Items {
		page.IDs = append(page.IDs, item.OfferID)
	}
	if resp.Result.Total != nil {
		page.Total = *resp.Result.Total
		page.HasTotal = true
	}
	return page, nil
}

type stockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

type priceItem struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

// importResponse is shared by the stock and price import endpoints.
type importResponse struct {
	Result []struct {
		OfferID string `json:"offer_id"`
		Updated bool   `json:"updated"`
		Errors  []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"result"`
}

// SubmitStocks implements sync.Marketplace.
func (c *Client) SubmitStocks(ctx context.Context, _ string, chunk []offers.StockUpdate) error {
	items := make([]stockItem, len(chunk))
	for i, u := range chunk {
		items[i] = stockItem{OfferID: u.OfferID, Stock: u.Stock}
	}

	var resp importResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, stocksPath, nil, map[string]any{"stocks": items}, &resp); err != nil {
		return err
	}
	reportRejected(ctx, stocksPath, &resp)
	return nil
}

// SubmitPrices implements sync.Marketplace.
func (c *Client) SubmitPrices(ctx context.Context, _ string, chunk []offers.PriceUpdate) error {
	items := make([]priceItem, len(chunk))
	for i, u := range chunk {
		currency := u.Currency
		if currency == "" {
			currency = offers.CurrencyRUB
		}
		items[i] = priceItem{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      string(currency),
			OfferID:           u.OfferID,
			OldPrice:          "0",
			Price:             strconv.Itoa(u.Value),
		}
	}

	var resp importResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, pricesPath, nil, map[string]any{"prices": items}, &resp); err != nil {
		return err
	}
	reportRejected(ctx, pricesPath, &resp)
	return nil
}

// reportRejected logs offers the API accepted the call for but did not update.
func reportRejected(ctx context.Context, endpoint string, resp *importResponse) {
	logger := logging.FromContext(ctx)
	for _, r := range resp.Result {
		if r.Updated {
			continue
		}
		event := logger.Warn().Str("endpoint", endpoint).Str("offer_id", r.OfferID)
		if len(r.Errors) > 0 {
			event = event.Str("code", r.Errors[0].Code).Str("reason", r.Errors[0].Message)
		}
		event.Msg("Offer not updated")
	}
}
