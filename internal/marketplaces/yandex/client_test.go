package yandex

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/internal/testhelper"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	stsync "github.com/agentstation/stocksync/pkg/sync"
)

var _ stsync.Marketplace = (*Client)(nil)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{Token: "y0_token", BaseURL: baseURL})
	require.NoError(t, err)
	return c
}

func okHandler(w http.ResponseWriter, _ *testhelper.Request) {
	testhelper.WriteJSON(w, statusResponse{Status: "OK"})
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, errors.ErrCredentialsRequired)
}

func TestCatalogListing(t *testing.T) {
	page1 := testhelper.LoadTestdata(t, "offer_mapping_page1.json")
	page2 := testhelper.LoadTestdata(t, "offer_mapping_page2.json")

	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, r *testhelper.Request) {
		q, _ := url.ParseQuery(r.Query)
		if q.Get("page_token") == "" {
			_, _ = w.Write(page1)
			return
		}
		_, _ = w.Write(page2)
	})

	c := newTestClient(t, srv.URL)
	ids, err := stsync.New(c).CatalogIDs(context.Background(), "21621656")
	require.NoError(t, err)
	assert.Equal(t, []string{"136748", "136749", "136750"}, ids.List())

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/campaigns/21621656/offer-mapping-entries", reqs[0].Path)
	assert.Equal(t, "Bearer y0_token", reqs[0].Header.Get("Authorization"))

	q, err := url.ParseQuery(reqs[1].Query)
	require.NoError(t, err)
	assert.Equal(t, "200", q.Get("limit"))
	assert.Equal(t, "eyJvcCI6Ij4iLCJrZXkiOiIxMzY3NDkifQ", q.Get("page_token"))
}

func TestFetchPageRequiresCampaign(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.FetchPage(context.Background(), "", "")
	assert.True(t, errors.IsValidationError(err))
}

func TestFetchPageErrorStatus(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		testhelper.WriteJSON(w, map[string]any{"status": "ERROR"})
	})

	_, err := newTestClient(t, srv.URL).FetchPage(context.Background(), "1", "")
	assert.True(t, errors.IsProtocol(err))
}

func TestSubmitStocks(t *testing.T) {
	srv := testhelper.NewRecorder(t, okHandler)

	err := newTestClient(t, srv.URL).SubmitStocks(context.Background(), "21621656", []offers.StockUpdate{
		{OfferID: "136748", Stock: 100, WarehouseID: "54321", UpdatedAt: "2024-05-06T04:08:09Z"},
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/campaigns/21621656/offers/stocks", reqs[0].Path)
	assert.JSONEq(t, `{"skus":[{"sku":"136748","warehouseId":54321,"items":[{"count":100,"type":"FIT","updatedAt":"2024-05-06T04:08:09Z"}]}]}`,
		string(reqs[0].Body))
}

func TestSubmitStocksRejectsBadWarehouse(t *testing.T) {
	srv := testhelper.NewRecorder(t, okHandler)

	err := newTestClient(t, srv.URL).SubmitStocks(context.Background(), "1", []offers.StockUpdate{
		{OfferID: "136748", Stock: 1, WarehouseID: "main"},
	})
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, srv.Requests())
}

func TestSubmitPrices(t *testing.T) {
	srv := testhelper.NewRecorder(t, okHandler)

	err := newTestClient(t, srv.URL).SubmitPrices(context.Background(), "21621656", []offers.PriceUpdate{
		{OfferID: "136748", Value: 4990, Currency: offers.CurrencyRUR},
		{OfferID: "136749", Value: 5290},
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/campaigns/21621656/offer-prices/updates", reqs[0].Path)
	assert.JSONEq(t, `{"offers":[
		{"id":"136748","price":{"value":4990,"currencyId":"RUR"}},
		{"id":"136749","price":{"value":5290,"currencyId":"RUR"}}
	]}`, string(reqs[0].Body))
}

func TestSubmitRateLimited(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		testhelper.WriteJSON(w, map[string]any{"status": "ERROR", "errors": []any{map[string]string{"code": "LIMIT_EXCEEDED"}}})
	})

	err := newTestClient(t, srv.URL).SubmitPrices(context.Background(), "1", []offers.PriceUpdate{{OfferID: "x", Value: 1}})
	assert.True(t, errors.IsRateLimited(err))
	assert.Contains(t, err.Error(), "LIMIT_EXCEEDED")
}
