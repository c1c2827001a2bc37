package ozon

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/internal/testhelper"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/pager"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{ClientID: "836", APIKey: "secret", BaseURL: baseURL, PageSize: 2})
	require.NoError(t, err)
	return c
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{ClientID: "836"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCredentialsRequired)
}

func TestCatalogListing(t *testing.T) {
	page1 := testhelper.LoadTestdata(t, "product_list_page1.json")
	page2 := testhelper.LoadTestdata(t, "product_list_page2.json")

	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, r *testhelper.Request) {
		var req listRequest
		assert.NoError(t, json.Unmarshal(r.Body, &req))
		if req.LastID == "" {
			_, _ = w.Write(page1)
			return
		}
		_, _ = w.Write(page2)
	})

	c := newTestClient(t, srv.URL)
	ids, err := pager.New(c.Strategy()).All(context.Background(), pager.FetcherFunc(
		func(ctx context.Context, cursor string) (*pager.Page, error) {
			return c.FetchPage(ctx, "", cursor)
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"136748", "136749", "136750"}, ids.List())

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/v2/product/list", reqs[0].Path)
	assert.Equal(t, "836", reqs[0].Header.Get("Client-Id"))
	assert.Equal(t, "secret", reqs[0].Header.Get("Api-Key"))
	assert.JSONEq(t, `{"filter":{"visibility":"ALL"},"last_id":"","limit":2}`, string(reqs[0].Body))
	assert.JSONEq(t, `{"filter":{"visibility":"ALL"},"last_id":"bnVsbA==","limit":2}`, string(reqs[1].Body))
}

func TestFetchPageWithoutResult(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		testhelper.WriteJSON(w, map[string]any{"code": 0})
	})

	_, err := newTestClient(t, srv.URL).FetchPage(context.Background(), "", "")
	assert.True(t, errors.IsProtocol(err))
}

func TestFetchPageWithoutTotal(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		testhelper.WriteJSON(w, map[string]any{"result": map[string]any{"items": []any{}, "last_id": ""}})
	})

	page, err := newTestClient(t, srv.URL).FetchPage(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, page.HasTotal)

	_, err = pager.CountStrategy{}.Done(page, 0)
	assert.True(t, errors.IsProtocol(err))
}

func TestSubmitStocks(t *testing.T) {
	fixture := testhelper.LoadTestdata(t, "import_stocks.json")
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		_, _ = w.Write(fixture)
	})
	logs := logging.NewTestLogger(t)

	err := newTestClient(t, srv.URL).SubmitStocks(logs.Context(context.Background()), "", []offers.StockUpdate{
		{OfferID: "136748", Stock: 100},
		{OfferID: "136749", Stock: 0},
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/product/import/stocks", reqs[0].Path)
	assert.JSONEq(t, `{"stocks":[{"offer_id":"136748","stock":100},{"offer_id":"136749","stock":0}]}`, string(reqs[0].Body))
	logs.AssertContains(t, "SKU_STOCK_NOT_CHANGE")
}

func TestSubmitPrices(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		testhelper.WriteJSON(w, map[string]any{"result": []any{}})
	})

	err := newTestClient(t, srv.URL).SubmitPrices(context.Background(), "", []offers.PriceUpdate{
		{OfferID: "136748", Value: 1000, Currency: offers.CurrencyRUB},
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/product/import/prices", reqs[0].Path)
	assert.JSONEq(t, `{"prices":[{"auto_action_enabled":"UNKNOWN","currency_code":"RUB","offer_id":"136748","old_price":"0","price":"1000"}]}`,
		string(reqs[0].Body))
}

func TestSubmitFailureStatus(t *testing.T) {
	srv := testhelper.NewRecorder(t, func(w http.ResponseWriter, _ *testhelper.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := newTestClient(t, srv.URL).SubmitPrices(context.Background(), "", []offers.PriceUpdate{{OfferID: "x", Value: 1}})
	require.Error(t, err)
	assert.True(t, errors.IsProtocol(err))
	assert.ErrorIs(t, err, errors.ErrMarketplaceUnavailable)
}
