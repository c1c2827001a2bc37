package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONAndYAML(t *testing.T) {
	records := []offers.Record{{Code: "136748", Quantity: ">10", Price: "5'990.00 руб."}}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, records))
	assert.JSONEq(t, `[{"code":"136748","quantity":">10","price":"5'990.00 руб."}]`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, records))
	assert.Contains(t, buf.String(), "code:")
	assert.Contains(t, buf.String(), "136748")
	assert.Contains(t, buf.String(), ">10")
}

func TestTableFromData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, RecordsTable([]offers.Record{
		{Code: "136748", Quantity: ">10", Price: "5'990.00 руб."},
	})))

	out := buf.String()
	assert.Contains(t, out, "136748")
	assert.Contains(t, out, ">10")
}

func TestNarrowAndWide(t *testing.T) {
	result := &sync.Result{Targets: []*sync.TargetResult{{
		Target:       sync.Target{Marketplace: offers.MarketplaceYandex, Name: "fbs"},
		CatalogSize:  2,
		StockBatches: 7,
	}}}

	var narrow, wide bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&narrow, ResultTable(result)))
	require.NoError(t, NewFormatter(FormatWide).Format(&wide, ResultTable(result)))

	assert.Contains(t, narrow.String(), "yandex/fbs")
	assert.NotContains(t, narrow.String(), "7")
	assert.Contains(t, wide.String(), "7")
}

func TestTableByReflection(t *testing.T) {
	type row struct {
		OfferID string `json:"offer_id"`
		Stock   int    `json:"stock"`
		Secret  string `json:"-"`
	}

	data := convertToTableData([]row{{OfferID: "A", Stock: 3, Secret: "x"}})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Offer Id", "Stock"}, data.Headers)
	assert.Equal(t, [][]string{{"A", "3"}}, data.Rows)

	single := convertToTableData(row{OfferID: "B"})
	require.NotNil(t, single)
	assert.Equal(t, []string{"Property", "Value"}, single.Headers)
	assert.Len(t, single.Rows, 2)

	assert.Nil(t, convertToTableData(42))
}
