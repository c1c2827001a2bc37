package output

import (
	"strconv"
	"time"

	"github.com/agentstation/stocksync/internal/history"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

// RecordsTable renders snapshot records.
func RecordsTable(records []offers.Record) Data {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Code, r.Quantity, r.Price}
	}
	return Data{
		Headers:         []string{"Code", "Quantity", "Price"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

// CatalogTable renders catalog offer identifiers.
func CatalogTable(ids []string) Data {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{strconv.Itoa(i + 1), id}
	}
	return Data{
		Headers:         []string{"#", "Offer ID"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// ResultTable renders one row per target of a sync run. The narrow form
// hides batch counts and timing.
func ResultTable(result *sync.Result) Data {
	rows := make([][]string, 0, len(result.Targets))
	for _, t := range result.Targets {
		if t == nil {
			continue
		}
		rows = append(rows, []string{
			t.Target.String(),
			strconv.Itoa(t.CatalogSize),
			strconv.Itoa(len(t.Stocks)),
			strconv.Itoa(len(t.ActiveStocks)),
			strconv.Itoa(len(t.Prices)),
			strconv.Itoa(t.StockBatches),
			strconv.Itoa(t.PriceBatches),
			t.Duration.Round(time.Millisecond).String(),
		})
	}
	return Data{
		Headers: []string{"Target", "Offers", "Stocks", "In Stock", "Prices", "Stock Batches", "Price Batches", "Took"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight,
		},
		Narrow: 5,
	}
}

// RunsTable renders recorded history rows, newest first.
func RunsTable(runs []history.Run) Data {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		status := r.Status
		if r.DryRun {
			status += " (dry run)"
		}
		rows[i] = []string{
			r.StartedAt.Local().Format(time.DateTime),
			r.Target,
			status,
			strconv.Itoa(r.StockUpdates),
			strconv.Itoa(r.PriceUpdates),
			r.RunID,
			r.Error,
		}
	}
	return Data{
		Headers: []string{"Started", "Target", "Status", "Stocks", "Prices", "Run ID", "Error"},
		Rows:    rows,
		Narrow:  5,
	}
}
