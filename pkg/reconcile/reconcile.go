// Package reconcile merges a distributor snapshot against a marketplace catalog
// to produce the stock and price updates for that catalog.
//
// Neither function mutates the catalog it is given. The catalog entries absent
// from the snapshot are computed as an explicit set difference.
package reconcile

import (
	"fmt"

	"github.com/agentstation/stocksync/pkg/normalize"
	"github.com/agentstation/stocksync/pkg/offers"
)

// StockOption configures the stock updates produced by Stocks.
type StockOption func(*stockOptions)

type stockOptions struct {
	warehouseID string
	updatedAt   string
}

// WithWarehouse stamps every stock update with a warehouse id.
func WithWarehouse(id string) StockOption {
	return func(o *stockOptions) {
		o.warehouseID = id
	}
}

// WithTimestamp stamps every stock update with the same update time.
func WithTimestamp(ts string) StockOption {
	return func(o *stockOptions) {
		o.updatedAt = ts
	}
}

// Stocks returns exactly one stock update per catalog identifier.
//
// Snapshot records whose code is in the catalog come first, in snapshot order,
// with stock derived by normalize.Quantity; a repeated code keeps its first
// record. Catalog identifiers missing from the snapshot follow in catalog order
// with stock 0. Quantities of records outside the catalog are never parsed.
func Stocks(snapshot []offers.Record, catalog *offers.IDSet, opts ...StockOption) ([]offers.StockUpdate, error) {
	o := &stockOptions{}
	for _, opt := range opts {
		opt(o)
	}

	updates := make([]offers.StockUpdate, 0, catalog.Len())
	matched := make(map[string]struct{}, catalog.Len())

	for _, rec := range snapshot {
		if !catalog.Contains(rec.Code) {
			continue
		}
		if _, seen := matched[rec.Code]; seen {
			continue
		}

		stock, err := normalize.Quantity(rec.Quantity)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", rec.Code, err)
		}
		matched[rec.Code] = struct{}{}
		updates = append(updates, o.update(rec.Code, stock))
	}

	for _, id := range catalog.Without(matched).List() {
		updates = append(updates, o.update(id, 0))
	}

	return updates, nil
}

func (o *stockOptions) update(id string, stock int) offers.StockUpdate {
	return offers.StockUpdate{
		OfferID:     id,
		Stock:       stock,
		WarehouseID: o.warehouseID,
		UpdatedAt:   o.updatedAt,
	}
}

// Prices returns a price update for every snapshot record whose code is in the
// catalog, in snapshot order. Catalog identifiers without a snapshot record get
// no update. Repeated codes are not collapsed: each record yields its own update.
func Prices(snapshot []offers.Record, catalog *offers.IDSet, currency offers.Currency) ([]offers.PriceUpdate, error) {
	var updates []offers.PriceUpdate
	for _, rec := range snapshot {
		if !catalog.Contains(rec.Code) {
			continue
		}

		value, err := normalize.PriceValue(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", rec.Code, err)
		}
		updates = append(updates, offers.PriceUpdate{
			OfferID:  rec.Code,
			Value:    value,
			Currency: currency,
		})
	}
	return updates, nil
}
