// Package offers defines the records exchanged between the distributor feed,
// the reconcilers, and the marketplace write APIs.
//
// All values are transient: they are built and consumed within one sync pass.
package offers

import "strings"

// MarketplaceID identifies a marketplace integration.
type MarketplaceID string

// Known marketplaces.
const (
	MarketplaceOzon   MarketplaceID = "ozon"
	MarketplaceYandex MarketplaceID = "yandex"
)

// String returns the marketplace ID as a string.
func (id MarketplaceID) String() string {
	return string(id)
}

// Marketplaces lists the known marketplaces in sync order.
func Marketplaces() []MarketplaceID {
	return []MarketplaceID{MarketplaceOzon, MarketplaceYandex}
}

// ParseMarketplace resolves a marketplace name, accepting the common aliases.
func ParseMarketplace(name string) (MarketplaceID, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ozon", "seller":
		return MarketplaceOzon, true
	case "yandex", "market", "yandex-market":
		return MarketplaceYandex, true
	}
	return "", false
}

// Currency is the currency code a marketplace expects in price updates.
type Currency string

// Currency codes used by the supported marketplaces.
const (
	CurrencyRUB Currency = "RUB" // Ozon
	CurrencyRUR Currency = "RUR" // Yandex Market
)

// Record is one distributor-reported product from the stock snapshot.
// Quantity and Price keep the feed's original text; see package normalize.
type Record struct {
	Code     string `json:"code" yaml:"code"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Price    string `json:"price" yaml:"price"`
}

// StockUpdate sets the stock level of one catalog offer.
type StockUpdate struct {
	OfferID     string `json:"offer_id" yaml:"offer_id"`
	Stock       int    `json:"stock" yaml:"stock"`
	WarehouseID string `json:"warehouse_id,omitempty" yaml:"warehouse_id,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// PriceUpdate sets the price of one catalog offer.
type PriceUpdate struct {
	OfferID  string   `json:"offer_id" yaml:"offer_id"`
	Value    int      `json:"value" yaml:"value"`
	Currency Currency `json:"currency" yaml:"currency"`
}

// Active returns the updates with non-zero stock, preserving order.
func Active(updates []StockUpdate) []StockUpdate {
	active := make([]StockUpdate, 0, len(updates))
	for _, u := range updates {
		if u.Stock != 0 {
			active = append(active, u)
		}
	}
	return active
}
