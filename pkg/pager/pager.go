// Package pager drains paginated marketplace offer listings into a flat,
// duplicate-free set of offer identifiers.
//
// Marketplaces disagree on how a listing ends. Yandex Market hands out a
// next-page token until the last page; Ozon reports a total and a last_id
// cursor, and the listing is complete once that many items were read. Both
// are expressed as a Strategy.
package pager

import (
	"context"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
)

// Page is one response of a catalog listing endpoint.
type Page struct {
	// IDs are the offer identifiers on this page.
	IDs []string

	// Next is the cursor for the following request (page token or last id).
	Next string

	// Total is the catalog size reported by count-based listings.
	Total int

	// HasTotal reports whether Total was present in the response.
	HasTotal bool
}

// Fetcher retrieves one catalog page. An empty cursor requests the first page.
type Fetcher interface {
	FetchPage(ctx context.Context, cursor string) (*Page, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, cursor string) (*Page, error)

// FetchPage implements Fetcher.
func (f FetcherFunc) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	return f(ctx, cursor)
}

// Strategy decides when a listing is exhausted.
type Strategy interface {
	// Done reports whether no more pages should be requested after page,
	// given the cumulative number of items fetched so far.
	Done(page *Page, fetched int) (bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

// TokenStrategy stops when a page carries no next-page token.
type TokenStrategy struct{}

// Done implements Strategy.
func (TokenStrategy) Done(page *Page, _ int) (bool, error) {
	return page.Next == "", nil
}

// Name implements Strategy.
func (TokenStrategy) Name() string { return "token" }

// CountStrategy stops once the cumulative item count reaches the reported total.
type CountStrategy struct{}

// Done implements Strategy.
func (CountStrategy) Done(page *Page, fetched int) (bool, error) {
	if !page.HasTotal {
		return false, &errors.ProtocolError{Message: "count-based listing response has no total"}
	}
	if fetched >= page.Total {
		return true, nil
	}
	// An empty page short of the total would never reach it.
	if len(page.IDs) == 0 {
		return false, &errors.ProtocolError{
			Message: "count-based listing returned an empty page before reaching the total",
		}
	}
	return false, nil
}

// Name implements Strategy.
func (CountStrategy) Name() string { return "count" }

// Paginator drains a listing with a fixed Strategy.
type Paginator struct {
	strategy Strategy
}

// New creates a Paginator that ends listings according to strategy.
func New(strategy Strategy) *Paginator {
	return &Paginator{strategy: strategy}
}

// All requests pages sequentially until the strategy reports completion and
// returns every identifier seen, first occurrence first. Fetch errors are
// returned as they are; nothing is retried.
func (p *Paginator) All(ctx context.Context, f Fetcher) (*offers.IDSet, error) {
	logger := logging.FromContext(ctx)
	ids := offers.NewIDSet()

	cursor := ""
	fetched := 0
	for pageNum := 1; ; pageNum++ {
		page, err := f.FetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, &errors.ProtocolError{Message: "empty catalog page response"}
		}

		fetched += len(page.IDs)
		ids.Add(page.IDs...)

		logger.Debug().
			Int("page", pageNum).
			Int("items", len(page.IDs)).
			Int("fetched", fetched).
			Str("strategy", p.strategy.Name()).
			Msg("Catalog page fetched")

		done, err := p.strategy.Done(page, fetched)
		if err != nil {
			return nil, err
		}
		if done {
			return ids, nil
		}

		// A cursor that does not move would loop forever.
		if page.Next == cursor {
			return nil, &errors.ProtocolError{
				Message: "catalog listing stopped advancing before it was complete",
			}
		}
		cursor = page.Next
	}
}
