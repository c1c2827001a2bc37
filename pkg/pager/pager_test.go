package pager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/stocksync/pkg/errors"
)

// scripted serves pages keyed by the cursor they answer and records requests.
type scripted struct {
	pages    map[string]*Page
	requests []string
	failAt   string
}

func (s *scripted) FetchPage(_ context.Context, cursor string) (*Page, error) {
	s.requests = append(s.requests, cursor)
	if s.failAt != "" && cursor == s.failAt {
		return nil, &pkgerrors.TransportError{Operation: "list", Err: errors.New("connection reset")}
	}
	page, ok := s.pages[cursor]
	if !ok {
		return nil, fmt.Errorf("unexpected cursor %q", cursor)
	}
	return page, nil
}

func TestTokenStrategy(t *testing.T) {
	src := &scripted{pages: map[string]*Page{
		"":   {IDs: []string{"A", "B"}, Next: "t1"},
		"t1": {IDs: []string{"C", "A"}, Next: "t2"},
		"t2": {IDs: []string{"D"}},
	}}

	ids, err := New(TokenStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids.List())
	assert.Equal(t, []string{"", "t1", "t2"}, src.requests)
}

func TestTokenStrategySinglePage(t *testing.T) {
	src := &scripted{pages: map[string]*Page{"": {IDs: []string{"X"}}}}

	ids, err := New(TokenStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, ids.List())
}

func TestTokenStrategyEmptyCatalog(t *testing.T) {
	src := &scripted{pages: map[string]*Page{"": {}}}

	ids, err := New(TokenStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 0, ids.Len())
}

func TestCountStrategy(t *testing.T) {
	src := &scripted{pages: map[string]*Page{
		"":   {IDs: []string{"A", "B"}, Next: "B", Total: 5, HasTotal: true},
		"B":  {IDs: []string{"C", "D"}, Next: "D", Total: 5, HasTotal: true},
		"D":  {IDs: []string{"E"}, Next: "E", Total: 5, HasTotal: true},
		"E":  {IDs: []string{"never"}, Total: 5, HasTotal: true},
	}}

	ids, err := New(CountStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, ids.List())
	assert.Equal(t, []string{"", "B", "D"}, src.requests)
}

func TestCountStrategyEmptyCatalog(t *testing.T) {
	src := &scripted{pages: map[string]*Page{"": {Total: 0, HasTotal: true}}}

	ids, err := New(CountStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 0, ids.Len())
}

func TestCountStrategyMissingTotal(t *testing.T) {
	src := &scripted{pages: map[string]*Page{"": {IDs: []string{"A"}, Next: "A"}}}

	_, err := New(CountStrategy{}).All(context.Background(), src)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsProtocol(err))
}

func TestTokenStrategyEmptyMiddlePage(t *testing.T) {
	src := &scripted{pages: map[string]*Page{
		"":   {IDs: []string{"A"}, Next: "t1"},
		"t1": {Next: "t2"},
		"t2": {IDs: []string{"B"}},
	}}

	ids, err := New(TokenStrategy{}).All(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ids.List())
	assert.Equal(t, []string{"", "t1", "t2"}, src.requests)
}

func TestStalledListing(t *testing.T) {
	t.Run("empty page before total", func(t *testing.T) {
		src := &scripted{pages: map[string]*Page{
			"":  {IDs: []string{"A"}, Next: "A", Total: 3, HasTotal: true},
			"A": {Next: "A2", Total: 3, HasTotal: true},
		}}
		_, err := New(CountStrategy{}).All(context.Background(), src)
		assert.True(t, pkgerrors.IsProtocol(err))
		assert.Equal(t, "protocol error: count-based listing returned an empty page before reaching the total", err.Error())
	})

	t.Run("repeated token", func(t *testing.T) {
		src := &scripted{pages: map[string]*Page{
			"":   {IDs: []string{"A"}, Next: "t1"},
			"t1": {IDs: []string{"B"}, Next: "t1"},
		}}
		_, err := New(TokenStrategy{}).All(context.Background(), src)
		assert.True(t, pkgerrors.IsProtocol(err))
	})
}

func TestFetchErrorPropagates(t *testing.T) {
	src := &scripted{
		pages:  map[string]*Page{"": {IDs: []string{"A"}, Next: "t1"}},
		failAt: "t1",
	}

	_, err := New(TokenStrategy{}).All(context.Background(), src)
	require.Error(t, err)

	var te *pkgerrors.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []string{"", "t1"}, src.requests)
}

func TestFetcherFunc(t *testing.T) {
	calls := 0
	f := FetcherFunc(func(_ context.Context, cursor string) (*Page, error) {
		calls++
		return &Page{IDs: []string{"only"}}, nil
	})

	ids, err := New(TokenStrategy{}).All(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, ids.Contains("only"))
}
