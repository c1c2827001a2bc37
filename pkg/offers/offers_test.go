package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet(t *testing.T) {
	t.Run("deduplicates in first-seen order", func(t *testing.T) {
		s := NewIDSet("B", "A", "B", "C", "A")
		assert.Equal(t, []string{"B", "A", "C"}, s.List())
		assert.Equal(t, 3, s.Len())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var s IDSet
		assert.False(t, s.Contains("A"))
		assert.Equal(t, 2, s.Add("A", "B", "A"))
		assert.True(t, s.Contains("A"))
	})

	t.Run("nil set is empty", func(t *testing.T) {
		var s *IDSet
		assert.Equal(t, 0, s.Len())
		assert.Nil(t, s.List())
		assert.False(t, s.Contains("A"))
		assert.Equal(t, 0, s.Without(nil).Len())
	})

	t.Run("without keeps the receiver intact", func(t *testing.T) {
		s := NewIDSet("A", "B", "C")
		rest := s.Without(map[string]struct{}{"B": {}})
		assert.Equal(t, []string{"A", "C"}, rest.List())
		assert.Equal(t, []string{"A", "B", "C"}, s.List())
	})

	t.Run("list is a copy", func(t *testing.T) {
		s := NewIDSet("A")
		l := s.List()
		l[0] = "Z"
		assert.Equal(t, []string{"A"}, s.List())
	})
}

func TestActive(t *testing.T) {
	updates := []StockUpdate{
		{OfferID: "A", Stock: 100},
		{OfferID: "B", Stock: 0},
		{OfferID: "C", Stock: 3},
	}
	assert.Equal(t, []StockUpdate{{OfferID: "A", Stock: 100}, {OfferID: "C", Stock: 3}}, Active(updates))
	assert.Empty(t, Active(nil))
}

func TestParseMarketplace(t *testing.T) {
	for name, want := range map[string]MarketplaceID{
		"ozon":    MarketplaceOzon,
		" Seller": MarketplaceOzon,
		"YANDEX":  MarketplaceYandex,
		"market":  MarketplaceYandex,
	} {
		got, ok := ParseMarketplace(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseMarketplace("wildberries")
	assert.False(t, ok)
	assert.Equal(t, []MarketplaceID{MarketplaceOzon, MarketplaceYandex}, Marketplaces())
}
