package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5'990.00 руб.", "5990"},
		{"", ""},
		{"123", "123"},
		{"1'000.00 р.", "1000"},
		{"12 345,50", "1234550"},
		{"руб. 700", "700"},
		{".99", ""},
		{"007.5", "007"},
		{"no digits", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.in))
		})
	}
}

func TestPriceValue(t *testing.T) {
	v, err := PriceValue("1'000.00 р.")
	require.NoError(t, err)
	assert.Equal(t, 1000, v)

	_, err = PriceValue("")
	require.Error(t, err)
	assert.True(t, errors.IsParse(err))

	_, err = PriceValue("99999999999999999999999")
	assert.True(t, errors.IsParse(err))
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{">10", 100, false},
		{"1", 0, false},
		{"7", 7, false},
		{"0", 0, false},
		{"2", 2, false},
		{"10", 10, false},
		{"abc", 0, true},
		{"", 0, true},
		{"-3", 0, true},
		{" 5", 0, true},
		{"5.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Quantity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsParse(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
