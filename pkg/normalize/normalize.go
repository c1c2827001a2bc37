// Package normalize converts the distributor's free-text quantity and price
// cells into the canonical values pushed to marketplaces.
package normalize

import (
	"strconv"
	"strings"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
)

// Price returns the integer part of a price text as a string of ASCII digits.
// Everything from the first '.' on is dropped, then every non-digit is removed,
// so "5'990.00 руб." becomes "5990". Empty input yields "".
func Price(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PriceValue normalizes text with Price and converts it to an integer.
// Text without any digits is a ParseError.
func PriceValue(text string) (int, error) {
	digits := Price(text)
	if digits == "" {
		return 0, &errors.ParseError{Format: "price", Value: text, Message: "no digits before the decimal point"}
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &errors.ParseError{Format: "price", Value: text, Message: "out of range", Err: err}
	}
	return value, nil
}

// Quantity maps a feed quantity to a stock count.
// ">10" means plenty and becomes 100; "1" is the distributor's last reserved
// item and becomes 0; anything else must be a non-negative base-10 integer.
func Quantity(text string) (int, error) {
	switch text {
	case constants.QuantityMany:
		return constants.QuantityManyStock, nil
	case constants.QuantityReserved:
		return 0, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &errors.ParseError{Format: "quantity", Value: text, Message: "not an integer", Err: err}
	}
	if n < 0 {
		return 0, &errors.ParseError{Format: "quantity", Value: text, Message: "negative stock"}
	}
	return n, nil
}
