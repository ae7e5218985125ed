package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidNumber = errors.New("invalid number")

// ParseQuantity parses a whole, non-negative number of units.
func ParseQuantity(text string) (uint32, error) {
	q, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidNumber, text)
	}
	return uint32(q), nil
}

// ParsePrice parses a non-negative price. Both "5.50" and "5,50" are accepted.
func ParsePrice(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q", ErrInvalidNumber, text)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative price %q", ErrInvalidNumber, text)
	}
	price := d.InexactFloat64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, fmt.Errorf("%w: price %q out of range", ErrInvalidNumber, text)
	}
	return price, nil
}
