// Package pricing holds the tolerant numeric parsing and subtotal arithmetic
// used by the boleta creation workflow. Form input arrives as free text, so
// every parser returns a default instead of an error.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses s accepting either comma or period as the decimal
// separator. Malformed or empty input yields def.
func ParseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseInt parses s with the same tolerance as ParseFloat, truncating toward
// the integer part of the parsed value.
func ParseInt(s string, def int) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(v)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemSubtotal computes quantity times unit price, rounded to cents. The
// quantity is garments or kilos depending on the item kind.
func ItemSubtotal(qty, unitPrice float64) float64 {
	return Round2(qty * unitPrice)
}
