// Package price turns raw scraped price representations (currency
// strings, min/max ranges, bare numbers) into normalized amounts.
package price

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinel is the value substituted for unparseable prices under
// PolicySentinel so such items sort last in price comparisons.
const Sentinel = 9999.0

// Policy decides what callers do with unparseable prices. The source
// data is inconsistent enough that this has to be an explicit choice.
type Policy string

const (
	// PolicyExclude leaves the price absent; the record is kept but
	// skipped by price comparisons.
	PolicyExclude Policy = "exclude"

	// PolicySentinel substitutes Sentinel so the record sorts last.
	PolicySentinel Policy = "sentinel"
)

// Valid reports whether the policy is one of the defined values.
func (p Policy) Valid() bool {
	return p == PolicyExclude || p == PolicySentinel
}

// Parse extracts a non-negative amount from a raw price value.
// Accepted inputs:
//   - numeric types: returned as-is (negative values are unparseable)
//   - range strings ("9.99 - 15.99", "$16.00 - $27.00"): the minimum
//     bound, since downstream comparisons seek the cheapest option
//   - currency strings ("$8.99", "1,234.56"): symbols and separators
//     stripped, then a single decimal parse
//
// The second return is false when no numeric value can be recovered.
// Parse never panics, for any input.
func Parse(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return checked(v)
	case float32:
		return checked(float64(v))
	case int:
		return checked(float64(v))
	case int32:
		return checked(float64(v))
	case int64:
		return checked(float64(v))
	case string:
		return parseString(v)
	default:
		return parseString(fmt.Sprintf("%v", v))
	}
}

// Resolve applies the caller's policy to a Parse result. The pointer is
// nil exactly when the price is absent under PolicyExclude.
func Resolve(value float64, ok bool, policy Policy) *float64 {
	if ok {
		return &value
	}
	if policy == PolicySentinel {
		s := Sentinel
		return &s
	}
	return nil
}

func checked(v float64) (float64, bool) {
	if v < 0 {
		return 0, false
	}
	return v, true
}

func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// A hyphen between two numeric substrings is a range; represent it
	// by its floor.
	if strings.Contains(s, "-") {
		var bounds []float64
		for _, part := range strings.Split(s, "-") {
			if v, ok := parseSingle(part); ok {
				bounds = append(bounds, v)
			}
		}
		if len(bounds) >= 2 {
			min := bounds[0]
			for _, b := range bounds[1:] {
				if b < min {
					min = b
				}
			}
			return min, true
		}
	}

	return parseSingle(s)
}

// parseSingle strips currency symbols, commas, and any other non-digit
// non-decimal-point characters, then attempts one decimal parse.
func parseSingle(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return checked(v)
}
