package rod

import (
	"math"
	"strconv"
	"strings"
)

// MaxInteractiveLength is the largest rod length the interactive views
// accept. Generate itself has no upper bound.
const MaxInteractiveLength = 15

// Validate runs the checks Generate applies before emitting anything.
func Validate(prices []float64, n int) error {
	if n < 1 {
		return invalid("rod length", "must be a positive integer, got %d", n)
	}
	if len(prices) < n {
		return invalid("prices", "please provide at least %d prices (one for each possible cut length), got %d", n, len(prices))
	}
	for idx, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return invalid("prices", "price %d is not a finite number", idx+1)
		}
		if p < 0 {
			return invalid("prices", "all prices must be non-negative numbers, price %d is %s", idx+1, formatNum(p))
		}
	}
	return nil
}

// ParsePrices splits a whitespace-separated list of numbers.
func ParsePrices(input string) ([]float64, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, invalid("prices", "no prices given")
	}

	prices := make([]float64, 0, len(fields))
	for idx, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, invalid("prices", "price %d (%q) is not a number", idx+1, f)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// ParseInput is the boundary used by input forms: it parses pricesInput and
// validates it against rodLength, failing with a single descriptive error.
func ParseInput(rodLength int, pricesInput string) ([]float64, error) {
	prices, err := ParsePrices(pricesInput)
	if err != nil {
		return nil, err
	}
	if err := Validate(prices, rodLength); err != nil {
		return nil, err
	}
	return prices, nil
}

// FormatPrices is the inverse of ParsePrices.
func FormatPrices(prices []float64) string {
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = formatNum(p)
	}
	return strings.Join(parts, " ")
}
