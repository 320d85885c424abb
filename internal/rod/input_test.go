package rod

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParsePrices(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{"spaces", "1 5 8 9", []float64{1, 5, 8, 9}, false},
		{"mixed whitespace", "  1\t2.5\n3  ", []float64{1, 2.5, 3}, false},
		{"empty", "   ", nil, true},
		{"not a number", "1 two 3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrices(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePrices(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePrices(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	prices, err := ParseInput(3, "1 5 8 9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 4 {
		t.Errorf("expected 4 prices, got %d", len(prices))
	}

	tests := []struct {
		name      string
		length    int
		input     string
		field     string
		substring string
	}{
		{"too few", 5, "1 2", "prices", "at least 5 prices"},
		{"negative", 2, "1 -2", "prices", "non-negative"},
		{"nan", 2, "1 NaN", "prices", "finite"},
		{"inf", 1, "Inf", "prices", "finite"},
		{"bad length", 0, "1", "rod length", "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(tt.length, tt.input)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("field = %s, want %s", inputErr.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.substring) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.substring)
			}
		})
	}
}

func TestFormatPrices(t *testing.T) {
	if got := FormatPrices([]float64{1, 2.5, 30}); got != "1 2.5 30" {
		t.Errorf("FormatPrices = %q", got)
	}
}
