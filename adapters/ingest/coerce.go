package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FieldCoercer converts raw cell text to typed values with deterministic
// cleanup rules. Unparseable values become missing with a reason, never an
// error that fails the load.
type FieldCoercer struct{}

// NewFieldCoercer creates a field coercer
func NewFieldCoercer() *FieldCoercer {
	return &FieldCoercer{}
}

// ParseAmount coerces a financial or numeric cell to a float. Returns
// (nil, reason) when the cell is empty or unparseable. Handles thousands
// separators, currency symbols and parenthesised negatives.
func (c *FieldCoercer) ParseAmount(raw string) (*float64, string) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return nil, ""
	}

	// Parentheses for negative amounts: (123.45) -> -123.45
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"R", "$", "ZAR"} {
		cleanVal = strings.TrimPrefix(cleanVal, symbol)
	}
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.ReplaceAll(cleanVal, " ", "")

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return nil, "not a number"
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return nil, "not a finite number"
	}
	return &val, ""
}

// monthFormats are tried in order; the raw book ships TransactionMonth as
// "2015-03-01 00:00:00".
var monthFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// ParseMonth coerces a transaction month cell to a date. Returns
// (nil, reason) when empty or unparseable.
func (c *FieldCoercer) ParseMonth(raw string) (*time.Time, string) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return nil, ""
	}
	for _, format := range monthFormats {
		if t, err := time.Parse(format, cleanVal); err == nil {
			return &t, ""
		}
	}
	return nil, "not a valid date"
}

// NormalizeCategory trims a categorical cell. Empty after trimming means
// missing; the metric engine buckets that separately.
func (c *FieldCoercer) NormalizeCategory(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "n/a") || strings.EqualFold(s, "null") {
		return ""
	}
	return s
}
