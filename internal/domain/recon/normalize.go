package recon

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts accepted from upstream record sources, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// NormalizeKey canonicalizes an identifier for exact-match lookup:
// surrounding whitespace is trimmed and the key is case-folded.
// An empty result means the key is unusable as a matching criterion.
func NormalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeAmount returns the absolute value of an amount. Sign is
// discarded for matching; callers track flow direction separately.
func NormalizeAmount(raw decimal.Decimal) decimal.Decimal {
	return raw.Abs()
}

// ParseDate parses a raw date string against the accepted layouts.
// Malformed input degrades to absent (ok=false) rather than erroring,
// so one dirty field never aborts a run.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// tokenSet splits a name on whitespace into a set of case-folded words.
func tokenSet(name string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
