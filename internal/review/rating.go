package review

import (
	"strconv"
	"strings"
)

// wordRatings maps English word-form star counts to their numeric value.
var wordRatings = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// NormalizeRating maps a raw rating value to an integer on the canonical
// 1-5 scale. Accepts numeric strings ("5", "4.0") and English word-form
// star counts ("FIVE", case-insensitive). Unparseable input returns
// (0, false). The mapping is idempotent: normalizing "3" yields 3 again.
func NormalizeRating(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if n, ok := wordRatings[strings.ToLower(raw)]; ok {
		return n, true
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 5 {
			return n, true
		}
		return 0, false
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		n := int(f + 0.5)
		if n >= 1 && n <= 5 {
			return n, true
		}
	}

	return 0, false
}
