// Package merge combines matched review collections from multiple sources
// into one deduplicated, recency-sorted collection.
package merge

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shutterline/schemapipe/internal/review"
)

// keyBodyLength is the number of body characters contributing to the
// dedup identity key. Reviews have no stable cross-source ID, so identity
// is a composite of source, reviewer, date and body prefix.
const keyBodyLength = 100

// Key derives the composite dedup identity key for a review.
func Key(r *review.Review) string {
	body := strings.ToLower(strings.TrimSpace(r.Body))
	if len(body) > keyBodyLength {
		body = body[:keyBodyLength]
	}
	reviewer := strings.ToLower(strings.TrimSpace(r.Reviewer))
	date := strings.TrimSpace(r.RawDate)
	return fmt.Sprintf("%s|%s|%s|%s", r.Source, reviewer, date, body)
}

// Merge combines review collections into one, removing duplicates by
// composite key. Collections are processed in argument order and the first
// occurrence of a key wins, so the result is deterministic. The merged
// collection is sorted descending by parsed date; reviews with unparseable
// dates sort last. Merging a collection with itself is a no-op.
func Merge(collections ...[]review.Review) []review.Review {
	seen := make(map[string]bool)
	var out []review.Review

	dropped := 0
	for _, collection := range collections {
		for _, r := range collection {
			k := Key(&r)
			if seen[k] {
				dropped++
				continue
			}
			seen[k] = true
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.After(dj)
	})

	if dropped > 0 {
		slog.Info("Removed duplicate reviews during merge", "dropped", dropped, "kept", len(out))
	}

	return out
}

// Eligible filters a merged collection down to reviews whose normalized
// rating meets the publication threshold. Reviews with an unparseable
// rating are not eligible.
func Eligible(reviews []review.Review, minRating int) []review.Review {
	out := make([]review.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}
