package matching

import (
	"sort"
	"time"

	"github.com/shutterline/schemapipe/internal/review"
)

// Cluster is a maximal run of chronologically adjacent reviews from one
// source separated by no more than the configured day gap.
type Cluster struct {
	Members []*review.Review
}

// ClusterHints records anchor dates of clusters that resolved to a product,
// for reuse by the cluster override strategy on the second pass.
type ClusterHints struct {
	anchors []anchor
}

type anchor struct {
	date time.Time
	slug string
}

// Add records an anchor date for a matched slug.
func (h *ClusterHints) Add(date time.Time, slug string) {
	h.anchors = append(h.anchors, anchor{date: date, slug: slug})
}

// Lookup returns the slug anchored within the window of a date.
func (h *ClusterHints) Lookup(date time.Time, window time.Duration) (string, bool) {
	if h == nil || date.IsZero() {
		return "", false
	}
	for _, a := range h.anchors {
		diff := date.Sub(a.date)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			return a.slug, true
		}
	}
	return "", false
}

// Len returns the number of recorded anchors.
func (h *ClusterHints) Len() int {
	if h == nil {
		return 0
	}
	return len(h.anchors)
}

// BuildClusters partitions reviews from one source into temporal clusters.
// Undated reviews never cluster. Runs smaller than minSize are discarded.
func BuildClusters(reviews []*review.Review, gapDays, minSize int) []Cluster {
	dated := make([]*review.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.HasDate() {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.Before(dated[j].Date)
	})

	gap := time.Duration(gapDays) * 24 * time.Hour

	var clusters []Cluster
	var current []*review.Review
	flush := func() {
		if len(current) >= minSize {
			clusters = append(clusters, Cluster{Members: current})
		}
		current = nil
	}

	for _, r := range dated {
		if len(current) > 0 {
			prev := current[len(current)-1]
			if r.Date.Sub(prev.Date) > gap {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return clusters
}

// Propagate copies a confident member match to the unmatched members of
// each cluster and records the anchor date of the matched member in hints.
// Matched members are never overwritten, which keeps propagation
// idempotent. Returns the number of reviews that received a match.
func Propagate(clusters []Cluster, hints *ClusterHints, productName func(slug string) string) int {
	propagated := 0

	for _, c := range clusters {
		var slug string
		var anchorDate time.Time
		for _, r := range c.Members {
			if r.Matched() {
				slug = r.ProductSlug
				anchorDate = r.Date
				break
			}
		}
		if slug == "" {
			continue
		}

		if hints != nil {
			hints.Add(anchorDate, slug)
		}

		for _, r := range c.Members {
			if r.Matched() {
				continue
			}
			r.ProductSlug = slug
			if productName != nil {
				r.ProductName = productName(slug)
			}
			propagated++
		}
	}

	return propagated
}
