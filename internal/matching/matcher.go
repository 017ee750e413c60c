package matching

import (
	"log/slog"
	"sync"

	"github.com/shutterline/schemapipe/internal/calendar"
	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// Stats summarizes one matching run over a single review source.
type Stats struct {
	Total      int
	Matched    int
	Propagated int
	SecondPass int
	Unmatched  int
	Clusters   int
}

// Matcher orchestrates the two-pass matching process for one review
// source. Pass 1 computes unassisted matches for every review; cluster
// propagation then fills unmatched cluster members and records anchors;
// pass 2 re-runs the cascade for still-unmatched reviews with cluster
// knowledge available. Exactly two passes, by design.
type Matcher struct {
	products *catalog.Index
	events   *calendar.Index
	aliases  AliasTable
	cfg      Config
}

// NewMatcher creates a matcher. events may be nil when the source has no
// reliable timestamps or the date strategies are disabled.
func NewMatcher(products *catalog.Index, events *calendar.Index, aliases AliasTable, cfg Config) *Matcher {
	return &Matcher{
		products: products,
		events:   events,
		aliases:  aliases,
		cfg:      cfg,
	}
}

// Run matches every review in place and returns run statistics. Reviews
// are never dropped: an unmatchable review simply keeps an empty
// ProductSlug for manual triage.
func (m *Matcher) Run(reviews []*review.Review) Stats {
	stats := Stats{Total: len(reviews)}

	engine := NewEngine(m.products, m.aliases, m.cfg)
	if m.cfg.EnableDateStrategies && m.events != nil {
		engine = engine.WithCalendar(m.events, nil)
	}

	// Pass 1: unassisted scoring. The indices are read-only, so per-review
	// scoring is safe to parallelize behind a semaphore.
	concurrency := m.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for _, rev := range reviews {
		wg.Add(1)
		go func(rev *review.Review) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if slug, ok := engine.Match(rev); ok {
				m.assign(rev, slug)
			}
		}(rev)
	}
	wg.Wait()

	for _, rev := range reviews {
		if rev.Matched() {
			stats.Matched++
		}
	}

	// Barrier: clustering needs every unassisted score before propagation.
	hints := &ClusterHints{}
	clusters := BuildClusters(reviews, m.cfg.ClusterGapDays, m.cfg.ClusterMinSize)
	stats.Clusters = len(clusters)
	stats.Propagated = Propagate(clusters, hints, m.productName)
	stats.Matched += stats.Propagated

	// Pass 2: still-unmatched reviews, with the cluster override in front.
	if m.cfg.EnableDateStrategies && hints.Len() > 0 {
		second := NewEngine(m.products, m.aliases, m.cfg).WithCalendar(m.events, hints)
		for _, rev := range reviews {
			if rev.Matched() {
				continue
			}
			if slug, ok := second.Match(rev); ok {
				m.assign(rev, slug)
				stats.SecondPass++
				stats.Matched++
			}
		}
	}

	stats.Unmatched = stats.Total - stats.Matched
	slog.Info("Matching run complete",
		"total", stats.Total,
		"matched", stats.Matched,
		"propagated", stats.Propagated,
		"second_pass", stats.SecondPass,
		"unmatched", stats.Unmatched)

	return stats
}

func (m *Matcher) assign(rev *review.Review, slug string) {
	rev.ProductSlug = slug
	rev.ProductName = m.productName(slug)
}

func (m *Matcher) productName(slug string) string {
	if p, ok := m.products.Lookup(slug); ok {
		return p.Name
	}
	return ""
}
