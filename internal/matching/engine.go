// Package matching implements the review-to-product matching cascade.
//
// The cascade is an ordered list of strategies tried in strict priority
// order; the first strategy that decides wins. Order is load-bearing:
// date-driven evidence outranks the alias table, which outranks keyword
// overlap, which outranks fuzzy similarity.
package matching

import (
	"log/slog"
	"time"

	"github.com/shutterline/schemapipe/internal/calendar"
	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// Engine runs the matching cascade for a single review.
type Engine struct {
	products   *catalog.Index
	cfg        Config
	strategies []Strategy
}

// NewEngine builds the base three-stage cascade: alias, keyword overlap,
// fuzzy similarity. This is the full cascade for sources without reliable
// timestamps.
func NewEngine(products *catalog.Index, aliases AliasTable, cfg Config) *Engine {
	return &Engine{
		products: products,
		cfg:      cfg,
		strategies: []Strategy{
			&aliasStrategy{aliases: aliases, products: products},
			&keywordStrategy{products: products, extractor: newKeywordExtractor(cfg), accept: cfg.KeywordAccept},
			&fuzzyStrategy{products: products, accept: cfg.FuzzyAccept},
		},
	}
}

// WithCalendar returns a new engine with the date-aware strategies layered
// in front of the base cascade: cluster override first (when hints are
// supplied), then event calendar scoring.
func (e *Engine) WithCalendar(events *calendar.Index, hints *ClusterHints) *Engine {
	dated := make([]Strategy, 0, len(e.strategies)+2)
	if hints != nil {
		dated = append(dated, &clusterStrategy{
			hints:  hints,
			window: time.Duration(e.cfg.ClusterAnchorWindowDays) * 24 * time.Hour,
		})
	}
	if events != nil {
		dated = append(dated, &eventStrategy{events: events, products: e.products, cfg: e.cfg})
	}

	return &Engine{
		products:   e.products,
		cfg:        e.cfg,
		strategies: append(dated, e.strategies...),
	}
}

// Match runs the cascade and returns the matched slug, if any. A strategy
// that decides with no slug (null alias) terminates the cascade unmatched.
func (e *Engine) Match(rev *review.Review) (string, bool) {
	for _, s := range e.strategies {
		outcome := s.Attempt(rev)
		if !outcome.Decided {
			continue
		}
		if outcome.Slug == "" {
			slog.Debug("Review deliberately unmatched", "strategy", s.Name(), "reviewer", rev.Reviewer)
			return "", false
		}
		slog.Debug("Review matched", "strategy", s.Name(), "slug", outcome.Slug, "reviewer", rev.Reviewer)
		return outcome.Slug, true
	}
	return "", false
}
