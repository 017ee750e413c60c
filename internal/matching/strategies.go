package matching

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shutterline/schemapipe/internal/calendar"
	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// Outcome is the result of a single strategy attempt. Decided with an empty
// Slug means "recognized but deliberately unmatched": the cascade stops
// without a match.
type Outcome struct {
	Slug    string
	Decided bool
}

func undecided() Outcome              { return Outcome{} }
func matched(slug string) Outcome    { return Outcome{Slug: slug, Decided: true} }
func deliberatelyUnmatched() Outcome { return Outcome{Decided: true} }

// Strategy is one stage of the matching cascade.
type Strategy interface {
	Name() string
	Attempt(rev *review.Review) Outcome
}

// clusterStrategy returns a cluster-propagated match when the review date
// falls within the anchor window of a confidently matched cluster. It sits
// first in the cascade: a sibling review matched in the same week is
// stronger evidence than any text signal.
type clusterStrategy struct {
	hints  *ClusterHints
	window time.Duration
}

func (s *clusterStrategy) Name() string { return "cluster" }

func (s *clusterStrategy) Attempt(rev *review.Review) Outcome {
	if !rev.HasDate() {
		return undecided()
	}
	if slug, ok := s.hints.Lookup(rev.Date, s.window); ok {
		return matched(slug)
	}
	return undecided()
}

// eventStrategy scores scheduled events near the review date by title-word
// overlap, temporal decay and a verbatim location mention.
type eventStrategy struct {
	events   *calendar.Index
	products *catalog.Index
	cfg      Config
}

func (s *eventStrategy) Name() string { return "event" }

func (s *eventStrategy) Attempt(rev *review.Review) Outcome {
	if !rev.HasDate() {
		return undecided()
	}

	window := time.Duration(s.cfg.EventWindowDays) * 24 * time.Hour
	nearby := s.events.Within(rev.Date, window)
	if len(nearby) == 0 {
		return undecided()
	}

	text := rev.Text()

	var bestSlug string
	var bestScore float64
	for _, e := range nearby {
		score := s.score(text, rev.Date, e)
		if score > bestScore {
			bestScore = score
			bestSlug = e.Slug
		}
	}

	if bestScore > s.cfg.EventAcceptScore && bestSlug != "" && s.products.Contains(bestSlug) {
		return matched(bestSlug)
	}
	return undecided()
}

func (s *eventStrategy) score(text string, date time.Time, e calendar.ScheduledEvent) float64 {
	// Fraction of significant event-title words present in the review.
	words := strings.Fields(strings.ToLower(e.Title))
	significant := 0
	found := 0
	for _, w := range words {
		if len(w) <= s.cfg.KeywordMinLength {
			continue
		}
		significant++
		if strings.Contains(text, w) {
			found++
		}
	}
	titleFrac := 0.0
	if significant > 0 {
		titleFrac = float64(found) / float64(significant)
	}

	days := date.Sub(e.Start).Hours() / 24
	if days < 0 {
		days = -days
	}
	decay := 1.0 / (1.0 + days/s.cfg.EventDecayDays)

	location := 0.0
	if e.Location != "" && strings.Contains(text, strings.ToLower(e.Location)) {
		location = 1.0
	}

	return s.cfg.EventTitleWeight*titleFrac +
		s.cfg.EventDecayWeight*decay +
		s.cfg.EventLocationWeight*location
}

// aliasStrategy looks the review text up in the curated alias table.
type aliasStrategy struct {
	aliases  AliasTable
	products *catalog.Index
}

func (s *aliasStrategy) Name() string { return "alias" }

func (s *aliasStrategy) Attempt(rev *review.Review) Outcome {
	slug, fired := s.aliases.Match(rev.Text())
	if !fired {
		return undecided()
	}
	if slug == "" {
		return deliberatelyUnmatched()
	}
	if !s.products.Contains(slug) {
		// A miswired alias target must not break the catalog invariant.
		slog.Warn("Alias target not in catalog, ignoring rule", "slug", slug)
		return undecided()
	}
	return matched(slug)
}

// keywordStrategy scores every product by the fraction of the review's
// keyword set found in the product name.
type keywordStrategy struct {
	products  *catalog.Index
	extractor *keywordExtractor
	accept    float64
}

func (s *keywordStrategy) Name() string { return "keyword" }

func (s *keywordStrategy) Attempt(rev *review.Review) Outcome {
	keywords := s.extractor.Extract(rev.Text())
	if len(keywords) == 0 {
		return undecided()
	}

	var bestSlug string
	var bestScore float64
	for _, p := range s.products.Products() {
		name := strings.ToLower(p.Name)
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(keywords))
		if score > bestScore {
			bestScore = score
			bestSlug = p.Slug
		}
	}

	if bestScore >= s.accept {
		return matched(bestSlug)
	}
	return undecided()
}

// fuzzyStrategy is the catch-all: normalized edit-distance similarity
// between the full review text and each product name. Last and loosest
// because it is the weakest signal.
type fuzzyStrategy struct {
	products *catalog.Index
	accept   float64
}

func (s *fuzzyStrategy) Name() string { return "fuzzy" }

func (s *fuzzyStrategy) Attempt(rev *review.Review) Outcome {
	text := normalizeText(rev.Text())
	if text == "" {
		return undecided()
	}

	var bestSlug string
	var bestScore float64
	for _, p := range s.products.Products() {
		ratio := similarityRatio(text, normalizeText(p.Name))
		if ratio > bestScore {
			bestScore = ratio
			bestSlug = p.Slug
		}
	}

	if bestScore >= s.accept {
		return matched(bestSlug)
	}
	return undecided()
}
