// Package triage suggests candidate products for unmatched reviews using
// an LLM. Suggestions are advisory output for a human curating the alias
// table; they never feed back into the matching cascade automatically.
package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/shutterline/schemapipe/internal/review"
)

// Config represents the configuration for a suggestion provider.
type Config struct {
	Model       string
	Temperature float64
}

// Provider produces a raw model response for a prompt.
type Provider interface {
	Generate(ctx context.Context, config Config, prompt string) (string, error)
}

// Suggestion pairs an unmatched review with the model's candidate slug.
// Slug is "none" when the model could not attribute the review.
type Suggestion struct {
	Reviewer string
	Body     string
	Slug     string
}

// Suggester runs unmatched reviews through a provider against the known
// slug list.
type Suggester struct {
	provider Provider
	cfg      Config
	slugs    []string
}

// NewSuggester creates a suggester over the catalog's slug list.
func NewSuggester(provider Provider, cfg Config, slugs []string) *Suggester {
	return &Suggester{provider: provider, cfg: cfg, slugs: slugs}
}

// Suggest asks the provider for a candidate slug for each unmatched
// review. Matched reviews are skipped. A provider error aborts the run;
// triage is interactive, so failing fast beats a half-annotated report.
func (s *Suggester) Suggest(ctx context.Context, reviews []review.Review) ([]Suggestion, error) {
	var out []Suggestion
	for i := range reviews {
		rev := &reviews[i]
		if rev.Matched() {
			continue
		}

		raw, err := s.provider.Generate(ctx, s.cfg, s.prompt(rev))
		if err != nil {
			return nil, fmt.Errorf("suggestion failed for reviewer %q: %w", rev.Reviewer, err)
		}

		out = append(out, Suggestion{
			Reviewer: rev.Reviewer,
			Body:     rev.Body,
			Slug:     s.cleanSlug(raw),
		})
	}
	return out, nil
}

func (s *Suggester) prompt(rev *review.Review) string {
	var b strings.Builder
	b.WriteString("You match customer reviews of a photography workshop business to products.\n")
	b.WriteString("Products (one slug per line):\n")
	for _, slug := range s.slugs {
		b.WriteString(slug)
		b.WriteString("\n")
	}
	b.WriteString("\nReview:\n")
	if rev.Title != "" {
		b.WriteString(rev.Title)
		b.WriteString("\n")
	}
	b.WriteString(rev.Body)
	b.WriteString("\n\nAnswer with exactly one slug from the list, or the word none.\n")
	return b.String()
}

// cleanSlug reduces a model response to a known slug or "none".
func (s *Suggester) cleanSlug(raw string) string {
	answer := strings.ToLower(strings.TrimSpace(raw))
	answer = strings.Trim(answer, "`\"'.")

	for _, slug := range s.slugs {
		if answer == slug {
			return slug
		}
	}
	// Models occasionally wrap the answer in a sentence.
	for _, slug := range s.slugs {
		if strings.Contains(answer, slug) {
			return slug
		}
	}
	return "none"
}
