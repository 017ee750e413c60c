package pipelinecmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shutterline/schemapipe/internal/matching"
	"github.com/shutterline/schemapipe/internal/review"
	"github.com/shutterline/schemapipe/internal/triage"
)

// NewTriageCmd creates the triage command: LLM suggestions for reviews
// the cascade left unmatched.
func NewTriageCmd() *cobra.Command {
	var productsPath string
	var reviewsPath string
	var source string
	var aliasesPath string
	var model string
	var temperature float64

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Suggest products for unmatched reviews using Gemini",
		Long: `Run a review export through the matching cascade, then ask Gemini for
a candidate product for every review left unmatched.

Suggestions are printed for a human curating the alias table; nothing is
written back into the collection. Requires GEMINI_API_KEY.`,
		Example: `  schemapipe triage --products products.csv --reviews google.jsonl

  # Trustpilot export with a custom model
  schemapipe triage --products products.csv --reviews trustpilot.jsonl \
    --source trustpilot --model gemini-2.0-flash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, cfg, err := sourceConfig(source)
			if err != nil {
				return err
			}
			return executeTriage(cmd, productsPath, reviewsPath, aliasesPath, src, cfg, triage.Config{
				Model:       model,
				Temperature: temperature,
			})
		},
	}

	cmd.Flags().StringVar(&productsPath, "products", "", "Path to product export (required)")
	cmd.Flags().StringVar(&reviewsPath, "reviews", "", "Path to review export (required)")
	cmd.Flags().StringVar(&source, "source", "google", "Review source (google or trustpilot)")
	cmd.Flags().StringVar(&aliasesPath, "aliases", "", "Path to alias table YAML (defaults to the built-in table)")
	cmd.Flags().StringVar(&model, "model", "gemini-2.0-flash", "Gemini model name")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.1, "Sampling temperature")

	_ = cmd.MarkFlagRequired("products")
	_ = cmd.MarkFlagRequired("reviews")

	return cmd
}

func executeTriage(cmd *cobra.Command, productsPath, reviewsPath, aliasesPath string, source review.Source, cfg matching.Config, providerCfg triage.Config) error {
	ctx := cmd.Context()

	products, err := loadCatalog(productsPath)
	if err != nil {
		return err
	}

	aliases, err := loadAliases(aliasesPath)
	if err != nil {
		return err
	}

	reviews, err := loadSource(reviewsPath, source)
	if err != nil {
		return err
	}

	matcher := matching.NewMatcher(products, nil, aliases, cfg)
	stats := matcher.Run(asPointers(reviews))
	slog.Info("Cascade complete", "matched", stats.Matched, "unmatched", stats.Unmatched)

	if stats.Unmatched == 0 {
		fmt.Println("Nothing to triage: every review matched.")
		return nil
	}

	suggester := triage.NewSuggester(triage.NewGemini(), providerCfg, products.Slugs())
	suggestions, err := suggester.Suggest(ctx, reviews)
	if err != nil {
		return err
	}

	fmt.Printf("Suggestions for %d unmatched reviews:\n\n", len(suggestions))
	for _, s := range suggestions {
		body := s.Body
		if len(body) > 80 {
			body = body[:80] + "..."
		}
		fmt.Printf("%-30s %s\n    %s\n", s.Reviewer, s.Slug, body)
	}

	return nil
}
