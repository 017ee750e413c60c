package pipelinecmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shutterline/schemapipe/internal/matching"
	"github.com/shutterline/schemapipe/internal/results"
	"github.com/shutterline/schemapipe/internal/review"
)

// NewMatchCmd creates the match command: one source through the cascade,
// without merging or structured data output.
func NewMatchCmd() *cobra.Command {
	var productsPath string
	var eventsPath string
	var reviewsPath string
	var source string
	var aliasesPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a single review export against the product catalog",
		Long: `Match one review export against the product catalog and write the
annotated collection. Useful for tuning thresholds and the alias table
on one source before a full run.`,
		Example: `  # Match the Google export with the event calendar
  schemapipe match --products products.csv --events events.csv \
    --reviews google.jsonl --source google --output matched.json

  # Match Trustpilot (no date strategies)
  schemapipe match --products products.csv --reviews trustpilot.jsonl \
    --source trustpilot --output matched.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, cfg, err := sourceConfig(source)
			if err != nil {
				return err
			}
			return executeMatch(productsPath, eventsPath, reviewsPath, aliasesPath, outputPath, src, cfg)
		},
	}

	cmd.Flags().StringVar(&productsPath, "products", "", "Path to product export (required)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to event calendar export")
	cmd.Flags().StringVar(&reviewsPath, "reviews", "", "Path to review export (required)")
	cmd.Flags().StringVar(&source, "source", "google", "Review source (google or trustpilot)")
	cmd.Flags().StringVar(&aliasesPath, "aliases", "", "Path to alias table YAML (defaults to the built-in table)")
	cmd.Flags().StringVar(&outputPath, "output", "matched.json", "Path for the annotated collection")

	_ = cmd.MarkFlagRequired("products")
	_ = cmd.MarkFlagRequired("reviews")

	return cmd
}

// sourceConfig maps a source name to its identity and matching profile.
func sourceConfig(source string) (review.Source, matching.Config, error) {
	switch source {
	case "google":
		return review.SourceGoogle, matching.DefaultConfig(), nil
	case "trustpilot":
		return review.SourceTrustpilot, matching.BaseConfig(), nil
	default:
		return "", matching.Config{}, fmt.Errorf("unsupported source: %s (supported: google, trustpilot)", source)
	}
}

func executeMatch(productsPath, eventsPath, reviewsPath, aliasesPath, outputPath string, source review.Source, cfg matching.Config) error {
	products, err := loadCatalog(productsPath)
	if err != nil {
		return err
	}
	slog.Info("Catalog loaded", "products", products.Len())

	aliases, err := loadAliases(aliasesPath)
	if err != nil {
		return err
	}

	matcher, err := newSourceMatcher(products, eventsPath, aliases, cfg)
	if err != nil {
		return err
	}

	matched, stats, err := matchSource(matcher, reviewsPath, source)
	if err != nil {
		return err
	}

	if err := results.WriteCollection(outputPath, matched); err != nil {
		return err
	}

	fmt.Printf("%s: %d total, %d matched (%d propagated, %d second pass), %d unmatched\n",
		source, stats.Total, stats.Matched, stats.Propagated, stats.SecondPass, stats.Unmatched)
	fmt.Printf("Annotated collection: %s\n", outputPath)

	return nil
}
