package pipelinecmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/matching"
	"github.com/shutterline/schemapipe/internal/merge"
	"github.com/shutterline/schemapipe/internal/results"
	"github.com/shutterline/schemapipe/internal/review"
	"github.com/shutterline/schemapipe/internal/schema"
)

// NewRunCmd creates the run command: the full pipeline from exports to
// structured data.
func NewRunCmd() *cobra.Command {
	var productsPath string
	var eventsPath string
	var googlePath string
	var trustpilotPath string
	var aliasesPath string
	var outputDir string
	var minRating int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: match, merge and emit structured data",
		Long: `Run the full pipeline over product, event and review exports.

Each review source is matched against the product catalog, the matched
collections are merged and deduplicated, and the eligible reviews are
written out as a unified collection plus per-product schema.org JSON-LD.
A YAML match report is written alongside for triage.`,
		Example: `  # Full run with both sources
  schemapipe run --products products.csv --events events.csv \
    --google google.jsonl --trustpilot trustpilot.jsonl

  # Google only, custom alias table
  schemapipe run --products products.csv --google google.jsonl \
    --aliases aliases.yaml --output ./dist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if googlePath == "" && trustpilotPath == "" {
				return fmt.Errorf("at least one of --google or --trustpilot is required")
			}
			return executeRun(runOptions{
				productsPath:   productsPath,
				eventsPath:     eventsPath,
				googlePath:     googlePath,
				trustpilotPath: trustpilotPath,
				aliasesPath:    aliasesPath,
				outputDir:      outputDir,
				minRating:      minRating,
				concurrency:    concurrency,
			})
		},
	}

	cmd.Flags().StringVar(&productsPath, "products", "", "Path to product export (.csv, .jsonl or .parquet) (required)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to event calendar export")
	cmd.Flags().StringVar(&googlePath, "google", "", "Path to Google review export")
	cmd.Flags().StringVar(&trustpilotPath, "trustpilot", "", "Path to Trustpilot review export")
	cmd.Flags().StringVar(&aliasesPath, "aliases", "", "Path to alias table YAML (defaults to the built-in table)")
	cmd.Flags().StringVar(&outputDir, "output", "./out", "Output directory")
	cmd.Flags().IntVar(&minRating, "min-rating", 4, "Minimum rating for a review to be published")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel scoring goroutines per source")

	_ = cmd.MarkFlagRequired("products")

	return cmd
}

type runOptions struct {
	productsPath   string
	eventsPath     string
	googlePath     string
	trustpilotPath string
	aliasesPath    string
	outputDir      string
	minRating      int
	concurrency    int
}

func executeRun(opts runOptions) error {
	slog.Info("Starting pipeline run", "products", opts.productsPath, "output", opts.outputDir)

	products, err := loadCatalog(opts.productsPath)
	if err != nil {
		return err
	}
	slog.Info("Catalog loaded", "products", products.Len())

	aliases, err := loadAliases(opts.aliasesPath)
	if err != nil {
		return err
	}

	cfg := matching.DefaultConfig()
	cfg.Concurrency = opts.concurrency

	report := results.NewReport(cfg, opts.minRating)

	var collections [][]review.Review

	if opts.googlePath != "" {
		googleCfg := cfg
		matcher, err := newSourceMatcher(products, opts.eventsPath, aliases, googleCfg)
		if err != nil {
			return err
		}
		matched, stats, err := matchSource(matcher, opts.googlePath, review.SourceGoogle)
		if err != nil {
			return err
		}
		report.AddSource(string(review.SourceGoogle), stats, len(merge.Eligible(matched, opts.minRating)))
		report.AddUnmatched(matched)
		collections = append(collections, matched)
	}

	if opts.trustpilotPath != "" {
		// Trustpilot exports carry unreliable timestamps; date strategies
		// stay off and clustering is stricter.
		tpCfg := matching.BaseConfig()
		tpCfg.Concurrency = opts.concurrency
		matcher := matching.NewMatcher(products, nil, aliases, tpCfg)
		matched, stats, err := matchSource(matcher, opts.trustpilotPath, review.SourceTrustpilot)
		if err != nil {
			return err
		}
		report.AddSource(string(review.SourceTrustpilot), stats, len(merge.Eligible(matched, opts.minRating)))
		report.AddUnmatched(matched)
		collections = append(collections, matched)
	}

	slog.Info("Merging collections", "sources", len(collections))
	merged := merge.Merge(collections...)
	eligible := merge.Eligible(merged, opts.minRating)
	slog.Info("Merge complete", "merged", len(merged), "eligible", len(eligible))

	collectionPath := filepath.Join(opts.outputDir, "reviews.json")
	if err := results.WriteCollection(collectionPath, merged); err != nil {
		return err
	}

	written, err := schema.WriteAll(filepath.Join(opts.outputDir, "schema"), products, eligible)
	if err != nil {
		return err
	}
	slog.Info("Structured data written", "products", written)

	reportPath, err := report.Save(opts.outputDir)
	if err != nil {
		return err
	}

	printRunSummary(report, len(merged), len(eligible))
	fmt.Printf("\nCollection: %s\nReport:     %s\n", collectionPath, reportPath)

	return nil
}

// newSourceMatcher builds a matcher for a source that may use the event
// calendar.
func newSourceMatcher(products *catalog.Index, eventsPath string, aliases matching.AliasTable, cfg matching.Config) (*matching.Matcher, error) {
	if eventsPath == "" {
		return matching.NewMatcher(products, nil, aliases, cfg), nil
	}
	calendarIndex, err := loadCalendar(eventsPath, products)
	if err != nil {
		return nil, err
	}
	slog.Info("Calendar loaded", "events", calendarIndex.Len())
	return matching.NewMatcher(products, calendarIndex, aliases, cfg), nil
}

// matchSource loads and matches one review source.
func matchSource(matcher *matching.Matcher, path string, source review.Source) ([]review.Review, matching.Stats, error) {
	reviews, err := loadSource(path, source)
	if err != nil {
		return nil, matching.Stats{}, err
	}
	slog.Info("Reviews loaded", "source", source, "count", len(reviews))

	stats := matcher.Run(asPointers(reviews))
	return reviews, stats, nil
}

func printRunSummary(report *results.Report, merged, eligible int) {
	fmt.Println("\n========================================")
	fmt.Println("Pipeline Summary")
	fmt.Println("========================================")
	for _, s := range report.Sources {
		fmt.Printf("%s: %d total, %d matched (%d propagated, %d second pass), %d unmatched\n",
			s.Source, s.Total, s.Matched, s.Propagated, s.SecondPass, s.Unmatched)
	}
	fmt.Println()
	fmt.Printf("Merged:   %d\n", merged)
	fmt.Printf("Eligible: %d\n", eligible)
	fmt.Println("========================================")
}
