package pipelinecmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shutterline/schemapipe/internal/dataset"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	var reviewsPath string
	var limit int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect raw review export records",
		Long: `Inspect records from a review export file.

Useful for checking what the rating and date fields of a new export
actually look like before wiring the source into a run.`,
		Example: `  # Inspect the first 5 records interactively
  schemapipe inspect --reviews google.jsonl --limit 5 --interactive

  # Inspect all records
  schemapipe inspect --reviews google.jsonl --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, reviewsPath, limit, interactive)
		},
	}

	cmd.Flags().StringVar(&reviewsPath, "reviews", "", "Path to review export (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each record (press Enter to continue)")

	_ = cmd.MarkFlagRequired("reviews")

	return cmd
}

func executeInspect(ctx context.Context, reviewsPath string, limit int, interactive bool) error {
	records, err := dataset.LoadReviews(reviewsPath)
	if err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	fmt.Printf("Loaded %d records from %s\n", len(records), reviewsPath)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for i, record := range records {
		select {
		case <-ctx.Done():
			fmt.Println("\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Printf("RECORD %d/%d\n", i+1, len(records))
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("Reviewer: %s\n", record.Reviewer)
		if record.Title != "" {
			fmt.Printf("Title:    %s\n", record.Title)
		}
		fmt.Printf("Rating:   %q\n", record.Rating)
		fmt.Printf("Date:     %q\n", record.Date)

		body := record.Body
		maxChars := 500
		if len(body) > maxChars {
			fmt.Printf("Body:     %s\n[... truncated, showing first %d of %d characters ...]\n",
				body[:maxChars], maxChars, len(body))
		} else {
			fmt.Printf("Body:     %s\n", body)
		}
		fmt.Println()

		if interactive {
			fmt.Print("Press Enter to continue to next record (or Ctrl+C to quit)...")

			inputCh := make(chan struct{})
			go func() {
				_, _ = reader.ReadString('\n')
				close(inputCh)
			}()

			select {
			case <-ctx.Done():
				fmt.Println("\nInspection interrupted.")
				return nil
			case <-inputCh:
				fmt.Println()
			}
		}
	}

	return nil
}
