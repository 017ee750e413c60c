package pipelinecmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shutterline/schemapipe/internal/gbp"
)

// NewFetchCmd creates the fetch command: pull reviews from the Google
// Business Profile API into a local export file.
func NewFetchCmd() *cobra.Command {
	var location string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch Google reviews into a local JSONL export",
		Long: `Fetch all reviews for a business location from the Google Business
Profile API and write them as a JSONL export that run and match accept.

Credentials come from the environment (or a .env file):
  GBP_CLIENT_ID, GBP_CLIENT_SECRET, GBP_REFRESH_TOKEN`,
		Example: `  schemapipe fetch --location accounts/123/locations/456 --output google.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := gbp.Credentials{
				ClientID:     os.Getenv("GBP_CLIENT_ID"),
				ClientSecret: os.Getenv("GBP_CLIENT_SECRET"),
				RefreshToken: os.Getenv("GBP_REFRESH_TOKEN"),
			}
			if creds.ClientID == "" || creds.ClientSecret == "" || creds.RefreshToken == "" {
				return fmt.Errorf("GBP_CLIENT_ID, GBP_CLIENT_SECRET and GBP_REFRESH_TOKEN must be set")
			}

			return executeFetch(cmd, location, outputPath, creds)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Business location (accounts/{account}/locations/{location}) (required)")
	cmd.Flags().StringVar(&outputPath, "output", "google.jsonl", "Path for the JSONL export")

	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func executeFetch(cmd *cobra.Command, location, outputPath string, creds gbp.Credentials) error {
	ctx := cmd.Context()

	slog.Info("Fetching reviews", "location", location)

	client := gbp.NewClient(ctx, location, creds)
	reviews, err := client.FetchReviews(ctx)
	if err != nil {
		return err
	}
	slog.Info("Fetch complete", "reviews", len(reviews))

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	for _, rev := range reviews {
		// Write the raw export shape so the file round-trips through the
		// same loader as any other platform export.
		record := map[string]string{
			"reviewer": rev.Reviewer,
			"body":     rev.Body,
			"rating":   rev.RawRating,
			"date":     rev.RawDate,
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write review: %w", err)
		}
	}

	fmt.Printf("Wrote %d reviews to %s\n", len(reviews), outputPath)
	return nil
}
