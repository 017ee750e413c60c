package cmd

import (
	"github.com/joho/godotenv"
	"github.com/shutterline/schemapipe/internal/pipelinecmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemapipe",
		Short: "Review-to-product matching pipeline for structured data generation",
		Long: `Schemapipe transforms product, event and review exports into a unified,
product-keyed review collection ready for schema.org structured data.

Reviews from multiple platforms are matched to catalog products through a
cascade of heuristics: alias lookup, event-calendar proximity, keyword
overlap and fuzzy similarity.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(pipelinecmd.NewRunCmd())
	cmd.AddCommand(pipelinecmd.NewMatchCmd())
	cmd.AddCommand(pipelinecmd.NewInspectCmd())
	cmd.AddCommand(pipelinecmd.NewFetchCmd())
	cmd.AddCommand(pipelinecmd.NewTriageCmd())

	return cmd
}
