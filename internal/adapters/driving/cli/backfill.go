package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var backfillDocumentID string

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Embed chunks that were stored without a vector",
	Long: `Finds chunks indexed text-only (because the embedding provider was
unreachable or throttled at index time) and embeds them now.`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillDocumentID, "document", "", "limit backfill to one document ID")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	updated, err := indexerService.BackfillEmbeddings(context.Background(), backfillDocumentID)
	if err != nil {
		return fmt.Errorf("backfill embeddings: %w", err)
	}

	if updated == 0 {
		cmd.Println("Nothing to backfill.")
		return nil
	}
	cmd.Printf("Backfilled %d chunks.\n", updated)
	return nil
}
