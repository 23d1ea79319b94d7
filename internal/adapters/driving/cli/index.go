package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/policyq/policyq-cli/internal/loaders"
)

var indexDocumentID string

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Index a policy document",
	Long: `Reads a policy document (txt, md, html or docx), filters
boilerplate, splits it into overlapping word windows, embeds the
chunks and stores them for retrieval. Chunks that could not be
embedded are stored text-only and can be completed later with the
backfill command.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexDocumentID, "id", "", "document ID (defaults to the file name)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	path := args[0]
	text, err := loaders.ReadPolicy(path)
	if err != nil {
		return err
	}

	documentID := indexDocumentID
	if documentID == "" {
		documentID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	chunks, err := indexerService.IndexDocument(context.Background(), text, documentID)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	embedded := 0
	for _, chunk := range chunks {
		if chunk.Embedded {
			embedded++
		}
	}

	cmd.Printf("Indexed %q: %d chunks stored, %d embedded\n", documentID, len(chunks), embedded)
	if embedded < len(chunks) {
		cmd.Printf("Run 'policyq backfill --document %s' once an embedding provider is reachable.\n", documentID)
	}
	return nil
}
