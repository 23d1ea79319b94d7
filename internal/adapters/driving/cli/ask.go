package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

var (
	askDocumentID string
	askJSON       bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your indexed policies",
	Long: `Retrieves the most relevant chunks for the question and answers
through the completion backend chain. When every backend is
unreachable, a deterministic rule-based answer is produced instead, so
the command never fails for lack of connectivity.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askDocumentID, "document", "", "limit retrieval to one document ID")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerService.AnswerQuestion(context.Background(), askDocumentID, args[0])
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Answer)

	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, citation := range answer.Citations {
			cmd.Printf("  [%d] (%.2f) %s\n", i+1, citation.Score, citation.Excerpt)
		}
	}

	cmd.Println()
	cmd.Printf("Answered by: %s\n", answer.Backend)
	return nil
}
