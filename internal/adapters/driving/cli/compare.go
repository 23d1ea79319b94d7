package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policyq/policyq-cli/internal/loaders"
)

var compareCmd = &cobra.Command{
	Use:   "compare [fileA] [fileB]",
	Short: "Compare two policy documents",
	Long: `Produces a markdown comparison of two policy documents covering
coverage, premium, exclusions and claim process, with a short
recommendation.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	textA, err := loaders.ReadPolicy(args[0])
	if err != nil {
		return err
	}
	textB, err := loaders.ReadPolicy(args[1])
	if err != nil {
		return err
	}

	comparison, err := answerService.ComparePolicies(context.Background(), textA, textB)
	if err != nil {
		return fmt.Errorf("compare policies: %w", err)
	}

	cmd.Println(comparison)
	return nil
}
