package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/loaders"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Extract a structured summary of a policy document",
	Long: `Runs structured extraction over a policy document, producing the
policy type, provider, coverage, exclusions, claim process and a claim
readiness score. When the response cannot be parsed the fields fall
back to typed defaults rather than failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	text, err := loaders.ReadPolicy(args[0])
	if err != nil {
		return err
	}

	analysis, err := answerService.AnalyzePolicy(context.Background(), text)
	if err != nil {
		return fmt.Errorf("analyze policy: %w", err)
	}

	if analyzeJSON {
		return outputAnalysisJSON(cmd, analysis)
	}
	return outputAnalysisText(cmd, analysis)
}

func outputAnalysisJSON(cmd *cobra.Command, analysis domain.PolicyAnalysis) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnalysisText(cmd *cobra.Command, analysis domain.PolicyAnalysis) error {
	cmd.Printf("Policy type:     %s\n", analysis.PolicyType)
	cmd.Printf("Provider:        %s\n", analysis.Provider)
	if analysis.PolicyNumber != "" {
		cmd.Printf("Policy number:   %s\n", analysis.PolicyNumber)
	}
	cmd.Printf("Coverage amount: %s\n", analysis.CoverageAmount)
	cmd.Printf("Premium:         %s\n", analysis.Premium)
	cmd.Printf("Deductible:      %s\n", analysis.Deductible)
	if analysis.ExpirationDate != "" {
		cmd.Printf("Expires:         %s\n", analysis.ExpirationDate)
	}
	cmd.Println()
	cmd.Printf("Coverage:\n  %s\n", analysis.Coverage)
	cmd.Printf("Exclusions:\n  %s\n", analysis.Exclusions)
	cmd.Printf("Claim process:\n  %s\n", analysis.ClaimProcess)
	if len(analysis.KeyFeatures) > 0 {
		cmd.Printf("Key features:\n  - %s\n", strings.Join(analysis.KeyFeatures, "\n  - "))
	}
	cmd.Println()
	cmd.Printf("Claim readiness score: %d/100\n", analysis.ClaimReadinessScore)
	return nil
}
