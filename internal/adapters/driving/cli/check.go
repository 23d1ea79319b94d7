package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check which providers are reachable",
	Long: `Probes each configured completion backend and the embedding provider
with a lightweight request that validates the API key without running
inference. Useful before a large indexing run, and for deciding
whether answers will come from a real backend or the rule-based
responder.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if len(healthCheckers) == 0 {
		cmd.Println("No providers configured; answers will be rule-based and chunks stored without vectors.")
		return nil
	}

	reachable := 0
	for _, checker := range healthCheckers {
		if err := checker.Ping(context.Background()); err != nil {
			cmd.Printf("  %-14s unreachable: %v\n", checker.Name(), err)
			continue
		}
		cmd.Printf("  %-14s ok\n", checker.Name())
		reachable++
	}

	if reachable == 0 {
		return errors.New("no provider reachable")
	}
	cmd.Printf("%d of %d providers reachable.\n", reachable, len(healthCheckers))
	return nil
}
