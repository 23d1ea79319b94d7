// Package cli provides the command-line interface for PolicyQ.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/policyq/policyq-cli/internal/cache"
	"github.com/policyq/policyq-cli/internal/core/ports/driving"
	"github.com/policyq/policyq-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected at startup. Commands check for nil so the CLI
// degrades gracefully when a service could not be constructed.
var (
	indexerService driving.IndexerService
	answerService  driving.AnswerService
	cacheManager   *cache.Manager
	chunkCounter   ChunkCounter
	healthCheckers []HealthChecker
)

// ChunkCounter reports stored chunk totals for the stats command.
type ChunkCounter interface {
	CountChunks(ctx context.Context) (total, embedded int, err error)
}

// HealthChecker is a provider the check command can probe for
// reachability without running inference.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "policyq",
	Short: "Ask questions about your insurance policies",
	Long: `PolicyQ indexes insurance policy documents into a local store and
answers questions about them using retrieval over chunked, embedded
text. When no generation backend is reachable, answers degrade to a
deterministic rule-based responder so the CLI keeps working offline.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// SetServices injects the application services. Called once from main
// before Execute.
func SetServices(indexer driving.IndexerService, answerer driving.AnswerService, caches *cache.Manager) {
	indexerService = indexer
	answerService = answerer
	cacheManager = caches
}

// SetChunkCounter injects the store handle used by the stats command.
func SetChunkCounter(counter ChunkCounter) {
	chunkCounter = counter
}

// SetHealthCheckers injects the providers probed by the check command.
func SetHealthCheckers(checkers []HealthChecker) {
	healthCheckers = checkers
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
