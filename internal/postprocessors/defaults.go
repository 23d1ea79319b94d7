package postprocessors

import (
	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/postprocessors/boilerplate"
	"github.com/policyq/policyq-cli/internal/postprocessors/chunker"
	"github.com/policyq/policyq-cli/internal/postprocessors/dedup"
	"github.com/policyq/policyq-cli/internal/postprocessors/quality"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("boilerplate", buildBoilerplate)
	r.Register("chunker", buildChunker)
	r.Register("dedup", buildDedup)
	r.Register("quality", buildQuality)
}

// DefaultPipeline builds the standard indexing pipeline in its fixed
// order: boilerplate stripping, then chunking, then exact dedup, then
// the quality gate. Dedup must not run before boilerplate removal or
// near-identical boilerplate-laden chunks escape deduplication.
func DefaultPipeline(cfg domain.ChunkingSettings) *Pipeline {
	var opts []chunker.Option
	if cfg.Size > 0 {
		opts = append(opts, chunker.WithSize(cfg.Size), chunker.WithOverlap(cfg.Overlap))
	}

	return NewPipeline(
		boilerplate.New(),
		chunker.New(opts...),
		dedup.New(),
		quality.New(),
	)
}

func buildBoilerplate(_ map[string]any) (driven.PostProcessor, error) {
	return boilerplate.New(), nil
}

func buildDedup(_ map[string]any) (driven.PostProcessor, error) {
	return dedup.New(), nil
}

func buildQuality(_ map[string]any) (driven.PostProcessor, error) {
	return quality.New(), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - size (int): Words per chunk (default: 500)
//   - overlap (int): Overlapping words between chunks (default: 50)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "size"); size > 0 {
			opts = append(opts, chunker.WithSize(size))
		}
		if overlap := getIntFromConfig(cfg, "overlap"); overlap >= 0 {
			opts = append(opts, chunker.WithOverlap(overlap))
		}
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
