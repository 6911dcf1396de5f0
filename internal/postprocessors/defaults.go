package postprocessors

import (
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/postprocessors/chunker"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
}

// NewChunkingPipeline returns the default pipeline for the given maximum
// chunk length.
func NewChunkingPipeline(maxLength int) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(domain.PipelineConfigFor(maxLength))
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - max_length (int): maximum bytes per chunk (default: 2000)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size := getIntFromConfig(cfg, "max_length"); size > 0 {
		opts = append(opts, chunker.WithMaxLength(size))
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

// ChunkingPipelineFactory adapts NewChunkingPipeline to driven.PipelineFactory.
func ChunkingPipelineFactory(maxLength int) (driven.PostProcessorPipeline, error) {
	p, err := NewChunkingPipeline(maxLength)
	if err != nil {
		return nil, err
	}
	return p, nil
}
