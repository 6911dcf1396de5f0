package domain

import "fmt"

// Defaults for settings that have no configured value.
const (
	DefaultCredentialsFile   = "service_account_key.json"
	DefaultMaxChunkLength    = 2000
	DefaultRequestsPerSecond = 5.0
	DefaultRateLimitBurst    = 5
)

// RemoteSettings holds remote service configuration.
type RemoteSettings struct {
	// CredentialsFile is the path of the service-account key file.
	CredentialsFile string

	// Model is the answer generation model.
	Model string

	// AnswerStyle is the default answer style.
	AnswerStyle AnswerStyle
}

// CorpusSettings holds the display names given to remote resources.
type CorpusSettings struct {
	// DisplayName is the display name of corpora created by a session.
	DisplayName string

	// DocumentDisplayName is the display name of uploaded documents.
	DocumentDisplayName string
}

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	// MaxLength is the maximum chunk length in bytes. Single sentences
	// longer than this are kept whole.
	MaxLength int
}

// SessionSettings holds interactive session behaviour.
type SessionSettings struct {
	// ReuploadPolicy decides how a second PDF in one session is handled.
	ReuploadPolicy ReuploadPolicy
}

// RateLimitSettings paces remote calls.
type RateLimitSettings struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Verbose enables debug logging without the --verbose flag.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Remote    RemoteSettings
	Corpus    CorpusSettings
	Chunking  ChunkingSettings
	Session   SessionSettings
	RateLimit RateLimitSettings
	Log       LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Remote: RemoteSettings{
			CredentialsFile: DefaultCredentialsFile,
			Model:           DefaultAnswerModel,
			AnswerStyle:     AnswerStyleAbstractive,
		},
		Corpus: CorpusSettings{
			DisplayName:         DefaultCorpusDisplayName,
			DocumentDisplayName: DefaultDocumentDisplayName,
		},
		Chunking: ChunkingSettings{
			MaxLength: DefaultMaxChunkLength,
		},
		Session: SessionSettings{
			ReuploadPolicy: ReuploadReuse,
		},
		RateLimit: RateLimitSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultRateLimitBurst,
		},
	}
}

// Validate checks the settings for values the application cannot use.
func (s AppSettings) Validate() error {
	if !s.Remote.AnswerStyle.IsValid() {
		return fmt.Errorf("%w: answer style %q", ErrInvalidInput, s.Remote.AnswerStyle)
	}
	if s.Remote.Model == "" {
		return fmt.Errorf("%w: model is empty", ErrInvalidInput)
	}
	if s.Chunking.MaxLength <= 0 {
		return fmt.Errorf("%w: max chunk length must be positive", ErrInvalidInput)
	}
	if !s.Session.ReuploadPolicy.IsValid() {
		return fmt.Errorf("%w: reupload policy %q", ErrInvalidInput, s.Session.ReuploadPolicy)
	}
	if s.RateLimit.RequestsPerSecond <= 0 || s.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidInput)
	}
	return nil
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the chunking pipeline for the given maximum
// chunk length.
func PipelineConfigFor(maxLength int) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"max_length": maxLength,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultMaxChunkLength)
}
