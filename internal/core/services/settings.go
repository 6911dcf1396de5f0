package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCredentialsFile     = "remote.credentials_file"
	KeyModel               = "remote.model"
	KeyAnswerStyle         = "remote.answer_style"
	KeyCorpusDisplayName   = "corpus.display_name"
	KeyDocumentDisplayName = "corpus.document_display_name"
	KeyMaxChunkLength      = "chunking.max_length"
	KeyReuploadPolicy      = "session.reupload_policy"
	KeyRequestsPerSecond   = "rate_limit.requests_per_second"
	KeyRateLimitBurst      = "rate_limit.burst"
	KeyVerbose             = "log.verbose"
)

var settingKeys = []string{
	KeyCredentialsFile,
	KeyModel,
	KeyAnswerStyle,
	KeyCorpusDisplayName,
	KeyDocumentDisplayName,
	KeyMaxChunkLength,
	KeyReuploadPolicy,
	KeyRequestsPerSecond,
	KeyRateLimitBurst,
	KeyVerbose,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Remote: domain.RemoteSettings{
			CredentialsFile: s.getString(KeyCredentialsFile, defaults.Remote.CredentialsFile),
			Model:           s.getString(KeyModel, defaults.Remote.Model),
			AnswerStyle:     s.getAnswerStyle(defaults.Remote.AnswerStyle),
		},
		Corpus: domain.CorpusSettings{
			DisplayName:         s.getString(KeyCorpusDisplayName, defaults.Corpus.DisplayName),
			DocumentDisplayName: s.getString(KeyDocumentDisplayName, defaults.Corpus.DocumentDisplayName),
		},
		Chunking: domain.ChunkingSettings{
			MaxLength: s.getPositiveInt(KeyMaxChunkLength, defaults.Chunking.MaxLength),
		},
		Session: domain.SessionSettings{
			ReuploadPolicy: s.getReuploadPolicy(defaults.Session.ReuploadPolicy),
		},
		RateLimit: domain.RateLimitSettings{
			RequestsPerSecond: s.getPositiveFloat(KeyRequestsPerSecond, defaults.RateLimit.RequestsPerSecond),
			Burst:             s.getPositiveInt(KeyRateLimitBurst, defaults.RateLimit.Burst),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(KeyVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyCredentialsFile, settings.Remote.CredentialsFile},
		{KeyModel, settings.Remote.Model},
		{KeyAnswerStyle, settings.Remote.AnswerStyle.String()},
		{KeyCorpusDisplayName, settings.Corpus.DisplayName},
		{KeyDocumentDisplayName, settings.Corpus.DocumentDisplayName},
		{KeyMaxChunkLength, settings.Chunking.MaxLength},
		{KeyReuploadPolicy, settings.Session.ReuploadPolicy.String()},
		{KeyRequestsPerSecond, settings.RateLimit.RequestsPerSecond},
		{KeyRateLimitBurst, settings.RateLimit.Burst},
		{KeyVerbose, settings.Log.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value according to key and stores it. The resulting
// settings are validated before anything is written, and only key is
// persisted.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	var stored any
	switch key {
	case KeyCredentialsFile:
		settings.Remote.CredentialsFile = value
		stored = value
	case KeyModel:
		settings.Remote.Model = value
		stored = value
	case KeyAnswerStyle:
		style, ok := domain.ParseAnswerStyle(value)
		if !ok {
			return fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, value)
		}
		settings.Remote.AnswerStyle = style
		stored = style.String()
	case KeyCorpusDisplayName:
		settings.Corpus.DisplayName = value
		stored = value
	case KeyDocumentDisplayName:
		settings.Corpus.DocumentDisplayName = value
		stored = value
	case KeyMaxChunkLength:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Chunking.MaxLength = n
		stored = n
	case KeyReuploadPolicy:
		policy := domain.ReuploadPolicy(strings.ToLower(value))
		settings.Session.ReuploadPolicy = policy
		stored = policy.String()
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.RateLimit.RequestsPerSecond = f
		stored = f
	case KeyRateLimitBurst:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.RateLimit.Burst = n
		stored = n
	case KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Log.Verbose = b
		stored = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if settings.Corpus.DisplayName == "" || settings.Corpus.DocumentDisplayName == "" {
		return fmt.Errorf("%w: display names must not be empty", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, stored)
}

// Reset removes all stored values so defaults apply.
func (s *SettingsService) Reset() error {
	for _, key := range settingKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Values returns every setting rendered for display, in key order.
func (s *SettingsService) Values() ([]driving.SettingValue, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	rendered := map[string]string{
		KeyCredentialsFile:     settings.Remote.CredentialsFile,
		KeyModel:               settings.Remote.Model,
		KeyAnswerStyle:         settings.Remote.AnswerStyle.String(),
		KeyCorpusDisplayName:   settings.Corpus.DisplayName,
		KeyDocumentDisplayName: settings.Corpus.DocumentDisplayName,
		KeyMaxChunkLength:      strconv.Itoa(settings.Chunking.MaxLength),
		KeyReuploadPolicy:      settings.Session.ReuploadPolicy.String(),
		KeyRequestsPerSecond:   strconv.FormatFloat(settings.RateLimit.RequestsPerSecond, 'g', -1, 64),
		KeyRateLimitBurst:      strconv.Itoa(settings.RateLimit.Burst),
		KeyVerbose:             strconv.FormatBool(settings.Log.Verbose),
	}

	values := make([]driving.SettingValue, 0, len(settingKeys))
	for _, key := range settingKeys {
		_, stored := s.configStore.Get(key)
		values = append(values, driving.SettingValue{
			Key:    key,
			Value:  rendered[key],
			Stored: stored,
		})
	}
	return values, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetPipelineConfig returns the post-processor pipeline configuration
// for the configured chunk length.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	return domain.PipelineConfigFor(s.getPositiveInt(KeyMaxChunkLength, domain.DefaultMaxChunkLength))
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getAnswerStyle(defaultVal domain.AnswerStyle) domain.AnswerStyle {
	val := s.configStore.GetString(KeyAnswerStyle)
	if val == "" {
		return defaultVal
	}
	style, ok := domain.ParseAnswerStyle(val)
	if !ok {
		return defaultVal
	}
	return style
}

func (s *SettingsService) getReuploadPolicy(defaultVal domain.ReuploadPolicy) domain.ReuploadPolicy {
	val := s.configStore.GetString(KeyReuploadPolicy)
	if val == "" {
		return defaultVal
	}
	policy := domain.ReuploadPolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
