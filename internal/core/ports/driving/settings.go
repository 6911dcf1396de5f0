package driving

import "github.com/custodia-labs/pdfqa-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set validates and stores a single setting by key.
	Set(key, value string) error

	// Reset removes all stored values so defaults apply.
	Reset() error

	// Keys returns the recognised setting keys in display order.
	Keys() []string

	// Values returns every setting rendered for display, in key order.
	Values() ([]SettingValue, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are stored.
	Path() string
}

// SettingValue is one setting rendered for display.
type SettingValue struct {
	Key   string
	Value string

	// Stored is false when no value is saved and the default applies.
	Stored bool
}
