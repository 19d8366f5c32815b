package driving

import "github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get retrieves current client settings.
	Get() (*domain.ClientSettings, error)

	// Save persists client settings.
	Save(settings *domain.ClientSettings) error

	// Set updates one settings key from its string form, as used by
	// the config command. Returns domain.ErrInvalidInput for unknown
	// keys or unparseable values.
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.ClientSettings

	// Keys returns the settable configuration keys.
	Keys() []string

	// Path returns the backing configuration file location.
	Path() string
}
