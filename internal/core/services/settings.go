package services

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerURL      = "server.url"
	keyRequestTimeout = "server.request_timeout"
	keyUploadTimeout  = "server.upload_timeout"
	keyWatchDir       = "staging.watch_dir"
	keyArchiveEnabled = "archive.enabled"
	keyDataDir        = "archive.data_dir"
	keyLogLevel       = "log.level"
)

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current client settings, with defaults filled in for
// anything the config file does not mention.
func (s *SettingsService) Get() (*domain.ClientSettings, error) {
	defaults := domain.DefaultClientSettings()

	settings := &domain.ClientSettings{
		ServerURL:      s.getString(keyServerURL, defaults.ServerURL),
		RequestTimeout: s.getDuration(keyRequestTimeout, defaults.RequestTimeout),
		UploadTimeout:  s.getDuration(keyUploadTimeout, defaults.UploadTimeout),
		WatchDir:       s.configStore.GetString(keyWatchDir),
		ArchiveEnabled: s.getBool(keyArchiveEnabled, defaults.ArchiveEnabled),
		DataDir:        s.configStore.GetString(keyDataDir),
		LogLevel:       s.getString(keyLogLevel, defaults.LogLevel),
	}
	return settings, nil
}

// Save persists client settings.
func (s *SettingsService) Save(settings *domain.ClientSettings) error {
	values := map[string]any{
		keyServerURL:      settings.ServerURL,
		keyRequestTimeout: settings.RequestTimeout.String(),
		keyUploadTimeout:  settings.UploadTimeout.String(),
		keyWatchDir:       settings.WatchDir,
		keyArchiveEnabled: settings.ArchiveEnabled,
		keyDataDir:        settings.DataDir,
		keyLogLevel:       settings.LogLevel,
	}
	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set updates one settings key from its string form.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyServerURL:
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("server url %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)

	case keyRequestTimeout, keyUploadTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("duration %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)

	case keyArchiveEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("boolean %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, enabled)

	case keyLogLevel:
		switch value {
		case "debug", "info", "warn", "error":
			return s.configStore.Set(key, value)
		default:
			return fmt.Errorf("log level %q: %w", value, domain.ErrInvalidInput)
		}

	case keyWatchDir, keyDataDir:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ClientSettings {
	return domain.DefaultClientSettings()
}

// Path returns the backing configuration file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Keys returns the settable configuration keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyServerURL,
		keyRequestTimeout,
		keyUploadTimeout,
		keyWatchDir,
		keyArchiveEnabled,
		keyDataDir,
		keyLogLevel,
	}
}

func (s *SettingsService) getString(key, fallback string) string {
	if value := s.configStore.GetString(key); value != "" {
		return value
	}
	return fallback
}

func (s *SettingsService) getBool(key string, fallback bool) bool {
	if !s.configStore.Has(key) {
		return fallback
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, fallback time.Duration) time.Duration {
	value := s.configStore.GetString(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
