package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultType     = "task"
	DefaultPriority = 2
	DefaultIndent   = 1
	DefaultDateLang = "en"
)

// Loader handles loading and validation of the migration settings file
type Loader struct {
	path string
}

// NewLoader creates a new settings loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the settings file. A missing file yields the defaults.
func (l *Loader) Load() (*Settings, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Settings file not found, using defaults", "path", l.path)
		return Parse(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	settings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", l.path, err)
	}

	slog.Debug("Settings loaded", "path", l.path, "filters", len(settings.Filters),
		"deduplication", settings.Options.Deduplication)
	return settings, nil
}

// Parse decodes, defaults and validates settings from YAML.
func Parse(data []byte) (*Settings, error) {
	settings := Settings{
		Options: MigrateOptions{Deduplication: true},
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	setDefaults(&settings)

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &settings, nil
}

// setDefaults applies default values to settings
func setDefaults(settings *Settings) {
	if settings.Output.Type == "" {
		settings.Output.Type = DefaultType
	}
	if settings.Output.Priority == 0 {
		settings.Output.Priority = DefaultPriority
	}
	if settings.Output.Indent == 0 {
		settings.Output.Indent = DefaultIndent
	}
	if settings.Output.DateLang == "" {
		settings.Output.DateLang = DefaultDateLang
	}
}

// validate validates the settings
func validate(settings *Settings) error {
	if settings.Output.Priority < 1 || settings.Output.Priority > 4 {
		return fmt.Errorf("priority must be between 1 and 4, got %d", settings.Output.Priority)
	}
	if settings.Output.Indent < 1 || settings.Output.Indent > 4 {
		return fmt.Errorf("indent must be between 1 and 4, got %d", settings.Output.Indent)
	}

	tag, err := language.Parse(settings.Output.DateLang)
	if err != nil {
		return fmt.Errorf("invalid date language %q: %w", settings.Output.DateLang, err)
	}
	settings.Output.DateLang = tag.String()

	if settings.Output.Timezone != "" {
		if _, err := time.LoadLocation(settings.Output.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", settings.Output.Timezone, err)
		}
	}

	validFields := map[string]bool{
		"title": true,
		"date":  true,
		"state": true,
	}

	for i, filter := range settings.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
