// Package settings manages persistent user settings for the fusiongen CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// OutputDir overrides the default generated-config directory
	OutputDir string `json:"output_dir,omitempty"`

	// Listen is the default address for fusiongen serve
	Listen string `json:"listen,omitempty"`

	// FusionAS is the default AS number for generated fusion routers
	FusionAS int `json:"fusion_as,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fusiongen_settings.json"
	}
	return filepath.Join(home, ".fusiongen", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetOutputDir returns the output directory (with fallback)
func (s *Settings) GetOutputDir() string {
	if s.OutputDir != "" {
		return s.OutputDir
	}
	return "generated_configs"
}

// GetListen returns the serve address (with fallback)
func (s *Settings) GetListen() string {
	if s.Listen != "" {
		return s.Listen
	}
	return ":5001"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
