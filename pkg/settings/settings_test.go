package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	if got := s.GetOutputDir(); got != "generated_configs" {
		t.Errorf("GetOutputDir() default = %q, want %q", got, "generated_configs")
	}
	if got := s.GetListen(); got != ":5001" {
		t.Errorf("GetListen() default = %q, want %q", got, ":5001")
	}
	if s.FusionAS != 0 {
		t.Errorf("FusionAS should be zero, got %d", s.FusionAS)
	}
}

func TestSettings_Overrides(t *testing.T) {
	s := &Settings{OutputDir: "/tmp/out", Listen: "127.0.0.1:9000"}

	if s.GetOutputDir() != "/tmp/out" {
		t.Errorf("GetOutputDir() = %q", s.GetOutputDir())
	}
	if s.GetListen() != "127.0.0.1:9000" {
		t.Errorf("GetListen() = %q", s.GetListen())
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{OutputDir: "/out", Listen: ":9000", FusionAS: 65000}

	s.Clear()

	if s.OutputDir != "" || s.Listen != "" || s.FusionAS != 0 {
		t.Error("Clear() should reset all fields to empty")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	original := &Settings{
		OutputDir: "/var/fusiongen",
		Listen:    ":8443",
		FusionAS:  65010,
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if loaded.OutputDir != original.OutputDir {
		t.Errorf("OutputDir mismatch: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Listen != original.Listen {
		t.Errorf("Listen mismatch: got %q, want %q", loaded.Listen, original.Listen)
	}
	if loaded.FusionAS != original.FusionAS {
		t.Errorf("FusionAS mismatch: got %d, want %d", loaded.FusionAS, original.FusionAS)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom("/nonexistent/path/settings.json")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil {
		t.Fatal("LoadFrom() should return non-nil Settings")
	}
	if s.OutputDir != "" || s.Listen != "" {
		t.Error("LoadFrom() non-existent should return empty settings")
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestSettings_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "settings.json")

	s := &Settings{OutputDir: "/out"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("SaveTo() should have created the file")
	}
}

func TestDefaultSettingsPath(t *testing.T) {
	path := DefaultSettingsPath()
	if path == "" {
		t.Error("DefaultSettingsPath() should not be empty")
	}
	if !filepath.IsAbs(path) && path != "fusiongen_settings.json" {
		t.Errorf("DefaultSettingsPath() should be absolute or fallback, got %q", path)
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	os.Unsetenv("HOME")

	path := DefaultSettingsPath()
	if path != "fusiongen_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q, want %q", path, "fusiongen_settings.json")
	}
}
