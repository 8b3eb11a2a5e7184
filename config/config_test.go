package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yllada/xfce-gala-settings/common"
)

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadFrom() = %+v, want defaults", cfg)
	}
	if !common.FileExists(path) {
		t.Error("LoadFrom() should write the default file")
	}
}

func TestLoadFrom_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("backend: gsettings\nshow_notifications: false\nreconcile_on_exit: false\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Backend != common.BackendGSettings {
		t.Errorf("Backend = %v, want %v", cfg.Backend, common.BackendGSettings)
	}
	if cfg.ShowNotifications || cfg.ReconcileOnExit {
		t.Errorf("explicit false values were not honoured: %+v", cfg)
	}
	// Omitted keys keep their defaults.
	if !cfg.RecordHistory {
		t.Error("RecordHistory should default to true")
	}
	if cfg.TemplatePath != common.DefaultTemplatePath {
		t.Errorf("TemplatePath = %v, want %v", cfg.TemplatePath, common.DefaultTemplatePath)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		backend string
	}{
		{"unknown field", "colour: blue\n", true, ""},
		{"malformed", "backend: [\n", true, ""},
		{"unknown backend", "backend: kconfig\n", false, common.BackendDconf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				if !errors.Is(err, common.ErrConfigLoad) {
					t.Errorf("LoadFrom() error = %v, want ErrConfigLoad", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			if cfg.Backend != tt.backend {
				t.Errorf("Backend = %v, want %v", cfg.Backend, tt.backend)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.TemplatePath = "/opt/template.xml"
	cfg.RecordHistory = false

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("LoadFrom() = %+v, want %+v", got, cfg)
	}
}

func TestLoadOrDefaultFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("backend: [\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefaultFrom(path)
	if !errors.Is(err, common.ErrConfigLoad) {
		t.Fatalf("LoadOrDefaultFrom() error = %v, want ErrConfigLoad", err)
	}
	if cfg == nil || !cfg.ReadOnly() {
		t.Fatalf("LoadOrDefaultFrom() = %+v, want read-only defaults", cfg)
	}
	if cfg.Backend != common.BackendDconf {
		t.Errorf("Backend = %v, want %v", cfg.Backend, common.BackendDconf)
	}

	cfg.RecordHistory = false
	if err := cfg.SaveTo(path); !errors.Is(err, common.ErrConfigSave) {
		t.Errorf("SaveTo() error = %v, want ErrConfigSave", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(data) {
		t.Errorf("config file = %q, want it left as %q", got, data)
	}
}

func TestLoadOrDefaultFrom_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadOrDefaultFrom(path)
	if err != nil {
		t.Fatalf("LoadOrDefaultFrom() error = %v", err)
	}
	if cfg.ReadOnly() {
		t.Error("a readable config should be writable")
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Errorf("SaveTo() error = %v", err)
	}
}
