package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// TestUpdateFromFlags verifies flags override loaded values only when set.
func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "json", LogLevel: "info"}

	cfg.UpdateFromFlags(true, false, true, "", "")
	if !cfg.Verbose || !cfg.NoColor {
		t.Error("boolean flags were not applied")
	}
	if cfg.Format != "json" || cfg.LogLevel != "info" {
		t.Errorf("empty flags overrode values: format=%q level=%q", cfg.Format, cfg.LogLevel)
	}

	cfg.UpdateFromFlags(false, true, false, "yaml", "debug")
	if cfg.Format != "yaml" || cfg.LogLevel != "debug" || !cfg.Quiet {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

// TestLoadConfig_LogEnv verifies LOG_* variables feed the logging settings.
func TestLoadConfig_LogEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.LogOutput != "stderr" {
		t.Errorf("LogOutput = %q, want stderr", cfg.LogOutput)
	}
}

// TestLoadSettings_ConfigFile reads marketplace settings from a yaml file.
func TestLoadSettings_ConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "stocksync.yaml")
	content := `ozon:
  client_id: "42"
  api_key: secret
  price_batch_size: 900
feed:
  header_row: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	cfg.ConfigFile = path

	settings, err := cfg.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if !settings.Ozon.Configured() {
		t.Error("Ozon credentials were not read from the config file")
	}
	if settings.Ozon.PriceBatchSize != 900 {
		t.Errorf("PriceBatchSize = %d, want 900", settings.Ozon.PriceBatchSize)
	}
	if settings.Feed.HeaderRow != 5 {
		t.Errorf("HeaderRow = %d, want 5", settings.Feed.HeaderRow)
	}
}

// TestLoadSettings_MissingConfigFile reports an explicit file that cannot be read.
func TestLoadSettings_MissingConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	cfg.ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := cfg.LoadSettings(); err == nil {
		t.Error("LoadSettings() with a missing file succeeded, want error")
	}
}
