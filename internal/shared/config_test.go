package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Path != "./artanova.db" {
			t.Errorf("expected storage path ./artanova.db, got %s", config.Storage.Path)
		}

		if config.API.BaseURL != "https://api.artanova.dev" {
			t.Errorf("expected api base URL https://api.artanova.dev, got %s", config.API.BaseURL)
		}

		if config.API.WebURL != "https://artanova.dev" {
			t.Errorf("expected web URL https://artanova.dev, got %s", config.API.WebURL)
		}

		if !config.Cache.Artworks {
			t.Error("expected artwork caching enabled by default")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Storage.Path != defaultConfig.Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:4000"
web_url = "http://localhost:5173"

[storage]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[cache]
artworks = false

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Path != "/custom/path.db" {
			t.Errorf("expected storage path /custom/path.db, got %s", config.Storage.Path)
		}

		if config.API.BaseURL != "http://localhost:4000" {
			t.Errorf("expected api base URL http://localhost:4000, got %s", config.API.BaseURL)
		}

		if config.Cache.Artworks {
			t.Error("expected artwork caching disabled")
		}

		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
