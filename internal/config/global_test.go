package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes content to ~/.heroman/config.toml under homeDir
func writeConfig(t *testing.T, homeDir, content string) string {
	t.Helper()
	path := DefaultConfigPath(homeDir)
	writeConfigAt(t, path, content)
	return path
}

func writeConfigAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
}

func TestLoadFile_FileExists(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[database]
path = "/data/tasks.db"

[ui]
filter = "completed"
sort = "difficulty"
message_seconds = 5

[server]
host = "0.0.0.0"
port = 9999

[log]
file = "/tmp/heroman.log"
level = "debug"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := FileConfig{
		DBPath:         "/data/tasks.db",
		Filter:         "completed",
		Sort:           "difficulty",
		MessageSeconds: 5,
		ServerHost:     "0.0.0.0",
		ServerPort:     9999,
		LogFile:        "/tmp/heroman.log",
		LogLevel:       "debug",
	}
	if *cfg != want {
		t.Errorf("LoadFile() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFile_FileNotExists(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error when config doesn't exist, got: %v", err)
	}

	if *cfg != (FileConfig{}) {
		t.Errorf("expected empty config, got %+v", *cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `this is not valid toml {{{`},
		{"port zero", "[server]\nport = 0\n"},
		{"port too large", "[server]\nport = 70000\n"},
		{"message seconds zero", "[ui]\nmessage_seconds = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFile_PartialConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[server]
host = "partial-host.example.com"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerHost != "partial-host.example.com" {
		t.Errorf("expected host 'partial-host.example.com', got '%s'", cfg.ServerHost)
	}
	// Port should be zero (not set)
	if cfg.ServerPort != 0 {
		t.Errorf("expected zero port, got %d", cfg.ServerPort)
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != (FileConfig{}) {
		t.Errorf("expected empty config, got %+v", *cfg)
	}
}

func TestWriteDefault(t *testing.T) {
	homeDir := t.TempDir()
	path := DefaultConfigPath(homeDir)

	if err := WriteDefault(path, homeDir); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("written config should load, got: %v", err)
	}
	if cfg.ServerPort != DefaultServerPort {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, DefaultServerPort)
	}
	if cfg.Filter != "all" || cfg.Sort != "none" {
		t.Errorf("unexpected ui section: filter=%q sort=%q", cfg.Filter, cfg.Sort)
	}
	if cfg.MessageSeconds != 3 {
		t.Errorf("MessageSeconds = %d, want 3", cfg.MessageSeconds)
	}
	if cfg.DBPath != filepath.Join(homeDir, ConfigDir, "heroman.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		if err := WriteDefault(path, homeDir); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
