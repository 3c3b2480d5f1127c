package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/heroman/heroman/internal/domain"
)

// envMap returns a Getenv backed by a map
func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestResolve_DefaultsUsed(t *testing.T) {
	homeDir := t.TempDir()

	cfg, err := ResolveWithHome(Options{HomeDir: homeDir, Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerHost != "localhost" {
		t.Errorf("expected default host 'localhost', got '%s'", cfg.ServerHost)
	}
	if cfg.ServerPort != 7433 {
		t.Errorf("expected default port 7433, got %d", cfg.ServerPort)
	}
	if cfg.DBPath != filepath.Join(homeDir, ".heroman", "heroman.db") {
		t.Errorf("unexpected default DBPath %q", cfg.DBPath)
	}
	if cfg.MessageDuration != 3*time.Second {
		t.Errorf("MessageDuration = %v, want 3s", cfg.MessageDuration)
	}
	if cfg.Filter != domain.FilterAll || cfg.Sort != domain.SortNone {
		t.Errorf("unexpected filter/sort: %v/%v", cfg.Filter, cfg.Sort)
	}
	if cfg.Addr() != "localhost:7433" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestResolve_FileOverridesDefaults(t *testing.T) {
	homeDir := t.TempDir()
	writeConfig(t, homeDir, `
[database]
path = "~/habits/db.sqlite"

[ui]
filter = "uncompleted"
sort = "completion"
message_seconds = 7

[server]
port = 5555

[log]
level = "warn"
`)

	cfg, err := ResolveWithHome(Options{HomeDir: homeDir, Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBPath != filepath.Join(homeDir, "habits", "db.sqlite") {
		t.Errorf("expected ~ to expand, got %q", cfg.DBPath)
	}
	if cfg.Filter != domain.FilterUncompleted {
		t.Errorf("Filter = %v", cfg.Filter)
	}
	if cfg.Sort != domain.SortCompletion {
		t.Errorf("Sort = %v", cfg.Sort)
	}
	if cfg.MessageDuration != 7*time.Second {
		t.Errorf("MessageDuration = %v", cfg.MessageDuration)
	}
	// Host falls back to the default
	if cfg.ServerHost != "localhost" || cfg.ServerPort != 5555 {
		t.Errorf("unexpected server: %s:%d", cfg.ServerHost, cfg.ServerPort)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestResolve_Precedence(t *testing.T) {
	homeDir := t.TempDir()
	writeConfig(t, homeDir, `
[database]
path = "/from/file.db"

[server]
host = "file-host"
port = 1111
`)

	tests := []struct {
		name     string
		env      map[string]string
		opts     Options
		wantDB   string
		wantAddr string
	}{
		{
			name:     "file only",
			wantDB:   "/from/file.db",
			wantAddr: "file-host:1111",
		},
		{
			name:     "env overrides file",
			env:      map[string]string{EnvDB: "/from/env.db", EnvBind: "env-host:2222"},
			wantDB:   "/from/env.db",
			wantAddr: "env-host:2222",
		},
		{
			name:     "flags override env",
			env:      map[string]string{EnvDB: "/from/env.db", EnvBind: "env-host:2222"},
			opts:     Options{DBPath: "/from/flag.db", Bind: "flag-host:3333"},
			wantDB:   "/from/flag.db",
			wantAddr: "flag-host:3333",
		},
		{
			name:     "memory database passes through",
			opts:     Options{DBPath: ":memory:"},
			wantDB:   ":memory:",
			wantAddr: "file-host:1111",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.HomeDir = homeDir
			opts.Getenv = envMap(tt.env)

			cfg, err := ResolveWithHome(opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DBPath != tt.wantDB {
				t.Errorf("DBPath = %q, want %q", cfg.DBPath, tt.wantDB)
			}
			if cfg.Addr() != tt.wantAddr {
				t.Errorf("Addr() = %q, want %q", cfg.Addr(), tt.wantAddr)
			}
		})
	}
}

func TestResolve_ExplicitConfigPath(t *testing.T) {
	homeDir := t.TempDir()
	writeConfig(t, homeDir, "[server]\nport = 1111\n")

	other := filepath.Join(t.TempDir(), "other.toml")
	writeConfigAt(t, other, "[server]\nport = 4444\n")

	cfg, err := ResolveWithHome(Options{HomeDir: homeDir, ConfigPath: other, Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != 4444 {
		t.Errorf("expected explicit config to win, got port %d", cfg.ServerPort)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		opts    Options
	}{
		{name: "invalid toml", content: `invalid {{{ toml`},
		{name: "bad filter", content: "[ui]\nfilter = \"sideways\"\n"},
		{name: "bad sort", content: "[ui]\nsort = \"random\"\n"},
		{name: "bad log level", content: "[log]\nlevel = \"loud\"\n"},
		{name: "bad env bind", env: map[string]string{EnvBind: "nohostport"}},
		{name: "bad flag port", opts: Options{Bind: "localhost:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			homeDir := t.TempDir()
			if tt.content != "" {
				writeConfig(t, homeDir, tt.content)
			}
			opts := tt.opts
			opts.HomeDir = homeDir
			opts.Getenv = envMap(tt.env)

			if _, err := ResolveWithHome(opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseBind(t *testing.T) {
	tests := []struct {
		bind     string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"localhost:8080", "localhost", 8080, false},
		{":9000", "localhost", 9000, false},
		{"[::1]:7433", "::1", 7433, false},
		{"localhost", "", 0, true},
		{"localhost:http", "", 0, true},
		{"localhost:65536", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.bind, func(t *testing.T) {
			host, port, err := ParseBind(tt.bind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBind(%q) error = %v, wantErr %v", tt.bind, err, tt.wantErr)
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("ParseBind(%q) = %q, %d, want %q, %d", tt.bind, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}
