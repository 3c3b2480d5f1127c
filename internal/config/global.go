package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigDir is the name of the heroman directory in home
	ConfigDir = ".heroman"

	// ConfigFileName is the name of the config file inside ConfigDir
	ConfigFileName = "config.toml"
)

// FileConfig holds the values set in a config file. Zero values mean unset.
type FileConfig struct {
	DBPath         string
	Filter         string
	Sort           string
	MessageSeconds int
	ServerHost     string
	ServerPort     int
	LogFile        string
	LogLevel       string
}

// configFile is the raw TOML layout of config.toml
type configFile struct {
	Database databaseConfig `toml:"database"`
	UI       uiConfig       `toml:"ui"`
	Server   serverConfig   `toml:"server"`
	Log      logConfig      `toml:"log"`
}

type databaseConfig struct {
	Path string `toml:"path"`
}

type uiConfig struct {
	Filter         string `toml:"filter"`
	Sort           string `toml:"sort"`
	MessageSeconds *int   `toml:"message_seconds"`
}

type serverConfig struct {
	Host string `toml:"host"`
	Port *int   `toml:"port"`
}

type logConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DefaultConfigPath returns ~/.heroman/config.toml under homeDir.
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigDir, ConfigFileName)
}

// LoadFile loads the config file at path.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw configFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if raw.Server.Port != nil {
		if err := validatePort(*raw.Server.Port); err != nil {
			return nil, err
		}
	}
	if raw.UI.MessageSeconds != nil && *raw.UI.MessageSeconds < 1 {
		return nil, fmt.Errorf("invalid message_seconds %d: must be at least 1", *raw.UI.MessageSeconds)
	}

	cfg := &FileConfig{
		DBPath:     raw.Database.Path,
		Filter:     raw.UI.Filter,
		Sort:       raw.UI.Sort,
		ServerHost: raw.Server.Host,
		LogFile:    raw.Log.File,
		LogLevel:   raw.Log.Level,
	}
	if raw.UI.MessageSeconds != nil {
		cfg.MessageSeconds = *raw.UI.MessageSeconds
	}
	if raw.Server.Port != nil {
		cfg.ServerPort = *raw.Server.Port
	}

	return cfg, nil
}

// WriteDefault writes a config file holding the built-in defaults for
// homeDir to path. An existing file is never overwritten.
func WriteDefault(path, homeDir string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	d := Defaults(homeDir)
	seconds := int(d.MessageDuration.Seconds())
	port := d.ServerPort
	raw := configFile{
		Database: databaseConfig{Path: d.DBPath},
		UI: uiConfig{
			Filter:         d.Filter.String(),
			Sort:           d.Sort.String(),
			MessageSeconds: &seconds,
		},
		Server: serverConfig{Host: d.ServerHost, Port: &port},
		Log:    logConfig{File: d.LogFile, Level: d.LogLevel},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
