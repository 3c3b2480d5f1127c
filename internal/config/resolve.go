package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/domain"
)

const (
	// DefaultServerHost is the default API host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default API port
	DefaultServerPort = 7433

	// DefaultMessageDuration is how long a flash message stays on screen
	DefaultMessageDuration = 3 * time.Second

	// DefaultLogLevel is the default zerolog level name
	DefaultLogLevel = "info"

	// EnvDB overrides the database path
	EnvDB = "HEROMAN_DB"

	// EnvBind overrides the API bind address (host:port)
	EnvBind = "HEROMAN_BIND"
)

// Config is the final merged configuration with all precedence rules
// applied. Precedence order (highest to lowest):
// 1. Command-line flags
// 2. Environment (HEROMAN_DB, HEROMAN_BIND)
// 3. Config file (~/.heroman/config.toml)
// 4. Built-in defaults
type Config struct {
	DBPath          string
	Filter          domain.Filter
	Sort            domain.Sort
	MessageDuration time.Duration
	ServerHost      string
	ServerPort      int
	LogFile         string
	LogLevel        string
}

// Addr returns the API listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// Options carries the inputs that override the config file.
type Options struct {
	// HomeDir locates the default config and data files.
	HomeDir string
	// ConfigPath points at an explicit config file. Empty means the default.
	ConfigPath string
	// DBPath and Bind come from command-line flags. Empty means unset.
	DBPath string
	Bind   string
	// Getenv reads the environment. Nil means os.Getenv.
	Getenv func(string) string
}

// Defaults returns the built-in configuration for homeDir.
func Defaults(homeDir string) *Config {
	dir := filepath.Join(homeDir, ConfigDir)
	return &Config{
		DBPath:          filepath.Join(dir, "heroman.db"),
		Filter:          domain.FilterAll,
		Sort:            domain.SortNone,
		MessageDuration: DefaultMessageDuration,
		ServerHost:      DefaultServerHost,
		ServerPort:      DefaultServerPort,
		LogFile:         filepath.Join(dir, "heroman.log"),
		LogLevel:        DefaultLogLevel,
	}
}

// Resolve loads the user's config using their home directory.
func Resolve(opts Options) (*Config, error) {
	if opts.HomeDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		opts.HomeDir = homeDir
	}
	return ResolveWithHome(opts)
}

// ResolveWithHome merges defaults, the config file, the environment and
// flags. opts.HomeDir must be set. This is useful for testing.
func ResolveWithHome(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath(opts.HomeDir)
	}
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults(opts.HomeDir)

	// Apply config file (overrides defaults)
	if file.DBPath != "" {
		cfg.DBPath = expandHome(file.DBPath, opts.HomeDir)
	}
	if file.Filter != "" {
		f, err := domain.ParseFilter(file.Filter)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.Filter = f
	}
	if file.Sort != "" {
		s, err := domain.ParseSort(file.Sort)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.Sort = s
	}
	if file.MessageSeconds != 0 {
		cfg.MessageDuration = time.Duration(file.MessageSeconds) * time.Second
	}
	if file.ServerHost != "" {
		cfg.ServerHost = file.ServerHost
	}
	if file.ServerPort != 0 {
		cfg.ServerPort = file.ServerPort
	}
	if file.LogFile != "" {
		cfg.LogFile = expandHome(file.LogFile, opts.HomeDir)
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	// Apply environment, then flags
	for _, dbPath := range []string{getenv(EnvDB), opts.DBPath} {
		if dbPath != "" {
			cfg.DBPath = expandHome(dbPath, opts.HomeDir)
		}
	}
	for _, bind := range []string{getenv(EnvBind), opts.Bind} {
		if bind == "" {
			continue
		}
		host, port, err := ParseBind(bind)
		if err != nil {
			return nil, err
		}
		cfg.ServerHost = host
		cfg.ServerPort = port
	}

	return cfg, nil
}

// ParseBind splits a host:port bind address and validates the port.
// An empty host keeps the default host.
func ParseBind(bind string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(bind)
	if err != nil {
		return "", 0, fmt.Errorf("invalid bind address %q: %w", bind, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid bind address %q: port is not a number", bind)
	}
	if err := validatePort(port); err != nil {
		return "", 0, err
	}
	if host == "" {
		host = DefaultServerHost
	}
	return host, port, nil
}

// validatePort checks if the port is in the valid range (1-65535)
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return path
}
