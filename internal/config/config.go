// Package config handles loading and parsing of fishcomp configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// AppName is the directory name used under the XDG config home
const AppName = "fishcomp"

// ParentCommand is a wrapper command whose argument is itself a command
type ParentCommand struct {
	Name       string   `koanf:"name" yaml:"name"`
	ValueFlags []string `koanf:"value_flags" yaml:"value_flags,omitempty"`
}

// Config represents a fishcomp configuration.
// It is read once per completion request and never mutated afterwards.
type Config struct {
	FallbackEnabled      bool            `koanf:"fallback_enabled"`
	PreferFallback       bool            `koanf:"prefer_fallback"`
	Command              string          `koanf:"command"`
	FallbackCommand      string          `koanf:"fallback_command"`
	BashCompletionScript string          `koanf:"bash_completion_script"`
	SentinelPattern      string          `koanf:"sentinel_pattern"`
	Invocation           string          `koanf:"invocation"`
	Timeout              time.Duration   `koanf:"timeout"`
	LogLevel             string          `koanf:"log_level"`
	ParentCommands       []ParentCommand `koanf:"parent_commands"`
}

// DefaultsYAML returns the built-in configuration, comments included
func DefaultsYAML() []byte {
	return append([]byte(nil), defaultsYAML...)
}

// Defaults returns the built-in configuration
func Defaults() (*Config, error) {
	return Load("")
}

// Load reads the built-in defaults and overlays the file at path.
// An empty path loads only the defaults. Lists such as parent_commands
// replace the default list rather than extending it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, derrors.NewConfigurationError("defaults.yml", "failed to load built-in defaults", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, derrors.NewConfigurationError(path, "unsupported config format", err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, derrors.NewConfigurationError(path, "failed to load config", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

// GetConfigDir returns the directory holding the user config file
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, AppName), nil
}

// FindConfigFile returns the first supported config file in dir, or ""
func FindConfigFile(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadUser loads the user's config file, falling back to the defaults when
// none exists. It returns the path that was loaded ("" for defaults only).
func LoadUser() (*Config, string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		cfg, loadErr := Defaults()
		return cfg, "", loadErr
	}

	path := FindConfigFile(dir)
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// ParentCommandNames returns the configured wrapper names in order
func (c *Config) ParentCommandNames() []string {
	names := make([]string, 0, len(c.ParentCommands))
	for _, p := range c.ParentCommands {
		names = append(names, p.Name)
	}
	return names
}
