package status

import (
	"time"

	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	ConfigDir        string
	ConfigPath       string // "" when only the built-in defaults are in use
	ValidationErrors []config.ValidationError

	// Backends
	Primary   BackendInfo
	Secondary BackendInfo

	// Effective settings
	FallbackEnabled bool
	PreferFallback  bool
	SentinelPattern string
	Invocation      string
	Timeout         time.Duration
	LogLevel        string
	ParentCommands  []config.ParentCommand
}

// BackendInfo describes one completion backend
type BackendInfo struct {
	Name      string
	Command   string
	Path      string // Resolved executable, "" when not found
	Version   string // First line of `<command> --version`
	Available bool

	// Secondary only
	Script string
}
