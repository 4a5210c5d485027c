package cli

import (
	"io"
	"os"
	"time"

	"github.com/LemonBreezes/emacs-fish-completion/internal/completion"
	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
	"github.com/LemonBreezes/emacs-fish-completion/internal/logger"
)

// Overrides are command-line values taking precedence over the config file.
// Nil or empty fields leave the file value untouched.
type Overrides struct {
	FallbackEnabled      *bool
	PreferFallback       *bool
	Command              string
	FallbackCommand      string
	BashCompletionScript string
	Timeout              *time.Duration
	LogLevel             string
}

// apply copies the set overrides into cfg
func (o Overrides) apply(cfg *config.Config) {
	if o.FallbackEnabled != nil {
		cfg.FallbackEnabled = *o.FallbackEnabled
	}
	if o.PreferFallback != nil {
		cfg.PreferFallback = *o.PreferFallback
	}
	if o.Command != "" {
		cfg.Command = o.Command
	}
	if o.FallbackCommand != "" {
		cfg.FallbackCommand = o.FallbackCommand
	}
	if o.BashCompletionScript != "" {
		cfg.BashCompletionScript = o.BashCompletionScript
	}
	if o.Timeout != nil {
		cfg.Timeout = *o.Timeout
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

// loadConfig loads configPath, or the user config file when it is empty,
// and applies overrides. It returns the path actually loaded.
func loadConfig(configPath string, overrides Overrides) (*config.Config, string, error) {
	var (
		cfg *config.Config
		err error
	)

	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, configPath, err = config.LoadUser()
	}
	if err != nil {
		return nil, configPath, err
	}

	overrides.apply(cfg)
	return cfg, configPath, nil
}

// newLogger creates the stderr logger for cfg
func newLogger(cfg *config.Config, output io.Writer) *logger.Logger {
	if output == nil {
		output = os.Stderr
	}
	return logger.New(cfg.LogLevel, output)
}

// buildPipeline wires the completion components described by cfg
func buildPipeline(cfg *config.Config, log *logger.Logger) (*completion.Pipeline, error) {
	parents := make([]completion.ParentCommand, 0, len(cfg.ParentCommands))
	for _, p := range cfg.ParentCommands {
		parents = append(parents, completion.ParentCommand{Name: p.Name, ValueFlags: p.ValueFlags})
	}

	normalizer, err := completion.NewNormalizer(cfg.SentinelPattern, parents)
	if err != nil {
		return nil, err
	}

	runner := completion.ExecRunner{Timeout: cfg.Timeout}

	primary, err := completion.NewFishBackend(cfg.Command, cfg.Invocation, runner)
	if err != nil {
		return nil, err
	}

	opts := completion.Options{
		Normalizer: normalizer,
		Primary:    primary,
		Fallback: completion.FallbackPolicy{
			Enabled: cfg.FallbackEnabled,
			Prefer:  cfg.PreferFallback,
		},
		Logger: log,
	}

	// bash is only resolved when a policy can use it
	if cfg.FallbackEnabled || cfg.PreferFallback {
		opts.Secondary = completion.NewBashBackend(cfg.FallbackCommand, cfg.BashCompletionScript, runner)
	}

	log.Debug().
		Str("primary", primary.Path()).
		Bool("fallback_enabled", cfg.FallbackEnabled).
		Bool("prefer_fallback", cfg.PreferFallback).
		Dur("timeout", cfg.Timeout).
		Msg("Pipeline ready")

	return completion.NewPipeline(opts), nil
}
