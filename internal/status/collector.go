// Package status provides status information collection and display for fishcomp.
package status

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LemonBreezes/emacs-fish-completion/internal/completion"
	"github.com/LemonBreezes/emacs-fish-completion/internal/config"
	"github.com/LemonBreezes/emacs-fish-completion/pkg/version"
)

// versionProbeTimeout bounds `<shell> --version`
const versionProbeTimeout = 2 * time.Second

// CollectAll gathers status information for cfg, loaded from configPath
func CollectAll(ctx context.Context, cfg *config.Config, configPath string, runner completion.Runner) (*Data, error) {
	if runner == nil {
		runner = completion.ExecRunner{Timeout: versionProbeTimeout}
	}

	data := &Data{
		Version:          version.Version,
		ConfigPath:       configPath,
		ValidationErrors: make([]config.ValidationError, 0),
		FallbackEnabled:  cfg.FallbackEnabled,
		PreferFallback:   cfg.PreferFallback,
		SentinelPattern:  cfg.SentinelPattern,
		Invocation:       cfg.Invocation,
		Timeout:          cfg.Timeout,
		LogLevel:         cfg.LogLevel,
		ParentCommands:   cfg.ParentCommands,
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	data.CurrentDir = currentDir

	if dir, err := config.GetConfigDir(); err == nil {
		data.ConfigDir = dir
	}

	collectValidation(data, cfg, configPath)
	collectBackends(ctx, data, cfg, runner)

	return data, nil
}

func collectValidation(data *Data, cfg *config.Config, configPath string) {
	if configPath != "" {
		if content, err := os.ReadFile(configPath); err == nil {
			if result, err := config.ValidateWithSchema(configPath, content); err == nil && !result.Valid {
				data.ValidationErrors = append(data.ValidationErrors, result.Errors...)
			}
		}
	}

	if result := config.Validate(cfg); !result.Valid {
		data.ValidationErrors = append(data.ValidationErrors, result.Errors...)
	}
}

func collectBackends(ctx context.Context, data *Data, cfg *config.Config, runner completion.Runner) {
	data.Primary = BackendInfo{Name: "fish", Command: cfg.Command}
	if fish, err := completion.NewFishBackend(cfg.Command, cfg.Invocation, runner); err == nil {
		data.Primary.Name = fish.Name()
		data.Primary.Path = fish.Path()
		data.Primary.Available = fish.Available()
	}
	if data.Primary.Available {
		data.Primary.Version = probeVersion(ctx, runner, data.Primary.Path)
	}

	bash := completion.NewBashBackend(cfg.FallbackCommand, cfg.BashCompletionScript, runner)
	data.Secondary = BackendInfo{
		Name:      bash.Name(),
		Command:   cfg.FallbackCommand,
		Path:      bash.Path(),
		Available: bash.IsAvailable(),
		Script:    bash.ScriptPath(),
	}
	if data.Secondary.Path != "" {
		data.Secondary.Version = probeVersion(ctx, runner, data.Secondary.Path)
	}
}

// probeVersion returns the first line printed by `path --version`
func probeVersion(ctx context.Context, runner completion.Runner, path string) string {
	output, err := runner.Run(ctx, "", path, "--version")
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
