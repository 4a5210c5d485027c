// Package main is the entry point for the fishcomp CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	fccli "github.com/LemonBreezes/emacs-fish-completion/internal/cli"
	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
	"github.com/LemonBreezes/emacs-fish-completion/internal/trace"
	"github.com/LemonBreezes/emacs-fish-completion/pkg/version"
)

func main() {
	// The editor kills us when the user keeps typing; take fish down too.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	stopTrace := trace.Init()
	defer stopTrace()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		stopTrace()
		stop()
		os.Exit(1)
	}
}

// errorMessage formats err for the terminal, tagged with its code when it
// has one
func errorMessage(err error) string {
	if code := derrors.CodeOf(err); code != "" {
		return fmt.Sprintf("Error [%s]: %v", code, err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// overridesFrom collects the backend flags that were set explicitly
func overridesFrom(cmd *cli.Command) fccli.Overrides {
	o := fccli.Overrides{
		Command:              cmd.String("command"),
		FallbackCommand:      cmd.String("fallback-command"),
		BashCompletionScript: cmd.String("bash-completion-script"),
		LogLevel:             cmd.String("log-level"),
	}
	if cmd.IsSet("fallback") {
		o.FallbackEnabled = lo.ToPtr(cmd.Bool("fallback"))
	}
	if cmd.IsSet("prefer-fallback") {
		o.PreferFallback = lo.ToPtr(cmd.Bool("prefer-fallback"))
	}
	if cmd.IsSet("timeout") {
		o.Timeout = lo.ToPtr(cmd.Duration("timeout"))
	}
	return o
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "fishcomp",
		Usage:                 "Shell completions from fish (and bash-completion) for editors",
		Version:               version.String(),
		EnableShellCompletion: true,
		Reader:                stdin,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides log_level",
				Sources: cli.EnvVars("FISHCOMP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: $XDG_CONFIG_HOME/fishcomp/config.yml)",
				Sources: cli.EnvVars("FISHCOMP_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "command",
				Usage:   "Primary shell executable",
				Sources: cli.EnvVars("FISHCOMP_COMMAND"),
			},
			&cli.BoolFlag{
				Name:    "fallback",
				Usage:   "Ask bash-completion when fish returns nothing or only file names",
				Sources: cli.EnvVars("FISHCOMP_FALLBACK"),
			},
			&cli.BoolFlag{
				Name:    "prefer-fallback",
				Usage:   "Ask bash-completion first",
				Sources: cli.EnvVars("FISHCOMP_PREFER_FALLBACK"),
			},
			&cli.StringFlag{
				Name:    "fallback-command",
				Usage:   "bash executable used to drive bash-completion",
				Sources: cli.EnvVars("FISHCOMP_FALLBACK_COMMAND"),
			},
			&cli.StringFlag{
				Name:    "bash-completion-script",
				Usage:   "Path to bash-completion's main script",
				Sources: cli.EnvVars("FISHCOMP_BASH_COMPLETION_SCRIPT"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Maximum time a shell may run (0 for no limit)",
				Sources: cli.EnvVars("FISHCOMP_TIMEOUT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completions for an input line (read from stdin when no argument is given)",
				ArgsUsage: "[line]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "remote",
						Usage: "The buffer is remote: skip local shells and answer 'files'",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Working directory of the buffer",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   fccli.FormatText,
						Usage:   "Output format: text or json",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() > 1 {
						return fmt.Errorf("expected a single line argument, got %d (quote the line)", cmd.Args().Len())
					}

					root := cmd.Root()
					return fccli.Complete(ctx, fccli.CompleteParams{
						ConfigPath: cmd.String("config"),
						Overrides:  overridesFrom(cmd),
						Line:       cmd.Args().First(),
						HasLine:    cmd.Args().Len() == 1,
						Dir:        cmd.String("dir"),
						Remote:     cmd.Bool("remote"),
						Format:     cmd.String("format"),
						Stdin:      root.Reader,
						Stdout:     root.Writer,
						Stderr:     root.ErrWriter,
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the effective configuration and which shells were found",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return fccli.Status(ctx, fccli.StatusParams{
						ConfigPath: cmd.String("config"),
						Overrides:  overridesFrom(cmd),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Write the default configuration to the user config directory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fccli.Init(cmd.Bool("force"))
					return err
				},
			},
			{
				Name:  "edit",
				Usage: "Edit or create the user configuration file",
				Action: func(_ context.Context, _ *cli.Command) error {
					return fccli.Edit()
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a fishcomp configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return fccli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for fishcomp configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return fccli.Schema(outputPath)
				},
			},
		},
	}
}
