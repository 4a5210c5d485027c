package completion

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

// bashCompletionPaths returns the usual locations of bash-completion's
// main script
func bashCompletionPaths() []string {
	return []string{
		"/usr/share/bash-completion/bash_completion",
		"/usr/local/share/bash-completion/bash_completion",
		"/etc/bash_completion",
		// Homebrew on macOS
		"/opt/homebrew/etc/profile.d/bash_completion.sh",
		"/usr/local/etc/profile.d/bash_completion.sh",
	}
}

// findBashCompletionScript returns override if it exists, otherwise the
// first existing standard location
func findBashCompletionScript(override string) string {
	candidates := bashCompletionPaths()
	if override != "" {
		candidates = []string{override}
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// BashBackend drives bash-completion the way an interactive bash would:
// it loads the command's completion spec, calls its -F function with the
// COMP_* variables set and prints COMPREPLY.
type BashBackend struct {
	command string
	path    string
	script  string
	runner  Runner
}

// NewBashBackend resolves the bash executable and the bash-completion
// script once. scriptPath overrides the search of the standard locations.
func NewBashBackend(command, scriptPath string, runner Runner) *BashBackend {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &BashBackend{
		command: command,
		path:    resolveExecutable(command),
		script:  findBashCompletionScript(scriptPath),
		runner:  runner,
	}
}

// Name identifies the backend in logs
func (b *BashBackend) Name() string {
	return "bash-completion"
}

// IsAvailable reports whether both bash and bash-completion were found
func (b *BashBackend) IsAvailable() bool {
	return b.path != "" && b.script != ""
}

// Path returns the resolved bash executable, or ""
func (b *BashBackend) Path() string {
	return b.path
}

// ScriptPath returns the bash-completion script in use, or ""
func (b *BashBackend) ScriptPath() string {
	return b.script
}

// Complete returns COMPREPLY for line with the cursor at point, one
// candidate per element, escaped with printf %q
func (b *BashBackend) Complete(ctx context.Context, dir, line string, point int) ([]string, error) {
	if !b.IsAvailable() {
		return nil, derrors.NewSpawnError(b.command, "bash-completion not available", nil)
	}

	if point < 0 || point > len(line) {
		point = len(line)
	}

	program, err := b.program(line[:point])
	if err != nil {
		return nil, err
	}

	output, err := b.runner.Run(ctx, dir, b.path, "-c", program)
	if err != nil {
		return nil, err
	}

	return Classify(string(output)), nil
}

// program builds the bash script completing line
func (b *BashBackend) program(line string) (string, error) {
	words := tokenize(line)
	if len(words) == 0 {
		words = []string{""}
	}
	cword := len(words) - 1

	quotedWords := make([]string, len(words))
	for i, word := range words {
		q, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote word %q: %w", word, err)
		}
		quotedWords[i] = q
	}

	quotedLine, err := syntax.Quote(line, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote line: %w", err)
	}
	quotedScript, err := syntax.Quote(b.script, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote script path: %w", err)
	}

	return fmt.Sprintf(bashDriverTemplate,
		quotedScript,
		strings.Join(quotedWords, " "),
		cword,
		quotedLine,
	), nil
}
