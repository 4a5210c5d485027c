package completion

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

// DefaultInvocation asks fish to list completions for the whole prompt
const DefaultInvocation = "complete -C{{ shellquote .Prompt }}"

// fishBareWord matches words fish reads literally without quotes
var fishBareWord = regexp.MustCompile(`^[A-Za-z0-9_./,:=@+-]+$`)

// ShellQuote quotes s as a single fish word. Inside fish single quotes only
// \\ and \' are escapes; every other character, tabs and newlines included,
// is literal.
func ShellQuote(s string) string {
	if fishBareWord.MatchString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\\' || r == '\'' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// InvocationFuncs returns the functions available to invocation templates:
// sprig's text functions plus shellquote.
func InvocationFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["shellquote"] = ShellQuote
	return funcs
}

// ParseInvocation parses an invocation template. The template is rendered
// with a single field, .Prompt.
func ParseInvocation(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("invocation template is empty")
	}
	return template.New("invocation").
		Funcs(InvocationFuncs()).
		Option("missingkey=error").
		Parse(text)
}

// FishBackend lists completions with `fish -c 'complete -C<prompt>'`
type FishBackend struct {
	command    string
	path       string
	invocation *template.Template
	runner     Runner
}

// NewFishBackend resolves command in PATH and parses the invocation template.
// A missing executable is not an error: Available reports it.
func NewFishBackend(command, invocation string, runner Runner) (*FishBackend, error) {
	tmpl, err := ParseInvocation(invocation)
	if err != nil {
		return nil, err
	}
	if runner == nil {
		runner = ExecRunner{}
	}

	return &FishBackend{
		command:    command,
		path:       resolveExecutable(command),
		invocation: tmpl,
		runner:     runner,
	}, nil
}

// Name returns the executable's base name
func (f *FishBackend) Name() string {
	return filepath.Base(f.command)
}

// Path returns the resolved executable path, or "" when it was not found
func (f *FishBackend) Path() string {
	return f.path
}

// Available reports whether the fish executable was found
func (f *FishBackend) Available() bool {
	return f.path != ""
}

// Script renders the command passed to fish with -c
func (f *FishBackend) Script(prompt string) (string, error) {
	var b strings.Builder
	if err := f.invocation.Execute(&b, struct{ Prompt string }{Prompt: prompt}); err != nil {
		return "", fmt.Errorf("failed to render invocation: %w", err)
	}
	return b.String(), nil
}

// Complete runs fish and returns its raw output
func (f *FishBackend) Complete(ctx context.Context, dir, prompt string) (string, error) {
	if !f.Available() {
		return "", derrors.NewSpawnError(f.command, "executable not found", nil)
	}

	script, err := f.Script(prompt)
	if err != nil {
		return "", err
	}

	output, err := f.runner.Run(ctx, dir, f.path, "-c", script)
	if err != nil {
		return "", err
	}
	return string(output), nil
}
