package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LemonBreezes/emacs-fish-completion/internal/completion"
	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
	"github.com/LemonBreezes/emacs-fish-completion/internal/trace"
)

// Output formats of the complete command
const (
	FormatText = "text"
	FormatJSON = "json"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	Overrides  Overrides

	// Line is the input line up to the cursor. When HasLine is false it is
	// read from Stdin instead.
	Line    string
	HasLine bool
	Dir     string
	Remote  bool
	Format  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// cliHost is the editor as seen from one fishcomp invocation
type cliHost struct {
	line   string
	dir    string
	remote bool
}

func (h cliHost) CurrentInputLine() string { return h.line }
func (h cliHost) IsRemote() bool           { return h.remote }
func (h cliHost) WorkingDir() string       { return h.dir }

// completeResponse is the JSON form of an outcome
type completeResponse struct {
	Kind       string   `json:"kind"`
	Candidates []string `json:"candidates"`
}

// Complete answers one completion request. The editor's previous mechanism
// is its own file name completion, so delegation prints a files outcome.
func Complete(ctx context.Context, params CompleteParams) error {
	if params.Stdin == nil {
		params.Stdin = os.Stdin
	}
	if params.Stdout == nil {
		params.Stdout = os.Stdout
	}
	if params.Format == "" {
		params.Format = FormatText
	}
	if params.Format != FormatText && params.Format != FormatJSON {
		return derrors.NewValidationError("format", fmt.Sprintf("unknown output format %q (want text or json)", params.Format), nil)
	}

	line := params.Line
	if !params.HasLine {
		var err error
		if line, err = readLine(params.Stdin); err != nil {
			return err
		}
	}

	cfg, _, err := loadConfig(params.ConfigPath, params.Overrides)
	if err != nil {
		return err
	}
	log := newLogger(cfg, params.Stderr)

	pipeline, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	host := cliHost{line: line, dir: params.Dir, remote: params.Remote}
	prior := func(context.Context) completion.Outcome {
		return completion.UseFileCompletion()
	}

	session := completion.Activate(pipeline, host, prior, log)
	log.Debug().
		Bool("remote", params.Remote).
		Bool("delegating", session.Delegating()).
		Bool("tracing", trace.IsEnabled()).
		Strs("parent_commands", cfg.ParentCommandNames()).
		Msg("Session activated")

	outcome := session.Complete(ctx)
	session.Deactivate()

	return writeOutcome(params.Stdout, params.Format, outcome)
}

// readLine reads the request line from r. Only the final line terminator is
// removed; trailing spaces are significant.
func readLine(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, completion.MaxOutputSize))
	if err != nil {
		return "", fmt.Errorf("failed to read input line: %w", err)
	}
	line := strings.TrimSuffix(string(data), "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func writeOutcome(w io.Writer, format string, outcome completion.Outcome) error {
	if format == FormatJSON {
		candidates := outcome.Candidates
		if candidates == nil {
			candidates = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(completeResponse{Kind: outcome.Kind.String(), Candidates: candidates})
	}

	var b strings.Builder
	b.WriteString(outcome.Kind.String())
	b.WriteString("\n")
	for _, c := range outcome.Candidates {
		b.WriteString(c)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
