package completion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/LemonBreezes/emacs-fish-completion/internal/derrors"
)

// MaxOutputSize is the maximum size of backend output (1MB)
const MaxOutputSize = 1024 * 1024

// Runner executes a backend process and returns its standard output
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs backends as local subprocesses.
// Standard error is discarded and the exit status is ignored: a shell that
// exits non-zero with no output simply has no candidates.
type ExecRunner struct {
	// Timeout bounds each run; zero waits for the process to exit
	Timeout time.Duration
}

// Run executes name with args in dir and blocks until it exits
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = io.Discard

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, derrors.NewSpawnError(name, fmt.Sprintf("backend timed out after %v", r.Timeout), err)
		}
		if ctx.Err() != nil {
			return nil, derrors.NewSpawnError(name, "backend cancelled", ctx.Err())
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, derrors.NewSpawnError(name, "failed to start backend", err)
		}
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}

	return output, nil
}

// resolveExecutable returns the absolute path of command, or "" when it
// cannot be found. Names containing a slash are checked directly.
func resolveExecutable(command string) string {
	if command == "" {
		return ""
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return ""
	}
	return path
}
