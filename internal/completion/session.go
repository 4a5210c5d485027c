package completion

import (
	"context"

	"github.com/LemonBreezes/emacs-fish-completion/internal/logger"
)

// Host is the editor side of a completion session
type Host interface {
	// CurrentInputLine returns the input line up to the cursor
	CurrentInputLine() string
	// IsRemote reports whether the buffer lives on another machine
	IsRemote() bool
	// WorkingDir returns the buffer's directory
	WorkingDir() string
}

// PriorCompleter is the completion mechanism the editor used before a
// session was activated
type PriorCompleter func(ctx context.Context) Outcome

// Session records what activation replaced. It is created by Activate and
// handed back by Deactivate; there is no global state.
type Session struct {
	pipeline       *Pipeline
	host           Host
	prior          PriorCompleter
	primaryMissing bool
	active         bool
}

// Activate installs pipeline for host and remembers prior. When the primary
// shell cannot be found it warns once; the session then serves every
// request from prior.
func Activate(pipeline *Pipeline, host Host, prior PriorCompleter, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}

	s := &Session{
		pipeline: pipeline,
		host:     host,
		prior:    prior,
		active:   true,
	}

	primary := pipeline.Primary()
	if primary == nil || !primary.Available() {
		s.primaryMissing = true
		name := "primary shell"
		if primary != nil {
			name = primary.Name()
		}
		log.Warn().
			Str("command", name).
			Msg("Shell executable not found, completions will come from the previous completion mechanism")
	}

	return s
}

// Complete answers the host's current request. Remote buffers, and sessions
// whose primary shell is missing, are served by the prior mechanism without
// starting any process.
func (s *Session) Complete(ctx context.Context) Outcome {
	if !s.active {
		return UseFileCompletion()
	}

	if s.host.IsRemote() || s.primaryMissing {
		return s.delegate(ctx)
	}

	return s.pipeline.Complete(ctx, Request{
		Line: s.host.CurrentInputLine(),
		Dir:  s.host.WorkingDir(),
	})
}

// Delegating reports whether requests currently bypass the pipeline
func (s *Session) Delegating() bool {
	return s.primaryMissing || s.host.IsRemote()
}

// Deactivate ends the session and returns the prior mechanism so the host
// can reinstall it
func (s *Session) Deactivate() PriorCompleter {
	prior := s.prior
	s.prior = nil
	s.active = false
	return prior
}

func (s *Session) delegate(ctx context.Context) Outcome {
	if s.prior == nil {
		return UseFileCompletion()
	}
	return s.prior(ctx)
}
