// Package completion turns a partially typed command line into completion
// candidates by asking fish (`complete -C`) and, when fish has nothing better
// than file names, bash-completion.
package completion

import "context"

// OutcomeKind tells the editor how to use an Outcome
type OutcomeKind int

const (
	// OutcomeLiteral means the candidates are inserted as-is
	OutcomeLiteral OutcomeKind = iota
	// OutcomeFiles means the editor should run its own file name completion
	OutcomeFiles
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLiteral:
		return "literal"
	case OutcomeFiles:
		return "files"
	default:
		return "unknown"
	}
}

// Outcome is the answer to one completion request
type Outcome struct {
	Kind       OutcomeKind
	Candidates []string // Ordered as the backend ranked them; empty for OutcomeFiles
}

// Literal returns an outcome carrying candidates verbatim
func Literal(candidates []string) Outcome {
	if candidates == nil {
		candidates = []string{}
	}
	return Outcome{Kind: OutcomeLiteral, Candidates: candidates}
}

// UseFileCompletion returns an outcome delegating to the editor's file completion
func UseFileCompletion() Outcome {
	return Outcome{Kind: OutcomeFiles}
}

// IsFiles reports whether the editor should complete file names itself
func (o Outcome) IsFiles() bool {
	return o.Kind == OutcomeFiles
}

// BackendResult is a candidate list tagged with the backend that produced it
type BackendResult struct {
	Source     string
	Candidates []string
	// LooksLikeFiles is true iff the first candidate names an existing path.
	// Shells fall back to listing files when they have nothing smarter, so
	// this marks a low-confidence answer. It is a heuristic.
	LooksLikeFiles bool
}

// Empty reports whether the backend returned no candidates
func (r BackendResult) Empty() bool {
	return len(r.Candidates) == 0
}

func (r BackendResult) lowConfidence() bool {
	return r.Empty() || r.LooksLikeFiles
}

// PrimaryBackend lists completions for a normalized prompt. The raw stdout
// of the backend is returned; Classify turns it into candidates.
type PrimaryBackend interface {
	Name() string
	// Available reports whether the backend executable was found
	Available() bool
	Complete(ctx context.Context, dir, prompt string) (string, error)
}

// SecondaryBackend is the optional fallback completion engine.
// Candidates use backslash-escaped spaces.
type SecondaryBackend interface {
	Name() string
	// IsAvailable is resolved once when the backend is built
	IsAvailable() bool
	Complete(ctx context.Context, dir, line string, point int) ([]string, error)
}

// Request is one completion request coming from the editor
type Request struct {
	Line string // Input line up to the cursor
	Dir  string // Working directory of the buffer; "" means the process cwd
}
