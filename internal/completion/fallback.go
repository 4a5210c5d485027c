package completion

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/LemonBreezes/emacs-fish-completion/internal/logger"
)

// FallbackPolicy selects when the secondary backend runs
type FallbackPolicy struct {
	// Enabled asks the secondary when the primary returns nothing or files
	Enabled bool
	// Prefer asks the secondary first and uses the primary only when the
	// secondary returns nothing
	Prefer bool
}

// Coordinator decides between primary and secondary results
type Coordinator struct {
	secondary SecondaryBackend
	policy    FallbackPolicy
	log       *logger.Logger
}

// NewCoordinator creates a coordinator. secondary may be nil.
func NewCoordinator(secondary SecondaryBackend, policy FallbackPolicy, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Discard()
	}
	return &Coordinator{
		secondary: secondary,
		policy:    policy,
		log:       log,
	}
}

// Resolve returns the final result for prompt. primary is called at most
// once, and not at all when a preferred secondary already answered. The
// returned LooksLikeFiles is computed on the final list.
func (c *Coordinator) Resolve(ctx context.Context, dir, prompt string, primary func() BackendResult) BackendResult {
	if c.policy.Prefer && c.secondaryAvailable() {
		if result, ok := c.runSecondary(ctx, dir, prompt); ok {
			return result
		}
		return primary()
	}

	result := primary()
	if !c.policy.Enabled || !c.secondaryAvailable() || !result.lowConfidence() {
		return result
	}

	c.log.Debug().
		Str("primary", result.Source).
		Int("candidates", len(result.Candidates)).
		Bool("looks_like_files", result.LooksLikeFiles).
		Msg("Primary result is low confidence, trying fallback")

	if fallback, ok := c.runSecondary(ctx, dir, prompt); ok {
		return fallback
	}
	return result
}

func (c *Coordinator) secondaryAvailable() bool {
	return c.secondary != nil && c.secondary.IsAvailable()
}

// runSecondary returns ok=false when the secondary fails or is empty
func (c *Coordinator) runSecondary(ctx context.Context, dir, prompt string) (BackendResult, bool) {
	raw, err := c.secondary.Complete(ctx, dir, prompt, len(prompt))
	if err != nil {
		c.log.Debug().Str("backend", c.secondary.Name()).Err(err).Msg("Fallback backend failed")
		return BackendResult{}, false
	}

	// The editor escapes inserted text itself.
	candidates := lo.FilterMap(raw, func(candidate string, _ int) (string, bool) {
		unquoted := unquoteCandidate(candidate)
		return unquoted, unquoted != ""
	})
	if len(candidates) == 0 {
		return BackendResult{}, false
	}

	return newBackendResult(c.secondary.Name(), candidates, dir), true
}

// unquoteCandidate undoes the quoting printf %q applies to COMPREPLY
// entries: backslash escapes, '' and $'...'. Text that is not a single
// plain shell word only has its backslashes removed.
func unquoteCandidate(s string) string {
	if !strings.ContainsAny(s, `\'"$`) {
		return s
	}

	var words []*syntax.Word
	err := syntax.NewParser().Words(strings.NewReader(s), func(w *syntax.Word) bool {
		words = append(words, w)
		return true
	})
	if err != nil || len(words) != 1 || !plainWord(words[0]) {
		return unescapeBackslashes(s)
	}

	syntax.Walk(words[0], func(node syntax.Node) bool {
		// expand reads $'...' as a printf format
		if sq, ok := node.(*syntax.SglQuoted); ok && sq.Dollar {
			sq.Value = strings.ReplaceAll(sq.Value, "%", "%%")
		}
		return true
	})

	fields, err := expand.Fields(nil, words[0])
	switch {
	case err != nil || len(fields) > 1:
		return unescapeBackslashes(s)
	case len(fields) == 0:
		return ""
	}
	return fields[0]
}

// plainWord reports whether w holds nothing but literals and quotes
func plainWord(w *syntax.Word) bool {
	plain := true
	syntax.Walk(w, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.ParamExp, *syntax.CmdSubst, *syntax.ArithmExp,
			*syntax.ProcSubst, *syntax.ExtGlob, *syntax.BraceExp:
			plain = false
		}
		return plain
	})
	return plain
}

// unescapeBackslashes removes backslash escapes, keeping the escaped
// character: `My\ File` becomes `My File` and `a\\b` becomes `a\b`.
func unescapeBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		} else if s[i] == '\\' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
