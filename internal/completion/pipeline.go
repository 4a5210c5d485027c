package completion

import (
	"context"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/LemonBreezes/emacs-fish-completion/internal/logger"
	"github.com/LemonBreezes/emacs-fish-completion/internal/timing"
	"github.com/LemonBreezes/emacs-fish-completion/internal/trace"
)

// Options configures a Pipeline
type Options struct {
	Normalizer *Normalizer
	Primary    PrimaryBackend
	Secondary  SecondaryBackend // optional
	Fallback   FallbackPolicy
	Logger     *logger.Logger
}

// Pipeline turns an input line into an Outcome. It is synchronous: at most
// two backends run, one after the other.
type Pipeline struct {
	normalizer  *Normalizer
	primary     PrimaryBackend
	coordinator *Coordinator
	log         *logger.Logger
}

// NewPipeline creates a pipeline from opts
func NewPipeline(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = &Normalizer{}
	}

	return &Pipeline{
		normalizer:  normalizer,
		primary:     opts.Primary,
		coordinator: NewCoordinator(opts.Secondary, opts.Fallback, log.Component("fallback")),
		log:         log.Component("pipeline"),
	}
}

// Primary returns the primary backend
func (p *Pipeline) Primary() PrimaryBackend {
	return p.primary
}

// Complete normalizes the line, asks the backends and classifies the result.
// Backend failures yield no candidates; Complete never fails.
func (p *Pipeline) Complete(ctx context.Context, req Request) Outcome {
	defer trace.Region(ctx, "pipeline.Complete")()
	timer := timing.NewTimer()

	prompt := p.normalizer.Normalize(req.Line)
	timer.Mark("normalize")
	trace.Log(ctx, "prompt", prompt)

	final := p.coordinator.Resolve(ctx, req.Dir, prompt, func() BackendResult {
		result := p.runPrimary(ctx, req.Dir, prompt)
		timer.Mark("primary")
		return result
	})
	timer.Mark("resolve")

	var outcome Outcome
	if final.LooksLikeFiles {
		outcome = UseFileCompletion()
	} else {
		// Trailing spaces would be escaped by the editor on insertion.
		outcome = Literal(lo.Map(final.Candidates, func(c string, _ int) string {
			return strings.TrimRightFunc(c, unicode.IsSpace)
		}))
	}

	if p.log.IsDebug() {
		p.log.Debug().
			Str("line", req.Line).
			Str("prompt", prompt).
			Str("source", final.Source).
			Str("outcome", outcome.Kind.String()).
			Strs("candidates", outcome.Candidates).
			Str("timing", timer.Summary()).
			Msg("Completed")
	}

	return outcome
}

func (p *Pipeline) runPrimary(ctx context.Context, dir, prompt string) BackendResult {
	if p.primary == nil {
		return BackendResult{Candidates: []string{}}
	}

	output, err := p.primary.Complete(ctx, dir, prompt)
	if err != nil {
		p.log.Debug().Str("backend", p.primary.Name()).Err(err).Msg("Primary backend failed")
		output = ""
	}

	return newBackendResult(p.primary.Name(), Classify(output), dir)
}
