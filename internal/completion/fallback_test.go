package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinator_Resolve(t *testing.T) {
	filesDir := t.TempDir()

	tests := []struct {
		name           string
		policy         FallbackPolicy
		secondary      *mockSecondary
		primary        []string
		want           []string
		wantSource     string
		primaryCalls   int
		secondaryCalls int
	}{
		{
			name:           "fallback disabled keeps empty primary",
			policy:         FallbackPolicy{},
			secondary:      &mockSecondary{available: true, candidates: []string{"x"}},
			primary:        []string{},
			want:           []string{},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 0,
		},
		{
			name:           "confident primary is not second guessed",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{"x"}},
			primary:        []string{"checkout"},
			want:           []string{"checkout"},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 0,
		},
		{
			name:           "empty primary replaced",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{"x", "y"}},
			primary:        []string{},
			want:           []string{"x", "y"},
			wantSource:     "bash-completion",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "file listing replaced",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{"--verbose"}},
			primary:        []string{filesDir},
			want:           []string{"--verbose"},
			wantSource:     "bash-completion",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "empty secondary keeps primary",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{}},
			primary:        []string{filesDir},
			want:           []string{filesDir},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "failing secondary keeps primary",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, err: errors.New("boom")},
			primary:        []string{},
			want:           []string{},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "unavailable secondary never runs",
			policy:         FallbackPolicy{Enabled: true, Prefer: true},
			secondary:      &mockSecondary{available: false, candidates: []string{"x"}},
			primary:        []string{},
			want:           []string{},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 0,
		},
		{
			name:           "preferred secondary skips primary",
			policy:         FallbackPolicy{Prefer: true},
			secondary:      &mockSecondary{available: true, candidates: []string{"x", "y"}},
			primary:        []string{"checkout"},
			want:           []string{"x", "y"},
			wantSource:     "bash-completion",
			primaryCalls:   0,
			secondaryCalls: 1,
		},
		{
			name:           "preferred secondary empty falls back to primary",
			policy:         FallbackPolicy{Prefer: true},
			secondary:      &mockSecondary{available: true, candidates: []string{}},
			primary:        []string{"checkout"},
			want:           []string{"checkout"},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "preferred secondary empty then primary files is final",
			policy:         FallbackPolicy{Enabled: true, Prefer: true},
			secondary:      &mockSecondary{available: true, candidates: []string{}},
			primary:        []string{filesDir},
			want:           []string{filesDir},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "secondary candidates are unescaped",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{`My\ File`, `a\\b`}},
			primary:        []string{},
			want:           []string{"My File", `a\b`},
			wantSource:     "bash-completion",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "quoted secondary candidates are unquoted",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{`$'tab\there'`, `''`, `\~/notes`}},
			primary:        []string{},
			want:           []string{"tab\there", "~/notes"},
			wantSource:     "bash-completion",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
		{
			name:           "secondary of empty strings counts as empty",
			policy:         FallbackPolicy{Enabled: true},
			secondary:      &mockSecondary{available: true, candidates: []string{`\`, ""}},
			primary:        []string{},
			want:           []string{},
			wantSource:     "fish",
			primaryCalls:   1,
			secondaryCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(tt.secondary, tt.policy, nil)

			primaryCalls := 0
			got := c.Resolve(context.Background(), "", "git chec", func() BackendResult {
				primaryCalls++
				return newBackendResult("fish", tt.primary, "")
			})

			assert.Equal(t, tt.want, got.Candidates)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.primaryCalls, primaryCalls)
			assert.Equal(t, tt.secondaryCalls, tt.secondary.calls())
		})
	}
}

func TestCoordinator_NilSecondary(t *testing.T) {
	c := NewCoordinator(nil, FallbackPolicy{Enabled: true, Prefer: true}, nil)

	got := c.Resolve(context.Background(), "", "ls", func() BackendResult {
		return newBackendResult("fish", []string{}, "")
	})
	assert.True(t, got.Empty())
	assert.Equal(t, "fish", got.Source)
}

// The secondary gets the same normalized prompt as the primary, not the
// raw input line.
func TestCoordinator_SecondaryReceivesPrompt(t *testing.T) {
	secondary := &mockSecondary{available: true, candidates: []string{"x"}}
	c := NewCoordinator(secondary, FallbackPolicy{Prefer: true}, nil)

	c.Resolve(context.Background(), "", "apt inst", func() BackendResult {
		return BackendResult{}
	})
	assert.Equal(t, []string{"apt inst"}, secondary.lines)
}

func TestCoordinator_FinalFilesFlagRecomputed(t *testing.T) {
	dir := t.TempDir()
	secondary := &mockSecondary{available: true, candidates: []string{dir}}
	c := NewCoordinator(secondary, FallbackPolicy{Enabled: true}, nil)

	got := c.Resolve(context.Background(), "", "cd ", func() BackendResult {
		return newBackendResult("fish", []string{}, "")
	})
	assert.Equal(t, "bash-completion", got.Source)
	assert.True(t, got.LooksLikeFiles)
}

func TestUnescapeBackslashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: `My\ File`, want: "My File"},
		{in: `a\\b`, want: `a\b`},
		{in: `\$HOME`, want: "$HOME"},
		{in: `it\'s`, want: "it's"},
		{in: `trail\`, want: "trail"},
		{in: `\`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeBackslashes(tt.in))
		})
	}
}

func TestUnquoteCandidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "checkout", want: "checkout"},
		{name: "escaped space", in: `My\ File`, want: "My File"},
		{name: "escaped backslash", in: `a\\b`, want: `a\b`},
		{name: "escaped tilde", in: `\~/src`, want: "~/src"},
		{name: "empty string", in: `''`, want: ""},
		{name: "ansi-c newline", in: `$'a\nb'`, want: "a\nb"},
		{name: "ansi-c tab and quote", in: `$'it\'s\tx'`, want: "it's\tx"},
		{name: "ansi-c percent", in: `$'50%\n'`, want: "50%\n"},
		{name: "double quotes", in: `"two words"`, want: "two words"},
		{name: "expansions are not run", in: `$HOME`, want: "$HOME"},
		{name: "command substitution is not run", in: `$(echo hi)`, want: "$(echo hi)"},
		{name: "several words", in: `a\ b c`, want: "a b c"},
		{name: "trailing backslash", in: `trail\`, want: "trail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unquoteCandidate(tt.in))
		})
	}
}
