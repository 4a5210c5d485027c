package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testParents = []ParentCommand{
	{Name: "builtin"},
	{Name: "env", ValueFlags: []string{"-u", "-C"}},
	{Name: "sudo", ValueFlags: []string{"-u", "-g", "--user"}},
	{Name: "time", ValueFlags: []string{"-f"}},
}

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(`^\s*\*+`, testParents)
	require.NoError(t, err)
	return n
}

// writeExecutable creates an executable shell script named name in dir
func writeExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// stubPrimary is a PrimaryBackend returning canned output
type stubPrimary struct {
	available bool
	output    string
	err       error
	prompts   []string
}

func (s *stubPrimary) Name() string    { return "fish" }
func (s *stubPrimary) Available() bool { return s.available }

func (s *stubPrimary) Complete(_ context.Context, _ string, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.output, s.err
}

func (s *stubPrimary) calls() int { return len(s.prompts) }

// mockSecondary is a SecondaryBackend returning canned candidates
type mockSecondary struct {
	available  bool
	candidates []string
	err        error
	lines      []string
}

func (m *mockSecondary) Name() string      { return "bash-completion" }
func (m *mockSecondary) IsAvailable() bool { return m.available }

func (m *mockSecondary) Complete(_ context.Context, _ string, line string, _ int) ([]string, error) {
	m.lines = append(m.lines, line)
	return m.candidates, m.err
}

func (m *mockSecondary) calls() int { return len(m.lines) }

// testHost is a Host with fixed answers
type testHost struct {
	line   string
	remote bool
	dir    string
}

func (h testHost) CurrentInputLine() string { return h.line }
func (h testHost) IsRemote() bool           { return h.remote }
func (h testHost) WorkingDir() string       { return h.dir }
