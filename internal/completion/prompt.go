package completion

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"
)

// ParentCommand is a wrapper such as sudo or env whose first non-option
// argument is the command actually being completed.
type ParentCommand struct {
	Name string
	// ValueFlags are options that consume the following word (sudo -u root)
	ValueFlags []string
}

// Normalizer rewrites an editor input line into what fish should complete
type Normalizer struct {
	sentinel *regexp.Regexp
	parents  map[string]ParentCommand
}

// CompileSentinel compiles the editor prefix pattern. An empty pattern
// disables sentinel stripping and yields a nil regexp.
func CompileSentinel(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid sentinel pattern %q: %w", pattern, err)
	}
	return re, nil
}

// NewNormalizer builds a normalizer from a sentinel pattern and the set of
// parent commands
func NewNormalizer(sentinelPattern string, parents []ParentCommand) (*Normalizer, error) {
	sentinel, err := CompileSentinel(sentinelPattern)
	if err != nil {
		return nil, err
	}

	return &Normalizer{
		sentinel: sentinel,
		parents:  lo.KeyBy(parents, func(p ParentCommand) string { return p.Name }),
	}, nil
}

// Normalize strips the editor sentinel and, when the line starts with a
// parent command, drops the wrapper and its options. Trailing whitespace is
// kept: "ls" and "ls " complete differently.
func (n *Normalizer) Normalize(raw string) string {
	text := n.stripSentinel(raw)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return text
	}

	parent, ok := n.parents[tokens[0]]
	if !ok {
		return text
	}

	rest := parent.skipOptions(tokens[1:])
	if len(rest) == 0 {
		// Nothing after the wrapper: complete the wrapper itself.
		return text
	}

	return strings.Join(rest, " ")
}

func (n *Normalizer) stripSentinel(raw string) string {
	if n.sentinel == nil {
		return raw
	}
	loc := n.sentinel.FindStringIndex(raw)
	if loc == nil || loc[0] != 0 {
		return raw
	}
	return raw[loc[1]:]
}

// skipOptions drops leading options and VAR=value assignments.
func (p ParentCommand) skipOptions(tokens []string) []string {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "--":
			return tokens[i+1:]
		case strings.HasPrefix(tok, "-"):
			if lo.Contains(p.ValueFlags, tok) {
				i++
			}
		case strings.Contains(tok, "="):
		default:
			return tokens[i:]
		}
	}
	return nil
}

// tokenize splits text into shell words, keeping each word's raw text
// (quotes included). A trailing empty token marks a line ending in a
// separator; a trailing comment is not one. Lines the shell parser rejects,
// such as an unterminated quote while the user is still typing, are split on
// whitespace instead.
func tokenize(text string) []string {
	var words []string
	end := 0

	err := syntax.NewParser().Words(strings.NewReader(text), func(w *syntax.Word) bool {
		words = append(words, text[w.Pos().Offset():w.End().Offset()])
		end = int(w.End().Offset())
		return true
	})

	rest := strings.TrimLeftFunc(text[end:], unicode.IsSpace)
	trailing := end < len(text) && !strings.HasPrefix(rest, "#")
	if err != nil {
		words = strings.Fields(text)
		r, _ := utf8.DecodeLastRuneInString(text)
		trailing = unicode.IsSpace(r)
	}

	if trailing {
		words = append(words, "")
	}
	return words
}
