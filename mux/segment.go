package mux

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a route pattern cannot be parsed.
	ErrInvalidPattern = errors.New("mux: invalid pattern")

	// ErrUnknownVar is returned when a restriction or default names a
	// variable the route pattern does not declare.
	ErrUnknownVar = errors.New("mux: unknown route variable")

	// ErrInvalidRestriction is returned for an empty token set or an
	// unknown restriction macro.
	ErrInvalidRestriction = errors.New("mux: invalid restriction")
)

// restriction narrows the values a named segment accepts.
type restriction int

const (
	restrictNone restriction = iota
	restrictInt
	restrictTokens
	restrictMacro
)

// segment is one compiled fragment of a route pattern: a literal, or a
// named capture surrounded by literal prefix and suffix text.
type segment struct {
	// name is the variable name; empty for literal segments.
	name string
	// prefix and suffix surround the captured value. A literal segment
	// keeps its whole text in prefix.
	prefix string
	suffix string
	// optional marks the [name] form.
	optional bool
	// afterDot marks a segment that followed a '.' in the pattern.
	afterDot bool

	restriction restriction
	tokens      []string
	macro       *macro

	def    string
	hasDef bool

	// regexp matches a whole path token; group 1 is the value.
	regexp *regexp.Regexp
	// valueR matches a bare value against the restriction.
	valueR *regexp.Regexp
}

// newSegment parses a single pattern fragment. Text before the first '<'
// or '[' is the prefix, the text up to the matching '>' or ']' is the
// name, and the remainder is the suffix.
func newSegment(text string, afterDot bool) (*segment, error) {
	s := &segment{
		afterDot: afterDot,
		optional: strings.Contains(text, "["),
	}

	open := strings.IndexAny(text, "<[")
	if open < 0 {
		s.prefix = text
		return s, s.compile()
	}

	closing := ">"
	if text[open] == '[' {
		closing = "]"
	}

	n := strings.Index(text[open+1:], closing)
	if n < 0 {
		return nil, fmt.Errorf("%w: missing %q in %q", ErrInvalidPattern, closing, text)
	}

	s.prefix = text[:open]
	s.name = text[open+1 : open+1+n]
	s.suffix = text[open+2+n:]

	if s.name == "" {
		return nil, fmt.Errorf("%w: missing name in %q", ErrInvalidPattern, text)
	}

	return s, s.compile()
}

// compile rebuilds both regexps from the current fields. Fields are left
// untouched on error.
func (s *segment) compile() error {
	if s.name == "" {
		re, err := compileRegexp("^" + foldCase(s.prefix) + "$")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		s.regexp, s.valueR = re, nil
		return nil
	}

	value := s.valuePattern()

	re, err := compileRegexp("^" + foldCase(s.prefix) + "(" + value + ")" + foldCase(s.suffix) + "$")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	valueR, err := compileRegexp("^(?:" + value + ")$")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	s.regexp, s.valueR = re, valueR
	return nil
}

func (s *segment) valuePattern() string {
	switch s.restriction {
	case restrictInt:
		return `[0-9]+`
	case restrictTokens:
		return foldAlternation(s.tokens)
	case restrictMacro:
		return s.macro.pattern
	default:
		return `[^/.]+`
	}
}

// restrict replaces the restriction and recompiles. On failure the
// previous restriction and regexps stay in place.
func (s *segment) restrict(kind restriction, tokens []string, m *macro) error {
	prev := *s

	s.restriction = kind
	s.tokens = tokens
	s.macro = m

	if err := s.compile(); err != nil {
		*s = prev
		return err
	}

	return nil
}

// setDefault stores the default value and recompiles.
func (s *segment) setDefault(value string) error {
	prev := *s

	s.def, s.hasDef = value, true

	if err := s.compile(); err != nil {
		*s = prev
		return err
	}

	return nil
}

// restricted reports whether a restriction is attached.
func (s *segment) restricted() bool {
	return s.restriction != restrictNone
}

// match matches a whole path token and returns the captured value.
func (s *segment) match(token string) (string, bool) {
	m := s.regexp.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}

	if s.name == "" {
		return "", true
	}

	return m[1], true
}

// render validates a value for URL building and returns the text to emit
// in place of the variable. Values holding a token separator are rejected
// whatever the restriction, since the built path would not match.
func (s *segment) render(value string) (string, bool) {
	if s.restriction == restrictMacro && s.macro.canonical != nil {
		value, ok := s.macro.canonical(value)
		if !ok || !s.valueR.MatchString(value) {
			return "", false
		}
		return value, true
	}

	if !s.valueR.MatchString(value) {
		return "", false
	}

	return value, true
}

// separator is written before the segment when building URLs.
func (s *segment) separator() byte {
	if s.afterDot {
		return '.'
	}

	return '/'
}
