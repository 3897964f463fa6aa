package mux

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// NameFunc resolves the canonical name of a value, typically a handler,
// for use as a default. It is supplied by the caller of DefaultFrom.
type NameFunc func(v any) (string, error)

// Route is a compiled route pattern. It matches request paths, extracting
// variables, and builds paths back from variable values.
//
// A Route is configured once (Restrict, Default and friends) and then
// used read-only: Match and URL are safe for concurrent use as long as no
// configuration method runs at the same time.
type Route struct {
	pattern  string
	segments []*segment
	// index maps variable names to positions in segments.
	index    map[string]int
	defaults Defaults

	name        string
	handler     http.Handler
	namedRoutes map[string]*Route

	err error
}

// NewRoute compiles pattern into a Route. A malformed pattern does not
// panic: the error is recorded and returned by GetError, configuration
// methods become no-ops, and the route never matches nor builds URLs.
func NewRoute(pattern string) *Route {
	r := &Route{pattern: pattern}

	segments, index, err := parsePattern(pattern)
	if err != nil {
		r.err = fmt.Errorf("%w (pattern %q)", err, pattern)
		return r
	}

	r.segments = segments
	r.index = index

	return r
}

// Compile compiles pattern and returns the parse error, if any.
func Compile(pattern string) (*Route, error) {
	r := NewRoute(pattern)
	if r.err != nil {
		return nil, r.err
	}
	return r, nil
}

// MustCompile is like Compile but panics on error. It is meant for route
// tables declared at program start.
func MustCompile(pattern string) *Route {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match matches path against the route. On success the route, its handler
// and the extracted variables are stored in match, unless match is nil; on
// failure match is left as it was.
//
// The path is split into tokens on '/' and '.', and the n-th segment is
// matched against the n-th token. Literal text is compared without regard
// to case. A missing token is accepted only for an optional segment, which
// then binds its default, if any. Route-level defaults are added last for
// names still unbound.
func (r *Route) Match(path string, match *RouteMatch) bool {
	if r.err != nil {
		return false
	}

	tokens := splitPath(path)
	if len(tokens) > len(r.segments) {
		return false
	}

	vars := make(map[string]string, len(r.index)+r.defaults.Len())

	for i, s := range r.segments {
		if i >= len(tokens) {
			if !s.optional {
				return false
			}
			if s.hasDef {
				vars[s.name] = s.def
			}
			continue
		}

		value, ok := s.match(tokens[i])
		if !ok {
			return false
		}
		if s.name != "" {
			vars[s.name] = value
		}
	}

	r.defaults.mergeInto(vars)

	if match == nil {
		return true
	}

	match.Route = r
	match.Handler = r.handler
	match.Vars = vars

	return true
}

// URL builds a path from base and the given variable values. The boolean
// is false when no path can be built: a required variable is missing, a
// value violates its restriction, or no variable was substituted at all.
//
// Segments are written in order, each preceded by '/' (or '.' for a
// segment that followed a dot) unless the output already ends in '/'.
// Building stops at the first optional variable that is missing or equal
// to its default, so trailing defaults collapse to the shortest form. One
// trailing separator is trimmed from the result.
func (r *Route) URL(base string, values map[string]string) (string, bool) {
	if r.err != nil {
		return "", false
	}

	var (
		b           strings.Builder
		substituted bool
	)
	b.WriteString(base)

walk:
	for _, s := range r.segments {
		if !strings.HasSuffix(b.String(), "/") {
			b.WriteByte(s.separator())
		}

		if s.name == "" {
			b.WriteString(s.prefix)
			continue
		}

		value, ok := values[s.name]
		if !ok {
			if s.optional {
				break walk
			}
			return "", false
		}

		value, ok = s.render(value)
		if !ok {
			return "", false
		}

		if s.optional && s.hasDef && strings.EqualFold(value, s.def) {
			break walk
		}

		b.WriteString(s.prefix)
		b.WriteString(value)
		b.WriteString(s.suffix)
		substituted = true
	}

	if !substituted {
		return "", false
	}

	out := b.String()
	if n := len(out); n > 0 && (out[n-1] == '/' || out[n-1] == '.') {
		out = out[:n-1]
	}

	return out, true
}

// --- Configuration ---

// segmentFor returns the segment declaring the variable name.
func (r *Route) segmentFor(name string) (*segment, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q in %q", ErrUnknownVar, name, r.pattern)
	}
	return r.segments[i], nil
}

// Restrict limits the variable name to the given tokens. Tokens are
// compared without regard to case, both when matching and when building.
func (r *Route) Restrict(name string, tokens ...string) *Route {
	if r.err != nil {
		return r
	}
	if len(tokens) == 0 {
		r.err = fmt.Errorf("%w: no tokens for %q in %q", ErrInvalidRestriction, name, r.pattern)
		return r
	}

	s, err := r.segmentFor(name)
	if err != nil {
		r.err = err
		return r
	}

	r.err = s.restrict(restrictTokens, slices.Clone(tokens), nil)
	return r
}

// RestrictInt limits the variable name to one or more ASCII digits.
func (r *Route) RestrictInt(name string) *Route {
	if r.err != nil {
		return r
	}

	s, err := r.segmentFor(name)
	if err != nil {
		r.err = err
		return r
	}

	r.err = s.restrict(restrictInt, nil, nil)
	return r
}

// RestrictMacro limits the variable name to a named pattern:
//
//	int      - one or more ASCII digits (same as RestrictInt)
//	uuid     - RFC 4122 UUID; built URLs always carry the canonical form
//	alpha    - ASCII letters
//	alphanum - ASCII letters and digits
//	slug     - alphanumeric words joined by single hyphens
//	hex      - hexadecimal digits
//	date     - YYYY-MM-DD
func (r *Route) RestrictMacro(name, macroName string) *Route {
	if r.err != nil {
		return r
	}
	if macroName == integerMacro {
		return r.RestrictInt(name)
	}

	m, ok := lookupMacro(macroName)
	if !ok {
		r.err = fmt.Errorf("%w: unknown macro %q for %q in %q", ErrInvalidRestriction, macroName, name, r.pattern)
		return r
	}

	s, err := r.segmentFor(name)
	if err != nil {
		r.err = err
		return r
	}

	r.err = s.restrict(restrictMacro, nil, m)
	return r
}

// Default sets the default value of the variable name. An optional
// variable missing from a matched path is bound to it, and URL building
// stops when an optional variable equals it. The value is also added to
// the route defaults (see Fallback).
func (r *Route) Default(name, value string) *Route {
	if r.err != nil {
		return r
	}

	s, err := r.segmentFor(name)
	if err != nil {
		r.err = err
		return r
	}

	if r.err = s.setDefault(value); r.err != nil {
		return r
	}

	r.defaults.Set(name, value)
	return r
}

// DefaultFrom sets the default of the variable name to the name fn
// resolves for v, for example the registered name of a handler type.
func (r *Route) DefaultFrom(name string, v any, fn NameFunc) *Route {
	if r.err != nil {
		return r
	}
	if fn == nil {
		r.err = fmt.Errorf("mux: nil NameFunc for %q in %q", name, r.pattern)
		return r
	}

	value, err := fn(v)
	if err != nil {
		r.err = fmt.Errorf("mux: resolving default for %q in %q: %w", name, r.pattern, err)
		return r
	}

	return r.Default(name, value)
}

// Fallback adds a route-level default. After a successful match it is
// added to the variables unless a segment already bound key (compared
// without regard to case). Unlike Default, key need not name a variable
// of the pattern.
func (r *Route) Fallback(key, value string) *Route {
	if r.err == nil {
		r.defaults.Set(key, value)
	}
	return r
}

// Name sets the name for the route, used by Router.Get.
func (r *Route) Name(name string) *Route {
	if r.name != "" {
		r.err = fmt.Errorf("mux: route already has name %q, can't set %q", r.name, name)
		return r
	}
	if r.err != nil {
		return r
	}

	if r.namedRoutes != nil {
		if _, taken := r.namedRoutes[name]; taken {
			r.err = fmt.Errorf("%w: %q", ErrRouteNameExist, name)
			return r
		}
		r.namedRoutes[name] = r
	}
	r.name = name

	return r
}

// Handler sets a handler for the route.
func (r *Route) Handler(handler http.Handler) *Route {
	if r.err == nil {
		r.handler = handler
	}
	return r
}

// HandlerFunc sets a handler function for the route.
func (r *Route) HandlerFunc(f func(http.ResponseWriter, *http.Request)) *Route {
	return r.Handler(http.HandlerFunc(f))
}

// --- Inspection ---

// GetHandler returns the handler for the route, if any.
func (r *Route) GetHandler() http.Handler {
	return r.handler
}

// GetName returns the name for the route, if any.
func (r *Route) GetName() string {
	return r.name
}

// GetPattern returns the pattern the route was compiled from.
func (r *Route) GetPattern() string {
	return r.pattern
}

// GetVarNames returns the variable names in pattern order.
func (r *Route) GetVarNames() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	var names []string
	for _, s := range r.segments {
		if s.name != "" {
			names = append(names, s.name)
		}
	}
	return names, nil
}

// GetDefaults returns a copy of the route-level defaults.
func (r *Route) GetDefaults() map[string]string {
	return r.defaults.Map()
}

// GetError returns the first configuration error recorded on the route.
func (r *Route) GetError() error {
	return r.err
}

// ErrRouteNameExist is recorded when two routes of a Router share a name.
var ErrRouteNameExist = errors.New("mux: route name already registered")
