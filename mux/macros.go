package mux

import (
	"github.com/google/uuid"
)

// macro is a named value restriction usable with Route.RestrictMacro.
type macro struct {
	name    string
	pattern string

	// canonical, when set, validates a value for URL building and returns
	// the form written into the generated path. It replaces the pattern
	// check for generation only; matching always uses pattern.
	canonical func(string) (string, bool)
}

// restrictionMacros maps macro names to their value patterns. Patterns
// never include '/' or '.', since those separate path tokens.
var restrictionMacros = map[string]*macro{
	"uuid": {
		name:      "uuid",
		pattern:   `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		canonical: canonicalUUID,
	},
	"alpha":    {name: "alpha", pattern: `[a-zA-Z]+`},
	"alphanum": {name: "alphanum", pattern: `[a-zA-Z0-9]+`},
	"slug":     {name: "slug", pattern: `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`},
	"hex":      {name: "hex", pattern: `[0-9a-fA-F]+`},
	"date":     {name: "date", pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}`},
}

// integerMacro names the integer-only restriction in macro form.
const integerMacro = "int"

// lookupMacro returns the macro registered under name.
func lookupMacro(name string) (*macro, bool) {
	m, ok := restrictionMacros[name]
	return m, ok
}

// canonicalUUID accepts every UUID encoding understood by uuid.Parse
// (braced, urn:uuid: prefixed, upper case) and returns the lowercase
// hyphenated form, which is also the form the uuid pattern matches.
func canonicalUUID(v string) (string, bool) {
	id, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}

	return id.String(), true
}
