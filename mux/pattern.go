package mux

import (
	"fmt"
	"strings"
)

// parsePattern splits a route pattern into segments, left to right.
//
// The pattern is split on '/' with empty fragments dropped. Each fragment
// is split once more on its first '.', the part after the dot becoming a
// separate segment flagged afterDot:
//
//	/<controller>/<action>/[id]   ->  <controller> <action> [id]
//	/files/<name>.<format>        ->  files <name> .<format>
//	/page-<n>                     ->  page-<n>
func parsePattern(pattern string) ([]*segment, map[string]int, error) {
	var (
		segments []*segment
		index    = make(map[string]int)
	)

	add := func(text string, afterDot bool) error {
		s, err := newSegment(text, afterDot)
		if err != nil {
			return err
		}
		if s.name != "" {
			if _, dup := index[s.name]; dup {
				return fmt.Errorf("%w: duplicated route variable %q in %q", ErrInvalidPattern, s.name, pattern)
			}
			index[s.name] = len(segments)
		}
		segments = append(segments, s)
		return nil
	}

	for _, fragment := range strings.Split(pattern, "/") {
		if fragment == "" {
			continue
		}

		head, tail, dotted := strings.Cut(fragment, ".")
		if head != "" {
			if err := add(head, false); err != nil {
				return nil, nil, err
			}
		}
		if dotted && tail != "" {
			if err := add(tail, true); err != nil {
				return nil, nil, err
			}
		}
	}

	return segments, index, nil
}

// splitPath tokenizes a request path on '/' and '.', dropping empty tokens.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '.'
	})
}
