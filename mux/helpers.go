package mux

import (
	"net/http"
	"path"
)

// cleanPath returns the canonical path for p, eliminating . and .. elements
// per RFC 3986 Section 5.2.4 (remove dot segments).
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}

// notFound replies to the request with an HTTP 404 not found error.
func notFound(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

var defaultNotFoundHandler = http.HandlerFunc(notFound)
