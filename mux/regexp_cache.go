package mux

import (
	"regexp"
	"sync"
)

// regexpCache holds compiled segment regexps keyed by their source.
// Routes built from the same fragments share one *regexp.Regexp, and the
// cache never grows past the number of distinct fragments configured.
var regexpCache sync.Map

// compileRegexp returns the cached *regexp.Regexp for pattern, compiling
// it on first use. Compilation only happens while routes are configured.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}
