package mux

import (
	"sort"
	"strings"
)

// Defaults maps variable names to fallback values. Keys are compared
// case-insensitively; the spelling of the last Set wins.
//
// The zero value is ready to use.
type Defaults struct {
	entries map[string]defaultEntry
}

type defaultEntry struct {
	key   string
	value string
}

// Set stores value under key, replacing any entry whose key differs only
// in case.
func (d *Defaults) Set(key, value string) {
	if d.entries == nil {
		d.entries = make(map[string]defaultEntry)
	}
	d.entries[strings.ToLower(key)] = defaultEntry{key: key, value: value}
}

// Get returns the value stored under key in any letter case.
func (d *Defaults) Get(key string) (string, bool) {
	e, ok := d.entries[strings.ToLower(key)]
	return e.value, ok
}

// Len returns the number of entries.
func (d *Defaults) Len() int {
	return len(d.entries)
}

// Keys returns the stored keys, sorted.
func (d *Defaults) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		keys = append(keys, e.key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the entries as a plain map.
func (d *Defaults) Map() map[string]string {
	m := make(map[string]string, len(d.entries))
	for _, e := range d.entries {
		m[e.key] = e.value
	}
	return m
}

// mergeInto adds every entry to vars unless vars already holds the key in
// any letter case.
func (d *Defaults) mergeInto(vars map[string]string) {
	if len(d.entries) == 0 {
		return
	}

	bound := make(map[string]struct{}, len(vars))
	for k := range vars {
		bound[strings.ToLower(k)] = struct{}{}
	}

	for lower, e := range d.entries {
		if _, ok := bound[lower]; !ok {
			vars[e.key] = e.value
		}
	}
}
