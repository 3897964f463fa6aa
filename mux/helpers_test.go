package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "/"},
		{input: "/", expected: "/"},
		{input: "blog", expected: "/blog"},
		{input: "/blog/../shop", expected: "/shop"},
		{input: "/blog/./show/", expected: "/blog/show/"},
		{input: "//blog//show", expected: "/blog/show"},
		{input: "/files/report.pdf", expected: "/files/report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanPath(tt.input))
		})
	}
}
