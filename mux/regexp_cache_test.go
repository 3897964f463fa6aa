package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRegexp(t *testing.T) {
	t.Run("compiles valid pattern", func(t *testing.T) {
		re, err := compileRegexp(`^[pP][aA][gG][eE]-([0-9]+)$`)
		require.NoError(t, err)
		assert.True(t, re.MatchString("Page-12"))
		assert.False(t, re.MatchString("page-"))
	})

	t.Run("identical segments share one regexp", func(t *testing.T) {
		a := MustCompile("/shared-cache-test/<id>")
		b := MustCompile("/other/shared-cache-test")
		assert.Same(t, a.segments[0].regexp, b.segments[1].regexp)
	})

	t.Run("invalid pattern returns error", func(t *testing.T) {
		_, err := compileRegexp(`^([0-9+$`)
		assert.Error(t, err)
	})
}

func BenchmarkCompileRegexpCached(b *testing.B) {
	compileRegexp(`^[0-9]+$`) //nolint:errcheck

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compileRegexp(`^[0-9]+$`) //nolint:errcheck
	}
}
