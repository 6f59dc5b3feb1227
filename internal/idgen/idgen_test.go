package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestULIDGenerator_UniqueAndPrefixed(t *testing.T) {
	g := NewULIDGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := g.Next()
		assert.True(t, strings.HasPrefix(n, "CTA-"))
		assert.False(t, seen[n], "duplicate account number %s", n)
		seen[n] = true
	}
}
