package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Shape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(code), minLetters)
		assert.LessOrEqual(t, len(code), maxLetters)
		for _, r := range code {
			assert.True(t, r >= 'A' && r <= 'Z', "unexpected rune %q in code %s", r, code)
		}
		seen[code] = true
	}
	// Not a strict uniqueness guarantee, but 100 identical codes would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
