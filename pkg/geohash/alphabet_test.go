package geohash

import (
	"strings"
	"testing"

	"github.com/kass/go-geohash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetBijection(t *testing.T) {
	require.Len(t, Alphabet, 32)

	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		s, err := Symbol(c)
		require.NoError(t, err)
		assert.Equal(t, uint8(i), s, "symbol of %q", c)

		back, err := Char(s)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}

	for s := uint8(0); s < 32; s++ {
		c, err := Char(s)
		require.NoError(t, err)
		back, err := Symbol(c)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestSymbolRejects(t *testing.T) {
	for _, c := range []byte("ailoAILO-_ .#@{}\x00\xff") {
		_, err := Symbol(c)
		assert.ErrorIs(t, err, models.ErrInvalidValue, "character %q", c)
	}
}

func TestSymbolCaseInsensitive(t *testing.T) {
	upper := strings.ToUpper(Alphabet)
	for i := 0; i < len(upper); i++ {
		s, err := Symbol(upper[i])
		require.NoError(t, err)
		assert.Equal(t, uint8(i), s)
	}
}

func TestCharRejects(t *testing.T) {
	for _, s := range []uint8{32, 33, 100, 255} {
		_, err := Char(s)
		assert.ErrorIs(t, err, models.ErrInvalidValue, "symbol %d", s)
	}
}

func TestSymbolBuckets(t *testing.T) {
	testCases := []struct {
		c        byte
		expected uint8
	}{
		{'0', 0}, {'9', 9},
		{'b', 10}, {'h', 16},
		{'j', 17}, {'k', 18},
		{'m', 19}, {'n', 20},
		{'p', 21}, {'z', 31},
	}

	for _, tc := range testCases {
		s, err := Symbol(tc.c)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, s, "symbol of %q", tc.c)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("ezs42"))
	assert.NoError(t, Validate("EZS42"))

	err := Validate("ezs4a")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
	assert.Contains(t, err.Error(), "position 4")
}
