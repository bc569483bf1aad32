package sample

import (
	"testing"

	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates(t *testing.T) {
	coords := Coordinates(1000, 7)
	require.Len(t, coords, 1000)

	for _, c := range coords {
		assert.NoError(t, c.Validate())
	}

	assert.Equal(t, coords, Coordinates(1000, 7))
	assert.NotEqual(t, coords, Coordinates(1000, 8))
	assert.Empty(t, Coordinates(0, 7))
	assert.Empty(t, Coordinates(-1, 7))
	assert.Len(t, Coordinates(1, 7), 1)
}

func TestHashes(t *testing.T) {
	coords := Coordinates(500, 1)
	hashes, err := Hashes(coords, 6)
	require.NoError(t, err)
	require.Len(t, hashes, len(coords))

	for i, h := range hashes {
		assert.Len(t, h, 6)
		r, err := geohash.Decode(h)
		require.NoError(t, err)
		assert.True(t, r.ContainsCoordinate(coords[i]), "%s should contain %v", h, coords[i])
	}

	_, err = Hashes(coords, 13)
	assert.ErrorIs(t, err, models.ErrMalformed)

	hashes, err = Hashes(nil, 6)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}
