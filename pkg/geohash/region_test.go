package geohash

import (
	"testing"

	"github.com/kass/go-geohash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobe(t *testing.T) {
	g := Globe()
	assert.Equal(t, models.Coordinate{Lat: 90, Lng: -180}, g.TopLeft)
	assert.Equal(t, models.Coordinate{Lat: -90, Lng: 180}, g.BottomRight)
	assert.Equal(t, models.Coordinate{Lat: 0, Lng: 0}, g.Center())
	assert.Equal(t, -180.0, g.Height())
	assert.Equal(t, 360.0, g.Width())
}

func TestNewRegion(t *testing.T) {
	testCases := []struct {
		name        string
		topLeft     models.Coordinate
		bottomRight models.Coordinate
		valid       bool
	}{
		{"california", models.Coordinate{Lat: 42, Lng: -124.5}, models.Coordinate{Lat: 32.5, Lng: -114}, true},
		{"single point", models.Coordinate{Lat: 10, Lng: 20}, models.Coordinate{Lat: 10, Lng: 20}, true},
		{"globe", models.Coordinate{Lat: 90, Lng: -180}, models.Coordinate{Lat: -90, Lng: 180}, true},
		{"north below south", models.Coordinate{Lat: 10, Lng: 0}, models.Coordinate{Lat: 20, Lng: 10}, false},
		{"crosses antimeridian", models.Coordinate{Lat: 10, Lng: 170}, models.Coordinate{Lat: 0, Lng: -170}, false},
		{"corner off the grid", models.Coordinate{Lat: 95, Lng: 0}, models.Coordinate{Lat: 0, Lng: 10}, false},
		{"second corner off the grid", models.Coordinate{Lat: 10, Lng: 0}, models.Coordinate{Lat: 0, Lng: 190}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegion(tc.topLeft, tc.bottomRight)
			if !tc.valid {
				assert.ErrorIs(t, err, models.ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.topLeft, r.TopLeft)
			assert.Equal(t, tc.bottomRight, r.BottomRight)
		})
	}
}

func TestRegionDerived(t *testing.T) {
	r, err := NewRegion(models.Coordinate{Lat: 40, Lng: -75}, models.Coordinate{Lat: 39, Lng: -73})
	require.NoError(t, err)

	assert.Equal(t, models.Coordinate{Lat: 39.5, Lng: -74}, r.Center())
	assert.Equal(t, -1.0, r.Height())
	assert.Equal(t, 2.0, r.Width())
	assert.Equal(t, 40.0, r.North())
	assert.Equal(t, 39.0, r.South())
	assert.Equal(t, -75.0, r.West())
	assert.Equal(t, -73.0, r.East())
}

func TestFromCoordinate(t *testing.T) {
	c := models.Coordinate{Lat: 48.8566, Lng: 2.3522}
	r := FromCoordinate(c)

	assert.Equal(t, c, r.Center())
	assert.Zero(t, r.Height())
	assert.Zero(t, r.Width())
	assert.True(t, r.ContainsCoordinate(c))
}

func TestContainsAndIntersects(t *testing.T) {
	outer := Region{
		TopLeft:     models.Coordinate{Lat: 50, Lng: -10},
		BottomRight: models.Coordinate{Lat: 40, Lng: 10},
	}
	inner := Region{
		TopLeft:     models.Coordinate{Lat: 45, Lng: -5},
		BottomRight: models.Coordinate{Lat: 41, Lng: 5},
	}
	overlapping := Region{
		TopLeft:     models.Coordinate{Lat: 55, Lng: 5},
		BottomRight: models.Coordinate{Lat: 45, Lng: 15},
	}
	disjoint := Region{
		TopLeft:     models.Coordinate{Lat: 30, Lng: 20},
		BottomRight: models.Coordinate{Lat: 20, Lng: 30},
	}

	assert.True(t, outer.Contains(inner))
	assert.True(t, inner.Within(outer))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))
	assert.False(t, outer.Contains(overlapping))

	assert.True(t, outer.Intersects(overlapping))
	assert.True(t, overlapping.Intersects(outer))
	assert.False(t, outer.Intersects(disjoint))

	assert.True(t, outer.ContainsCoordinate(models.Coordinate{Lat: 50, Lng: 10}))
	assert.False(t, outer.ContainsCoordinate(models.Coordinate{Lat: 50.1, Lng: 0}))
}
