package geohash

import (
	"math/rand"
	"testing"

	"github.com/kass/go-geohash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func region(north, west, south, east float64) Region {
	return Region{
		TopLeft:     models.Coordinate{Lat: north, Lng: west},
		BottomRight: models.Coordinate{Lat: south, Lng: east},
	}
}

func TestInnerOuterOfCell(t *testing.T) {
	for _, hash := range []string{"s", "ez", "u33d", "ezs42", "9q8yy", "dr5regw3", "000000000000", "zzzzzzzzzzzz"} {
		t.Run(hash, func(t *testing.T) {
			r, err := Decode(hash)
			require.NoError(t, err)
			assert.Equal(t, hash, r.InnerHash())
			assert.Equal(t, hash, r.OuterHash())
			assert.Equal(t, hash, r.String())
		})
	}
}

func TestInnerOuterKnownRegions(t *testing.T) {
	testCases := []struct {
		name  string
		r     Region
		inner string
		outer string
	}{
		{"berlin", region(52.6, 13.0, 52.3, 13.8), "u33d2", "u33"},
		{"philadelphia", region(40.0, -75.0, 39.0, -74.0), "dr50", "d"},
		{"greater london straddles the prime meridian", region(51.7, -0.5, 51.3, 0.3), "gcpu", ""},
		{"straddles the equator", region(1, -10, -1, 10), "s000", ""},
		{"globe", Globe(), "s", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inner, tc.r.InnerHash())
			assert.Equal(t, tc.outer, tc.r.OuterHash())
			assert.Equal(t, tc.outer, tc.r.String())
		})
	}
}

func TestPointRegion(t *testing.T) {
	r := FromCoordinate(models.Coordinate{Lat: 42.6, Lng: -5.6})

	assert.Equal(t, MaxBits, r.InnerBits())
	assert.Equal(t, MaxBits, r.OuterBits())
	assert.Equal(t, "ezs42e44yx96", r.String())
	assert.Equal(t, "ezs42e44yx96", r.InnerHash())

	cell, err := Decode(r.OuterHash())
	require.NoError(t, err)
	assert.True(t, cell.Contains(r))
}

func TestCrossesChunks(t *testing.T) {
	testCases := []struct {
		name       string
		r          Region
		bits       int
		horizontal bool
		vertical   bool
	}{
		{"globe at depth 0", Globe(), 0, false, false},
		{"globe at depth 1", Globe(), 1, true, true},
		{"exact cell", region(45, -180, 0, -90), 2, false, false},
		{"exact cell one level deeper", region(45, -180, 0, -90), 3, true, true},
		{"straddles origin", region(1, -1, -1, 1), 1, true, true},
		{"east of origin", region(1, 0, 0, 1), 1, false, false},
		{"point on a boundary", region(0, 0, 0, 0), 5, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.horizontal, tc.r.CrossesHorizontalChunks(tc.bits))
			assert.Equal(t, tc.vertical, tc.r.CrossesVerticalChunks(tc.bits))
		})
	}
}

func TestContainmentProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20000; i++ {
		lat := rng.Float64()*160 - 80
		lng := rng.Float64()*340 - 170
		h := rng.Float64()*20 + 1e-4
		w := rng.Float64()*20 + 1e-4
		r := region(lat+h/2, lng-w/2, lat-h/2, lng+w/2)

		inner, err := Decode(r.InnerHash())
		require.NoError(t, err)
		require.True(t, inner.Within(r), "inner hash %q of %+v", r.InnerHash(), r)

		outer, err := Decode(r.OuterHash())
		require.NoError(t, err)
		require.True(t, outer.Contains(r), "outer hash %q of %+v", r.OuterHash(), r)

		assert.LessOrEqual(t, len(r.OuterHash()), len(r.InnerHash()))
	}
}

func TestOuterHashIsLongest(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 2000; i++ {
		lat := rng.Float64()*160 - 80
		lng := rng.Float64()*340 - 170
		h := rng.Float64() + 1e-4
		w := rng.Float64() + 1e-4
		r := region(lat+h/2, lng-w/2, lat-h/2, lng+w/2)

		bits := r.OuterBits()
		if bits == MaxBits {
			continue
		}
		longer, err := r.HashWithPrecision(bits + 5)
		require.NoError(t, err)
		cell, err := Decode(longer)
		require.NoError(t, err)
		assert.False(t, cell.Contains(r), "%q also contains %+v", longer, r)
	}
}

func BenchmarkInnerHash(b *testing.B) {
	r := region(52.6, 13.0, 52.3, 13.8)
	for i := 0; i < b.N; i++ {
		_ = r.InnerHash()
	}
}

func BenchmarkOuterHash(b *testing.B) {
	r := region(52.6, 13.0, 52.3, 13.8)
	for i := 0; i < b.N; i++ {
		_ = r.OuterHash()
	}
}
