package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	testCases := []struct {
		name  string
		lat   float64
		lng   float64
		valid bool
	}{
		{"origin", 0, 0, true},
		{"north east corner", 90, 180, true},
		{"south west corner", -90, -180, true},
		{"Madrid", 40.4168, -3.7038, true},
		{"latitude too high", 90.0001, 0, false},
		{"latitude too low", -91, 0, false},
		{"longitude too high", 0, 180.5, false},
		{"longitude too low", 0, -200, false},
		{"NaN latitude", math.NaN(), 0, false},
		{"NaN longitude", 0, math.NaN(), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCoordinate(tc.lat, tc.lng)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Coordinate{Lat: tc.lat, Lng: tc.lng}, c)
		})
	}
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "10,20", Coordinate{Lat: 10, Lng: 20}.String())
	assert.Equal(t, "-33.8688,151.2093", Coordinate{Lat: -33.8688, Lng: 151.2093}.String())
}
