// Package geohash converts between lat/lng rectangles and geohash strings.
//
// A geohash interleaves the bits of two binary subdivisions, longitude first,
// and packs every 5 bits into one character of Alphabet. A hash of n characters
// therefore names one cell of a 2^ceil(5n/2) x 2^floor(5n/2) grid laid over
// the globe.
package geohash

import (
	"fmt"

	"github.com/kass/go-geohash/pkg/models"
)

const (
	// MaxLength is the longest hash the encoder produces
	MaxLength = 12
	// MaxBits is the largest precision accepted by Encode
	MaxBits = MaxLength * bitsPerChar

	bitsPerChar = 5

	minLat, maxLat = -90.0, 90.0
	minLng, maxLng = -180.0, 180.0
)

// Region is an axis-aligned lat/lng rectangle. TopLeft holds the northern and
// western edges, BottomRight the southern and eastern ones. Regions do not wrap
// around the antimeridian.
type Region struct {
	TopLeft     models.Coordinate `json:"top_left"`
	BottomRight models.Coordinate `json:"bottom_right"`
}

// Globe returns the region covering the whole lat/lng grid
func Globe() Region {
	return Region{
		TopLeft:     models.Coordinate{Lat: maxLat, Lng: minLng},
		BottomRight: models.Coordinate{Lat: minLat, Lng: maxLng},
	}
}

// NewRegion builds a region from its north-west and south-east corners.
// Corners given in the wrong order, including boxes that would cross the
// antimeridian, are rejected.
func NewRegion(topLeft, bottomRight models.Coordinate) (Region, error) {
	if err := topLeft.Validate(); err != nil {
		return Region{}, fmt.Errorf("top left corner: %w", err)
	}
	if err := bottomRight.Validate(); err != nil {
		return Region{}, fmt.Errorf("bottom right corner: %w", err)
	}
	if topLeft.Lat < bottomRight.Lat {
		return Region{}, fmt.Errorf("north edge %v below south edge %v: %w",
			topLeft.Lat, bottomRight.Lat, models.ErrInvalidValue)
	}
	if topLeft.Lng > bottomRight.Lng {
		return Region{}, fmt.Errorf("west edge %v east of east edge %v: %w",
			topLeft.Lng, bottomRight.Lng, models.ErrInvalidValue)
	}
	return Region{TopLeft: topLeft, BottomRight: bottomRight}, nil
}

// FromCoordinate returns the zero-size region at c
func FromCoordinate(c models.Coordinate) Region {
	return Region{TopLeft: c, BottomRight: c}
}

// Center returns the midpoint of the two corners
func (r Region) Center() models.Coordinate {
	return models.Coordinate{
		Lat: (r.TopLeft.Lat + r.BottomRight.Lat) / 2,
		Lng: (r.TopLeft.Lng + r.BottomRight.Lng) / 2,
	}
}

// Height returns the signed vertical span, negative for any non-empty region
func (r Region) Height() float64 {
	return r.BottomRight.Lat - r.TopLeft.Lat
}

// Width returns the horizontal span
func (r Region) Width() float64 {
	return r.BottomRight.Lng - r.TopLeft.Lng
}

// North, South, West and East name the edges.
func (r Region) North() float64 { return r.TopLeft.Lat }
func (r Region) South() float64 { return r.BottomRight.Lat }
func (r Region) West() float64  { return r.TopLeft.Lng }
func (r Region) East() float64  { return r.BottomRight.Lng }

// Contains reports whether other lies inside r, edges included
func (r Region) Contains(other Region) bool {
	return r.South() <= other.South() && other.North() <= r.North() &&
		r.West() <= other.West() && other.East() <= r.East()
}

// ContainsCoordinate reports whether c lies inside r, edges included
func (r Region) ContainsCoordinate(c models.Coordinate) bool {
	return r.Contains(FromCoordinate(c))
}

// Within reports whether r lies inside other
func (r Region) Within(other Region) bool {
	return other.Contains(r)
}

// Intersects reports whether r and other share at least one point
func (r Region) Intersects(other Region) bool {
	return r.South() <= other.North() && other.South() <= r.North() &&
		r.West() <= other.East() && other.West() <= r.East()
}

// String returns the outer hash, the longest hash whose cell contains r
func (r Region) String() string {
	return r.OuterHash()
}
