package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidValue is returned for out-of-range coordinates, characters outside
	// the geohash alphabet and symbols above 31
	ErrInvalidValue = errors.New("invalid value")
	// ErrMalformed is returned for precision requests that cannot be expressed
	// as whole geohash characters
	ErrMalformed = errors.New("malformed")
)

// Coordinate represents a geographic location with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// NewCoordinate creates a coordinate, rejecting values outside [-90,90] x [-180,180]
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate checks that the coordinate lies on the lat/lng grid
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range: %w", c.Lat, ErrInvalidValue)
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range: %w", c.Lng, ErrInvalidValue)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}
