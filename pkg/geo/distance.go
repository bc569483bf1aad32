// Package geo provides great-circle measurements for coordinates and geohash cells
package geo

import (
	"math"

	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
)

// EarthRadius is the mean Earth radius in kilometers
const EarthRadius = 6371.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance calculates the Haversine distance between two coordinates in kilometers
func Distance(a, b models.Coordinate) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	h = math.Min(h, 1)

	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CellSize returns the east-west and north-south extent of a region in kilometers,
// with the width measured along the region's center latitude
func CellSize(r geohash.Region) (widthKm, heightKm float64) {
	center := r.Center()
	widthKm = Distance(
		models.Coordinate{Lat: center.Lat, Lng: r.West()},
		models.Coordinate{Lat: center.Lat, Lng: r.East()},
	)
	heightKm = Distance(
		models.Coordinate{Lat: r.South(), Lng: center.Lng},
		models.Coordinate{Lat: r.North(), Lng: center.Lng},
	)
	return widthKm, heightKm
}

// DegreesForDistance converts a distance along a meridian to degrees of latitude
func DegreesForDistance(km float64) float64 {
	return (km / EarthRadius) * (180 / math.Pi)
}

// RadiusBoxes returns latitude/longitude boxes that together cover every point within
// radiusKm of c. The longitude half-width is the widest a spherical cap reaches,
// asin(sin(d/R)/cos(lat)), and spans the whole globe once the cap reaches a pole.
// A box that crosses the antimeridian is split in two.
func RadiusBoxes(c models.Coordinate, radiusKm float64) []geohash.Region {
	if !(radiusKm >= 0) {
		return nil
	}

	angular := radiusKm / EarthRadius
	latDeg := angular * 180 / math.Pi
	north, south := c.Lat+latDeg, c.Lat-latDeg
	if north >= 90 || south <= -90 {
		return []geohash.Region{box(math.Min(north, 90), -180, math.Max(south, -90), 180)}
	}

	lngDeg := math.Asin(math.Sin(angular)/math.Cos(radians(c.Lat))) * 180 / math.Pi
	west, east := c.Lng-lngDeg, c.Lng+lngDeg
	switch {
	case west < -180:
		return []geohash.Region{
			box(north, -180, south, east),
			box(north, west+360, south, 180),
		}
	case east > 180:
		return []geohash.Region{
			box(north, -180, south, east-360),
			box(north, west, south, 180),
		}
	}
	return []geohash.Region{box(north, west, south, east)}
}

func box(north, west, south, east float64) geohash.Region {
	return geohash.Region{
		TopLeft:     models.Coordinate{Lat: north, Lng: west},
		BottomRight: models.Coordinate{Lat: south, Lng: east},
	}
}
