// Package sample generates synthetic coordinates for loading and benchmarking
package sample

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
)

// Coordinates generates n coordinates, concentrated around populated continents,
// using one goroutine per CPU. The same seed always yields the same coordinates.
func Coordinates(n int, seed int64) []models.Coordinate {
	if n <= 0 {
		return []models.Coordinate{}
	}
	coords := make([]models.Coordinate, n)

	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}
	batchSize := n / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * batchSize
		end := start + batchSize
		if w == numWorkers-1 {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				// Per-index source so the output does not depend on the CPU count
				coords[i] = coordinate(rand.New(rand.NewSource(seed + int64(i))))
			}
		}(start, end)
	}

	wg.Wait()
	return coords
}

func coordinate(r *rand.Rand) models.Coordinate {
	var lat, lng float64
	switch r.Intn(5) {
	case 0: // North America
		lat = r.Float64()*30 + 30
		lng = r.Float64()*60 - 120
	case 1: // Europe
		lat = r.Float64()*20 + 40
		lng = r.Float64()*40 - 10
	case 2: // Asia
		lat = r.Float64()*40 + 20
		lng = r.Float64()*80 + 60
	case 3: // South America
		lat = r.Float64()*40 - 50
		lng = r.Float64()*30 - 80
	default:
		lat = r.Float64()*180 - 90
		lng = r.Float64()*360 - 180
	}
	return models.Coordinate{Lat: lat, Lng: lng}
}

// Hashes encodes coords at the given length in parallel
func Hashes(coords []models.Coordinate, length int) ([]string, error) {
	hashes := make([]string, len(coords))
	errs := make([]error, runtime.NumCPU())

	var wg sync.WaitGroup
	batchSize := (len(coords) + len(errs) - 1) / len(errs)
	for w := range errs {
		start := w * batchSize
		if start >= len(coords) {
			break
		}
		end := min(start+batchSize, len(coords))

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				h, err := geohash.FromCoordinate(coords[i]).HashWithMaxLength(length)
				if err != nil {
					errs[w] = err
					return
				}
				hashes[i] = h
			}
		}(w, start, end)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return hashes, nil
}
