package main

import (
	"fmt"
	"log"

	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/geo"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
)

func main() {
	cities := []struct {
		id  string
		lat float64
		lng float64
	}{
		{"NYC", 40.7128, -74.0060},
		{"LAX", 34.0522, -118.2437},
		{"CHI", 41.8781, -87.6298},
		{"HOU", 29.7604, -95.3698},
		{"PHX", 33.4484, -112.0740},
		{"PHL", 39.9526, -75.1652},
		{"SAT", 29.4241, -98.4936},
		{"SDG", 32.7157, -117.1611},
		{"DAL", 32.7767, -96.7970},
		{"SJC", 37.3382, -121.8863},
		{"AUS", 30.2672, -97.7431},
		{"SFO", 37.7749, -122.4194},
	}

	// Example 1: Encode coordinates
	fmt.Println("=== City geohashes ===")
	hashes := make([]string, 0, len(cities))
	names := make(map[string]string)
	for _, city := range cities {
		c, err := models.NewCoordinate(city.lat, city.lng)
		if err != nil {
			log.Fatal(err)
		}
		hash, err := geohash.FromCoordinate(c).HashWithMaxLength(6)
		if err != nil {
			log.Fatal(err)
		}
		hashes = append(hashes, hash)
		names[hash] = city.id
		fmt.Printf("  - %s: %s\n", city.id, hash)
	}

	// Example 2: Decode a hash back into its cell
	fmt.Println("\n=== Decoding ezs42 ===")
	cell, err := geohash.Decode("ezs42")
	if err != nil {
		log.Fatal(err)
	}
	width, height := geo.CellSize(cell)
	fmt.Printf("  Center: %v\n", cell.Center())
	fmt.Printf("  Bounds: N %v, S %v, W %v, E %v\n", cell.North(), cell.South(), cell.West(), cell.East())
	fmt.Printf("  Size: %.2f km x %.2f km\n", width, height)

	// Example 3: Inner and outer hash of a region
	fmt.Println("\n=== Covering California ===")
	california, err := geohash.NewRegion(
		models.Coordinate{Lat: 42.0, Lng: -124.5},
		models.Coordinate{Lat: 32.5, Lng: -114.0},
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Inner hash (inside the region): %q\n", california.InnerHash())
	fmt.Printf("  Outer hash (contains the region): %q\n", california.OuterHash())

	// Example 4: Index the cells and query them
	index := cellindex.New()
	if err := index.Add(hashes); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nIndexed %d cells\n", index.Count())

	fmt.Println("\n=== Cells in California ===")
	found, err := index.Intersecting(california)
	if err != nil {
		log.Fatal(err)
	}
	for _, h := range found {
		fmt.Printf("  - %s (%s)\n", names[h], h)
	}

	fmt.Println("\n=== Cells within 500km of Dallas ===")
	dallas := models.Coordinate{Lat: 32.7767, Lng: -96.7970}
	for _, h := range index.WithinRadius(dallas, 500) {
		center, _ := geohash.Decode(h)
		fmt.Printf("  - %s (%s): %.1f km\n", names[h], h, geo.Distance(dallas, center.Center()))
	}

	fmt.Println("\n=== 3 cells nearest to Chicago ===")
	chicago := models.Coordinate{Lat: 41.8781, Lng: -87.6298}
	for i, h := range index.Nearest(chicago, 3) {
		fmt.Printf("  %d. %s (%s)\n", i+1, names[h], h)
	}
}
