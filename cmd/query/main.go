package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/geo"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/logging"
	"github.com/kass/go-geohash/pkg/models"
	"github.com/kass/go-geohash/pkg/postgis"
	"github.com/kass/go-geohash/pkg/ui"
)

type result struct {
	Hash       string            `json:"hash"`
	Center     models.Coordinate `json:"center"`
	DistanceKm float64           `json:"distance_km,omitempty"`
}

func main() {
	var (
		configFile = flag.String("config", "", "Config file (default config.yaml, then config.yaml.example)")
		indexFile  = flag.String("i", "", "Index file path (default from config)")
		queryType  = flag.String("t", "contains", "Query type: contains, box, radius, nearest")
		// Box query parameters
		north = flag.Float64("north", 0, "North edge (box query)")
		south = flag.Float64("south", 0, "South edge (box query)")
		west  = flag.Float64("west", 0, "West edge (box query)")
		east  = flag.Float64("east", 0, "East edge (box query)")
		// Point query parameters
		lat    = flag.Float64("lat", 0, "Latitude (contains/radius/nearest query)")
		lng    = flag.Float64("lng", 0, "Longitude (contains/radius/nearest query)")
		radius = flag.Float64("radius", 10, "Radius in km (radius query)")
		k      = flag.Int("k", 10, "Number of nearest cells (nearest query)")
		// Output format
		outputJSON = flag.Bool("json", false, "Output results as JSON")
		limit      = flag.Int("limit", 100, "Maximum number of results to display")
		usePostGIS = flag.Bool("postgis", false, "Answer contains/box queries from PostGIS instead of the index file")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if *indexFile == "" {
		*indexFile = cfg.Index.File
	}

	point, err := models.NewCoordinate(*lat, *lng)
	if err != nil {
		slog.Error("Invalid query point", "error", err)
		os.Exit(1)
	}

	var hashes []string
	start := time.Now()
	if *usePostGIS {
		hashes, err = queryPostGIS(cfg.PostGIS, *queryType, point, *north, *west, *south, *east)
	} else {
		hashes, err = queryIndex(cfg, *indexFile, *queryType, point, *north, *west, *south, *east, *radius, *k)
	}
	if err != nil {
		slog.Error("Query failed", "type", *queryType, "error", err)
		os.Exit(1)
	}
	slog.Info("Query finished", "type", *queryType, "cells", len(hashes), "elapsed", time.Since(start))

	if len(hashes) > *limit {
		slog.Info("Showing first results only, use -limit to see more", "limit", *limit)
		hashes = hashes[:*limit]
	}

	results := make([]result, len(hashes))
	for i, h := range hashes {
		r, err := geohash.Decode(h)
		if err != nil {
			slog.Error("Stored hash does not decode", "hash", h, "error", err)
			os.Exit(1)
		}
		results[i] = result{Hash: h, Center: r.Center()}
		if *queryType == "radius" || *queryType == "nearest" {
			results[i].DistanceKm = geo.Distance(point, results[i].Center)
		}
	}

	if *outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			slog.Error("Failed to encode results", "error", err)
			os.Exit(1)
		}
		return
	}

	p := ui.NewPrinter(os.Stdout)
	p.Subtitle(fmt.Sprintf("%s query", *queryType))
	if len(results) == 0 {
		p.Info("No cells matched")
	}
	for i, r := range results {
		line := fmt.Sprintf("%d. %s: (%.6f, %.6f)", i+1, r.Hash, r.Center.Lat, r.Center.Lng)
		if r.DistanceKm > 0 {
			line += fmt.Sprintf(" - %.2f km", r.DistanceKm)
		}
		p.Line(line)
	}
}

func queryIndex(cfg config.Config, file, queryType string, point models.Coordinate,
	north, west, south, east, radius float64, k int) ([]string, error) {
	index := cellindex.NewWithPartitions(cfg.Index.Partitions)
	if err := index.LoadFromFile(file); err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	slog.Info("Index loaded", "file", file, "cells", index.Count())

	switch queryType {
	case "contains":
		return index.Containing(point), nil
	case "box":
		return index.Intersecting(box(north, west, south, east))
	case "radius":
		return index.WithinRadius(point, radius), nil
	case "nearest":
		return index.Nearest(point, k), nil
	}
	return nil, fmt.Errorf("unknown query type %q", queryType)
}

func queryPostGIS(cfg config.PostGIS, queryType string, point models.Coordinate,
	north, west, south, east float64) ([]string, error) {
	ctx := context.Background()
	store, err := postgis.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	switch queryType {
	case "contains":
		return store.Containing(ctx, point)
	case "box":
		return store.Intersecting(ctx, box(north, west, south, east))
	}
	return nil, fmt.Errorf("query type %q is not supported by PostGIS", queryType)
}

func box(north, west, south, east float64) geohash.Region {
	return geohash.Region{
		TopLeft:     models.Coordinate{Lat: north, Lng: west},
		BottomRight: models.Coordinate{Lat: south, Lng: east},
	}
}
