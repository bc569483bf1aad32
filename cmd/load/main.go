package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/logging"
	"github.com/kass/go-geohash/pkg/postgis"
	"github.com/kass/go-geohash/pkg/ui"
)

func main() {
	var (
		configFile = flag.String("config", "", "Config file (default config.yaml, then config.yaml.example)")
		numPoints  = flag.Int("n", 1000000, "Number of points to generate")
		outputFile = flag.String("o", "", "Output file path (default from config)")
		length     = flag.Int("length", 0, "Geohash length in characters (default from config)")
		partitions = flag.Int("p", -1, "Index partitions, 0 for one per CPU (default from config)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
		toPostGIS  = flag.Bool("postgis", false, "Also copy the cells into PostGIS")
	)
	flag.Parse()

	if *numPoints < 0 {
		slog.Error("Number of points must not be negative", "n", *numPoints)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if *outputFile == "" {
		*outputFile = cfg.Index.File
	}
	if *length == 0 {
		*length = cfg.Geohash.Precision
	}
	if *partitions < 0 {
		*partitions = cfg.Index.Partitions
	}

	if dir := filepath.Dir(*outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create output directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	p := ui.NewPrinter(os.Stdout)

	slog.Info("Generating points", "points", *numPoints, "length", *length, "seed", *seed)
	startTime := time.Now()
	hashes, err := encode(p, *numPoints, *seed, *length)
	if err != nil {
		slog.Error("Failed to encode points", "error", err)
		os.Exit(1)
	}
	slog.Info("Points encoded", "elapsed", time.Since(startTime))

	slog.Info("Building cell index")
	startTime = time.Now()

	index, err := build(p, hashes, *partitions)
	if err != nil {
		slog.Error("Failed to index cells", "error", err)
		os.Exit(1)
	}

	indexTime := time.Since(startTime)
	slog.Info("Index built",
		"elapsed", indexTime,
		"cells", index.Count(),
		"hashes_per_sec", float64(len(hashes))/indexTime.Seconds())

	startTime = time.Now()
	if err := index.SaveToFile(*outputFile); err != nil {
		slog.Error("Failed to save index", "file", *outputFile, "error", err)
		os.Exit(1)
	}
	if info, err := os.Stat(*outputFile); err == nil {
		slog.Info("Index saved",
			"file", *outputFile,
			"elapsed", time.Since(startTime),
			"size_mb", float64(info.Size())/(1024*1024))
	}

	if *toPostGIS {
		if err := copyToPostGIS(cfg.PostGIS, index.Hashes()); err != nil {
			slog.Error("Failed to copy cells to PostGIS", "error", err)
			os.Exit(1)
		}
	}
}

func copyToPostGIS(cfg config.PostGIS, hashes []string) error {
	ctx := context.Background()

	store, err := postgis.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	startTime := time.Now()
	if err := store.BulkInsert(ctx, hashes); err != nil {
		return err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	slog.Info("Cells copied to PostGIS",
		"elapsed", time.Since(startTime),
		"rows", stats["row_count"],
		"table_size", stats["table_size"],
		"index_size", stats["index_size"])
	return nil
}
