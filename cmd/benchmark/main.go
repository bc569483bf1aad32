package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/logging"
	"github.com/kass/go-geohash/pkg/models"
	"github.com/kass/go-geohash/pkg/ui"
)

func randomCoordinate(r *rand.Rand) models.Coordinate {
	return models.Coordinate{Lat: r.Float64()*180 - 90, Lng: r.Float64()*360 - 180}
}

func randomRegion(r *rand.Rand, maxSize float64) geohash.Region {
	c := randomCoordinate(r)
	height := r.Float64() * maxSize
	width := r.Float64() * maxSize
	return geohash.Region{
		TopLeft:     models.Coordinate{Lat: min(c.Lat+height, 90), Lng: c.Lng},
		BottomRight: models.Coordinate{Lat: c.Lat, Lng: min(c.Lng+width, 180)},
	}
}

func randomHash(r *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = geohash.Alphabet[r.Intn(len(geohash.Alphabet))]
	}
	return string(b)
}

// operations returns the benchmarkable operations by name
func operations(length int, regionSize float64, index *cellindex.Index) map[string]operation {
	ops := map[string]operation{
		"encode": func(r *rand.Rand) (int, error) {
			h, err := geohash.FromCoordinate(randomCoordinate(r)).HashWithMaxLength(length)
			return len(h), err
		},
		"decode": func(r *rand.Rand) (int, error) {
			_, err := geohash.Decode(randomHash(r, length))
			return 1, err
		},
		"inner": func(r *rand.Rand) (int, error) {
			return len(randomRegion(r, regionSize).InnerHash()), nil
		},
		"outer": func(r *rand.Rand) (int, error) {
			return len(randomRegion(r, regionSize).OuterHash()), nil
		},
	}
	if index != nil {
		ops["contains"] = func(r *rand.Rand) (int, error) {
			return len(index.Containing(randomCoordinate(r))), nil
		}
	}
	return ops
}

func main() {
	var (
		configFile = flag.String("config", "", "Config file (default config.yaml, then config.yaml.example)")
		opName     = flag.String("t", "encode", "Operation: encode, decode, inner, outer, contains, all")
		numOps     = flag.Int("n", 1000000, "Number of operations to run")
		workers    = flag.Int("w", runtime.NumCPU(), "Number of concurrent workers")
		length     = flag.Int("length", 0, "Geohash length for encode/decode (default from config)")
		regionSize = flag.Float64("region-size", 1.0, "Maximum region side in degrees (inner/outer)")
		indexFile  = flag.String("i", "", "Index file for the contains benchmark")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	if err := validateFlags(*numOps, *workers); err != nil {
		slog.Error("Invalid arguments", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if *length == 0 {
		*length = cfg.Geohash.Precision
	}

	p := ui.NewPrinter(os.Stdout)

	var index *cellindex.Index
	if *indexFile != "" {
		index = cellindex.NewWithPartitions(cfg.Index.Partitions)
		if err := index.LoadFromFile(*indexFile); err != nil {
			slog.Error("Failed to load index", "file", *indexFile, "error", err)
			os.Exit(1)
		}
		p.Info(fmt.Sprintf("Loaded %d cells from %s", index.Count(), *indexFile))
	}

	ops := operations(*length, *regionSize, index)
	names := []string{*opName}
	if *opName == "all" {
		names = []string{"encode", "decode", "inner", "outer"}
		if index != nil {
			names = append(names, "contains")
		}
	}

	for _, name := range names {
		op, ok := ops[name]
		if !ok {
			slog.Error("Unknown operation", "operation", name)
			os.Exit(1)
		}

		slog.Info("Running benchmark", "operation", name, "ops", *numOps, "workers", *workers)
		printResult(p, runBenchmark(name, *numOps, *workers, *seed, op))
	}
	p.Subtitle("Environment")
	p.Stat("Workers Used", *workers)
	p.Stat("CPU Cores", runtime.NumCPU())
}

func validateFlags(numOps, workers int) error {
	if numOps < 0 {
		return fmt.Errorf("number of operations must not be negative, got %d", numOps)
	}
	if workers < 1 {
		return fmt.Errorf("need at least one worker, got %d", workers)
	}
	return nil
}

func printResult(p *ui.Printer, result BenchmarkResult) {
	p.Title(fmt.Sprintf("Benchmark: %s", result.Operation))
	p.Stat("Total Operations", result.TotalOps)
	p.Stat("Total Duration", result.TotalDuration)
	p.Stat("Average Duration", result.AvgDuration)
	p.Stat("Operations/Second", fmt.Sprintf("%.2f", result.OpsPerSec))
	p.Stat("Min Duration", result.MinDuration)
	p.Stat("Max Duration", result.MaxDuration)
	p.Stat("Avg Results/Operation", fmt.Sprintf("%.2f", result.AvgResults))
	if result.Errors > 0 {
		p.Error(fmt.Sprintf("%d operations failed", result.Errors))
	}
}
