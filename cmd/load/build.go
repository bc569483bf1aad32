package main

import (
	"fmt"

	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/sample"
	"github.com/kass/go-geohash/pkg/ui"
)

// progressSteps is how many times each stage redraws its progress bar
const progressSteps = 100

func stepSize(n int) int {
	return max(n/progressSteps, 1)
}

// encode generates n sample points and encodes them at the given length
func encode(p *ui.Printer, n int, seed int64, length int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("number of points must not be negative, got %d", n)
	}

	coords := sample.Coordinates(n, seed)
	hashes := make([]string, 0, n)
	step := stepSize(n)
	for start := 0; start < n; start += step {
		end := min(start+step, n)
		batch, err := sample.Hashes(coords[start:end], length)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, batch...)
		p.Progress(end, n, "Encoding")
	}
	return hashes, nil
}

// build indexes hashes in batches
func build(p *ui.Printer, hashes []string, partitions int) (*cellindex.Index, error) {
	index := cellindex.NewWithPartitions(partitions)
	step := stepSize(len(hashes))
	for start := 0; start < len(hashes); start += step {
		end := min(start+step, len(hashes))
		if err := index.Add(hashes[start:end]); err != nil {
			return nil, err
		}
		p.Progress(end, len(hashes), "Indexing")
	}
	return index, nil
}
