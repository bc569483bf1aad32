// Package cellindex implements a thread-safe R-Tree over decoded geohash cells,
// partitioned into longitude bands so that inserts and queries run in parallel
package cellindex

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"
	"github.com/kass/go-geohash/pkg/geo"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2

	nearestStartKm = 10.0
	nearestGrowth  = 4
)

// maxRadiusKm is half the Earth's circumference; no two points are farther apart
var maxRadiusKm = math.Pi * geo.EarthRadius

// cell wraps a decoded geohash to implement the rtreego.Spatial interface
type cell struct {
	hash   string
	region geohash.Region
	rect   rtreego.Rect
}

func (c *cell) Bounds() rtreego.Rect {
	return c.rect
}

func newCell(hash string) (*cell, error) {
	region, err := geohash.Decode(hash)
	if err != nil {
		return nil, err
	}
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{region.South(), region.West()},
		rtreego.Point{region.North(), region.East()},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build bounds for %q: %w", hash, err)
	}
	return &cell{hash: strings.ToLower(hash), region: region, rect: rect}, nil
}

// extent tracks the longitude range actually covered by the cells of one partition.
// Cells are routed by their center, so a wide cell can reach past its band.
type extent struct {
	west, east float64
}

func (e extent) empty() bool {
	return e.west > e.east
}

func (e *extent) include(r geohash.Region) {
	e.west = math.Min(e.west, r.West())
	e.east = math.Max(e.east, r.East())
}

func emptyExtent() extent {
	return extent{west: math.Inf(1), east: math.Inf(-1)}
}

// Index represents a thread-safe R-Tree based index of geohash cells
type Index struct {
	partitions    []*rtreego.Rtree
	extents       []extent
	numPartitions int
	hashes        map[string]struct{}
	mu            sync.RWMutex
	itemCount     atomic.Int64
}

// New creates a cell index with one partition per CPU
func New() *Index {
	return NewWithPartitions(runtime.NumCPU())
}

// NewWithPartitions creates a cell index with the given number of longitude bands
func NewWithPartitions(numPartitions int) *Index {
	if numPartitions <= 0 {
		numPartitions = runtime.NumCPU()
	}

	idx := &Index{numPartitions: numPartitions}
	idx.reset()
	return idx
}

func (idx *Index) reset() {
	idx.partitions = make([]*rtreego.Rtree, idx.numPartitions)
	idx.extents = make([]extent, idx.numPartitions)
	for i := range idx.partitions {
		idx.partitions[i] = rtreego.NewTree(dimensions, minChildren, maxChildren)
		idx.extents[i] = emptyExtent()
	}
	idx.hashes = make(map[string]struct{})
	idx.itemCount.Store(0)
}

func (idx *Index) partitionFor(lng float64) int {
	band := 360.0 / float64(idx.numPartitions)
	i := int((lng + 180.0) / band)
	if i >= idx.numPartitions {
		i = idx.numPartitions - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Add decodes and indexes the given hashes. Hashes already present are skipped.
// If any hash is invalid nothing is inserted.
func (idx *Index) Add(hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}

	cells := make([]*cell, 0, len(hashes))
	for _, h := range hashes {
		c, err := newCell(h)
		if err != nil {
			return fmt.Errorf("failed to add cells: %w", err)
		}
		cells = append(cells, c)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Group cells by partition
	partitioned := make([][]*cell, idx.numPartitions)
	for _, c := range cells {
		if _, ok := idx.hashes[c.hash]; ok {
			continue
		}
		idx.hashes[c.hash] = struct{}{}
		p := idx.partitionFor(c.region.Center().Lng)
		partitioned[p] = append(partitioned[p], c)
	}

	// Insert into partitions in parallel
	var wg sync.WaitGroup
	for i := 0; i < idx.numPartitions; i++ {
		if len(partitioned[i]) == 0 {
			continue
		}

		wg.Add(1)
		go func(p int, items []*cell) {
			defer wg.Done()

			for _, item := range items {
				idx.partitions[p].Insert(item)
				idx.extents[p].include(item.region)
			}
			idx.itemCount.Add(int64(len(items)))
		}(i, partitioned[i])
	}

	wg.Wait()
	return nil
}

// relevantPartitions returns the partitions whose cells may overlap [west, east]
func (idx *Index) relevantPartitions(west, east float64) []int {
	var relevant []int
	for i, e := range idx.extents {
		if e.empty() {
			continue
		}
		if west <= e.east && east >= e.west {
			relevant = append(relevant, i)
		}
	}
	return relevant
}

// collect runs a bounding-box search over the relevant partitions in parallel and
// returns the cells accepted by keep
func (idx *Index) collect(r geohash.Region, keep func(*cell) bool) []*cell {
	relevant := idx.relevantPartitions(r.West(), r.East())
	if len(relevant) == 0 {
		return nil
	}

	// Widen the box slightly: rtreego does not report rectangles that only touch
	bounds, _ := rtreego.NewRectFromPoints(
		rtreego.Point{r.South() - tolerance, r.West() - tolerance},
		rtreego.Point{r.North() + tolerance, r.East() + tolerance},
	)

	resultsChan := make(chan []*cell, len(relevant))
	for _, p := range relevant {
		go func(p int) {
			var found []*cell
			for _, result := range idx.partitions[p].SearchIntersect(bounds) {
				item, ok := result.(*cell)
				if !ok || !keep(item) {
					continue
				}
				found = append(found, item)
			}
			resultsChan <- found
		}(p)
	}

	var all []*cell
	for range relevant {
		all = append(all, <-resultsChan...)
	}
	return all
}

// search returns the hashes of the cells in r accepted by keep, sorted
func (idx *Index) search(r geohash.Region, keep func(*cell) bool) []string {
	cells := idx.collect(r, keep)
	if len(cells) == 0 {
		return nil
	}

	hashes := make([]string, len(cells))
	for i, item := range cells {
		hashes[i] = item.hash
	}
	sort.Strings(hashes)
	return hashes
}

// Containing returns the stored cells covering c, edges included, sorted by hash
func (idx *Index) Containing(c models.Coordinate) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.search(geohash.FromCoordinate(c), func(item *cell) bool {
		return item.region.ContainsCoordinate(c)
	})
}

// Intersecting returns the stored cells sharing at least one point with r, sorted by hash
func (idx *Index) Intersecting(r geohash.Region) ([]string, error) {
	r, err := geohash.NewRegion(r.TopLeft, r.BottomRight)
	if err != nil {
		return nil, fmt.Errorf("failed to query region: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.search(r, func(item *cell) bool {
		return r.Intersects(item.region)
	}), nil
}

// Nearest returns up to n stored cells ordered by the great-circle distance from c
// to their centers, ties broken by hash
func (idx *Index) Nearest(c models.Coordinate, n int) []string {
	if n <= 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// Every center outside the radius is farther than every center inside it, so
	// once n centers are inside, the n nearest are among them
	radius := nearestStartKm
	if int64(n) >= idx.itemCount.Load() {
		radius = maxRadiusKm
	}
	for {
		found := idx.withinRadius(c, radius)
		if len(found) >= n || radius >= maxRadiusKm {
			sort.Slice(found, func(i, j int) bool {
				if found[i].distance != found[j].distance {
					return found[i].distance < found[j].distance
				}
				return found[i].hash < found[j].hash
			})
			if len(found) > n {
				found = found[:n]
			}

			hashes := make([]string, len(found))
			for i, r := range found {
				hashes[i] = r.hash
			}
			return hashes
		}
		radius = math.Min(radius*nearestGrowth, maxRadiusKm)
	}
}

// Hashes returns every stored hash in lexical order
func (idx *Index) Hashes() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hashes := make([]string, 0, len(idx.hashes))
	for h := range idx.hashes {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	return hashes
}

// Count returns the number of indexed cells
func (idx *Index) Count() int64 {
	return idx.itemCount.Load()
}

// Clear removes all cells from the index
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reset()
}

// WithinRadius returns the stored cells whose centers lie within radiusKm of c,
// sorted by hash
func (idx *Index) WithinRadius(c models.Coordinate, radiusKm float64) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	found := idx.withinRadius(c, radiusKm)
	if len(found) == 0 {
		return nil
	}

	hashes := make([]string, len(found))
	for i, r := range found {
		hashes[i] = r.hash
	}
	sort.Strings(hashes)
	return hashes
}

type rankedCell struct {
	hash     string
	distance float64
}

// withinRadius collects the cells whose centers lie within radiusKm of c together
// with their distances. The caller holds the read lock.
func (idx *Index) withinRadius(c models.Coordinate, radiusKm float64) []rankedCell {
	everything := radiusKm >= maxRadiusKm
	keep := func(item *cell) bool {
		return everything || geo.Distance(c, item.region.Center()) <= radiusKm
	}

	var found []rankedCell
	seen := make(map[string]struct{})
	for _, box := range geo.RadiusBoxes(c, radiusKm) {
		for _, item := range idx.collect(box, keep) {
			if _, ok := seen[item.hash]; ok {
				continue
			}
			seen[item.hash] = struct{}{}
			found = append(found, rankedCell{
				hash:     item.hash,
				distance: geo.Distance(c, item.region.Center()),
			})
		}
	}
	return found
}
