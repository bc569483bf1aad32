package geohash

import "math"

// fewestBits returns the smallest depth at which a cell of rng is no larger
// than span
func fewestBits(span, rng float64) int {
	b := 0
	for b < MaxBits && math.Ldexp(rng, -b) > span {
		b++
	}
	return b
}

// mostBits returns the largest depth at which a cell of rng is still at least
// as large as span
func mostBits(span, rng float64) int {
	b := 0
	for b < MaxBits && math.Ldexp(rng, -(b+1)) >= span {
		b++
	}
	return b
}

func crossesChunks(lo, hi, axisMin, axisMax float64, bits int) bool {
	first := cellIndex(lo, axisMin, axisMax, bits)
	last := upperCellIndex(hi, axisMin, axisMax, bits)
	return last > first
}

// CrossesHorizontalChunks reports whether the west and east edges of r fall in
// different cells when longitude is cut into 2^lngBits cells
func (r Region) CrossesHorizontalChunks(lngBits int) bool {
	return crossesChunks(r.West(), r.East(), minLng, maxLng, lngBits)
}

// CrossesVerticalChunks reports whether the south and north edges of r fall in
// different cells when latitude is cut into 2^latBits cells
func (r Region) CrossesVerticalChunks(latBits int) bool {
	return crossesChunks(r.South(), r.North(), minLat, maxLat, latBits)
}

// InnerBits returns the precision used by InnerHash
func (r Region) InnerBits() int {
	lngBits := fewestBits(r.Width(), maxLng-minLng)
	if r.CrossesHorizontalChunks(lngBits) {
		lngBits++
	}
	latBits := fewestBits(-r.Height(), maxLat-minLat)
	if r.CrossesVerticalChunks(latBits) {
		latBits++
	}

	// longitude reaches b bits after 2b-1 interleaved bits, latitude after 2b
	total := max(2*lngBits-1, 2*latBits, bitsPerChar)
	if rem := total % bitsPerChar; rem != 0 {
		total += bitsPerChar - rem
	}
	return min(total, MaxBits)
}

// OuterBits returns the precision used by OuterHash, 0 when only the globe
// contains r
func (r Region) OuterBits() int {
	lngBits := mostBits(r.Width(), maxLng-minLng)
	latBits := mostBits(-r.Height(), maxLat-minLat)

	total := min(2*lngBits, 2*latBits+1, MaxBits)
	total -= total % bitsPerChar
	for total > 0 {
		lng, lat := axisBits(total)
		if !r.CrossesHorizontalChunks(lng) && !r.CrossesVerticalChunks(lat) {
			break
		}
		total -= bitsPerChar
	}
	return total
}

// InnerHash returns the shortest hash whose cell lies inside r. Regions
// smaller than a MaxLength cell get a MaxLength hash of their center.
func (r Region) InnerHash() string {
	// InnerBits is always a valid precision
	hash, _ := Encode(r, r.InnerBits())
	return hash
}

// OuterHash returns the longest hash whose cell contains r. The empty string
// names the globe.
func (r Region) OuterHash() string {
	bits := r.OuterBits()
	if bits == 0 {
		return ""
	}
	hash, _ := Encode(r, bits)
	return hash
}
