package geohash

import (
	"fmt"
	"math"

	"github.com/kass/go-geohash/pkg/models"
)

// axisBits splits a total precision between the axes. Longitude takes the
// first bit, so it gets the extra one when the total is odd.
func axisBits(totalBits int) (lngBits, latBits int) {
	return (totalBits + 1) / 2, totalBits / 2
}

func checkPrecision(totalBits int) error {
	if totalBits <= 0 || totalBits%bitsPerChar != 0 {
		return fmt.Errorf("precision of %d bits is not a positive multiple of %d: %w",
			totalBits, bitsPerChar, models.ErrMalformed)
	}
	if totalBits > MaxBits {
		return fmt.Errorf("precision of %d bits exceeds %d: %w", totalBits, MaxBits, models.ErrMalformed)
	}
	return nil
}

// cellIndex returns the cell holding v when [lo,hi] is cut into 2^bits equal
// cells. Values on the upper bound belong to the last cell.
func cellIndex(v, lo, hi float64, bits int) uint64 {
	cells := uint64(1) << uint(bits)
	idx := math.Floor((v - lo) / (hi - lo) * float64(cells))
	switch {
	case idx < 0:
		return 0
	case idx >= float64(cells):
		return cells - 1
	}
	return uint64(idx)
}

// upperCellIndex is cellIndex for an upper edge: a value sitting exactly on a
// cell boundary belongs to the cell below it.
func upperCellIndex(v, lo, hi float64, bits int) uint64 {
	cells := uint64(1) << uint(bits)
	idx := math.Ceil((v-lo)/(hi-lo)*float64(cells)) - 1
	switch {
	case idx < 0:
		return 0
	case idx >= float64(cells):
		return cells - 1
	}
	return uint64(idx)
}

// Encode returns the geohash of the cell containing the center of r, using
// totalBits bits split between the axes. totalBits must be a positive multiple
// of 5 no larger than MaxBits.
func Encode(r Region, totalBits int) (string, error) {
	if err := checkPrecision(totalBits); err != nil {
		return "", err
	}

	lngBits, latBits := axisBits(totalBits)
	center := r.Center()
	lngCell := cellIndex(center.Lng, minLng, maxLng, lngBits)
	latCell := cellIndex(center.Lat, minLat, maxLat, latBits)

	hash := make([]byte, 0, totalBits/bitsPerChar)
	var symbol uint8
	for i := 0; i < totalBits; i++ {
		var bit uint64
		if i%2 == 0 {
			lngBits--
			bit = (lngCell >> uint(lngBits)) & 1
		} else {
			latBits--
			bit = (latCell >> uint(latBits)) & 1
		}
		symbol = symbol<<1 | uint8(bit)

		if i%bitsPerChar == bitsPerChar-1 {
			c, err := Char(symbol)
			if err != nil {
				return "", err
			}
			hash = append(hash, c)
			symbol = 0
		}
	}

	return string(hash), nil
}

// HashWithPrecision encodes r with the given number of bits
func (r Region) HashWithPrecision(bits int) (string, error) {
	return Encode(r, bits)
}

// HashWithMaxLength encodes r as a hash of the given number of characters
func (r Region) HashWithMaxLength(chars int) (string, error) {
	return r.HashWithPrecision(chars * bitsPerChar)
}
