package geohash

import "fmt"

// Decode returns the cell named by hash. Bits alternate between the axes,
// longitude first, counting from the first bit of the whole string. The empty
// hash decodes to the globe.
func Decode(hash string) (Region, error) {
	r := Globe()
	bit := 0
	for i := 0; i < len(hash); i++ {
		symbol, err := Symbol(hash[i])
		if err != nil {
			return Region{}, fmt.Errorf("failed to decode %q at position %d: %w", hash, i, err)
		}

		for mask := uint8(1) << (bitsPerChar - 1); mask != 0; mask >>= 1 {
			set := symbol&mask != 0
			if bit%2 == 0 {
				mid := (r.TopLeft.Lng + r.BottomRight.Lng) / 2
				if set {
					r.TopLeft.Lng = mid
				} else {
					r.BottomRight.Lng = mid
				}
			} else {
				mid := (r.TopLeft.Lat + r.BottomRight.Lat) / 2
				if set {
					r.BottomRight.Lat = mid
				} else {
					r.TopLeft.Lat = mid
				}
			}
			bit++
		}
	}
	return r, nil
}

// DecodeCenter returns the center of the cell named by hash
func DecodeCenter(hash string) (lat, lng float64, err error) {
	r, err := Decode(hash)
	if err != nil {
		return 0, 0, err
	}
	c := r.Center()
	return c.Lat, c.Lng, nil
}
