package geohash

import (
	"fmt"

	"github.com/kass/go-geohash/pkg/models"
)

// Alphabet lists the geohash characters in symbol order. a, i, l and o are
// left out so hashes cannot be misread.
const Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Symbol converts a geohash character (either case) into its 5-bit value
func Symbol(c byte) (uint8, error) {
	if 'A' <= c && c <= 'Z' {
		c += 'a' - 'A'
	}
	switch {
	case '0' <= c && c <= '9':
		return c - '0', nil
	case 'b' <= c && c <= 'h':
		return c - 'b' + 10, nil
	case c == 'j' || c == 'k':
		return c - 'j' + 17, nil
	case c == 'm' || c == 'n':
		return c - 'm' + 19, nil
	case 'p' <= c && c <= 'z':
		return c - 'p' + 21, nil
	}
	return 0, fmt.Errorf("character %q is not in the geohash alphabet: %w", c, models.ErrInvalidValue)
}

// Char converts a 5-bit value into its lowercase geohash character
func Char(s uint8) (byte, error) {
	switch {
	case s <= 9:
		return '0' + s, nil
	case s <= 16:
		return 'b' + s - 10, nil
	case s <= 18:
		return 'j' + s - 17, nil
	case s <= 20:
		return 'm' + s - 19, nil
	case s <= 31:
		return 'p' + s - 21, nil
	}
	return 0, fmt.Errorf("symbol %d exceeds 31: %w", s, models.ErrInvalidValue)
}

// Validate reports the first character of hash that is not a geohash character
func Validate(hash string) error {
	for i := 0; i < len(hash); i++ {
		if _, err := Symbol(hash[i]); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
	}
	return nil
}
