package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/geo"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/models"
)

type field struct {
	label string
	value string
}

// explanation describes what the explorer input stands for
type explanation struct {
	hash   string
	fields []field
}

// explain interprets input as a geohash, a "lat,lng" coordinate encoded at
// precision characters, or a "north,west,south,east" region
func explain(input string, precision int, index *cellindex.Index) (explanation, error) {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, ",") {
		return explainHash(input, index)
	}

	parts := strings.Split(input, ",")
	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return explanation{}, fmt.Errorf("%q is not a number: %w", part, models.ErrInvalidValue)
		}
		values[i] = v
	}

	switch len(values) {
	case 2:
		c, err := models.NewCoordinate(values[0], values[1])
		if err != nil {
			return explanation{}, err
		}
		hash, err := geohash.FromCoordinate(c).HashWithMaxLength(precision)
		if err != nil {
			return explanation{}, err
		}
		e, err := explainHash(hash, index)
		if err != nil {
			return explanation{}, err
		}
		e.fields = append([]field{{"Coordinate", c.String()}}, e.fields...)
		return e, nil
	case 4:
		r, err := geohash.NewRegion(
			models.Coordinate{Lat: values[0], Lng: values[1]},
			models.Coordinate{Lat: values[2], Lng: values[3]},
		)
		if err != nil {
			return explanation{}, err
		}
		return explainRegion(r), nil
	}
	return explanation{}, fmt.Errorf("expected lat,lng or north,west,south,east: %w", models.ErrMalformed)
}

func explainHash(hash string, index *cellindex.Index) (explanation, error) {
	r, err := geohash.Decode(hash)
	if err != nil {
		return explanation{}, err
	}
	hash = strings.ToLower(hash)

	e := explanation{hash: hash}
	e.fields = append(e.fields,
		field{"Hash", displayHash(hash)},
		field{"Precision", fmt.Sprintf("%d chars, %d bits", len(hash), len(hash)*5)},
	)
	e.fields = append(e.fields, regionFields(r)...)
	if index != nil {
		e.fields = append(e.fields, field{"Indexed cells", strconv.Itoa(len(index.Containing(r.Center())))})
	}
	return e, nil
}

func explainRegion(r geohash.Region) explanation {
	e := explanation{hash: r.OuterHash()}
	e.fields = append(e.fields,
		field{"Inner", displayHash(r.InnerHash())},
		field{"Outer", displayHash(r.OuterHash())},
	)
	e.fields = append(e.fields, regionFields(r)...)
	return e
}

func regionFields(r geohash.Region) []field {
	width, height := geo.CellSize(r)
	return []field{
		{"North", strconv.FormatFloat(r.North(), 'f', -1, 64)},
		{"South", strconv.FormatFloat(r.South(), 'f', -1, 64)},
		{"West", strconv.FormatFloat(r.West(), 'f', -1, 64)},
		{"East", strconv.FormatFloat(r.East(), 'f', -1, 64)},
		{"Center", r.Center().String()},
		{"Size", fmt.Sprintf("%.3f km x %.3f km", width, height)},
	}
}

func displayHash(hash string) string {
	if hash == "" {
		return "(globe)"
	}
	return hash
}
