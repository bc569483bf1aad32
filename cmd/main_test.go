package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kass/go-geohash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(append([]string{"--log-level", "error"}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Default length", []string{"encode", "42.605", "-5.603"}, "ezs42s00\n"},
		{"Explicit length", []string{"encode", "--length", "5", "42.605", "-5.603"}, "ezs42\n"},
		{"Negative latitude", []string{"encode", "--", "-33.8688", "151.2093"}, "r3gx2f77\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	_, errOut, err := execute(t, "encode", "91", "0")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
	assert.Contains(t, errOut, "out of range")

	_, _, err = execute(t, "encode", "north", "0")
	assert.ErrorIs(t, err, models.ErrInvalidValue)

	_, _, err = execute(t, "encode", "--length", "13", "0", "0")
	assert.ErrorIs(t, err, models.ErrMalformed)

	_, _, err = execute(t, "encode", "0")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, _, err := execute(t, "decode", "ezs42", "S")
	require.NoError(t, err)
	assert.Equal(t, "42.60498046875,-5.60302734375\n22.5,22.5\n", out)

	_, _, err = execute(t, "decode", "ezs4a")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
}

func TestBounds(t *testing.T) {
	out, _, err := execute(t, "bounds", "ezs42")
	require.NoError(t, err)

	for _, line := range []string{
		"Geohash ezs42",
		"North: 42.626953125",
		"South: 42.5830078125",
		"West: -5.625",
		"East: -5.5810546875",
		"Size: 3.597 km x 4.886 km",
	} {
		assert.Contains(t, out, line)
	}
}

func TestCover(t *testing.T) {
	out, _, err := execute(t, "cover", "52.6", "13.0", "52.3", "13.8")
	require.NoError(t, err)
	assert.Equal(t, "  Inner: u33d2\n  Outer: u33\n", out)

	_, _, err = execute(t, "cover", "52.3", "13.0", "52.6", "13.8")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", "ezs42", "U33D2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "✓"))

	_, errOut, err := execute(t, "validate", "ezs42", "ezl42")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
	assert.Contains(t, errOut, `invalid geohash "ezl42"`)
}

func TestConfigFlag(t *testing.T) {
	_, _, err := execute(t, "--config", "does-not-exist.yaml", "encode", "0", "0")
	assert.Error(t, err)
}
