package assessor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	testCases := []struct {
		input    string
		expected *int64
	}{
		{"$12,345", ptrInt(12345)},
		{"45000", ptrInt(45000)},
		{" 1,000 ", ptrInt(1000)},
		{"n/a", nil},
		{"", nil},
		{" ", nil},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, ParseInt(test.input), "input: %q", test.input)
	}
}

func TestParseFloat(t *testing.T) {
	testCases := []struct {
		input    string
		expected *float64
	}{
		{"117.92", ptrFloat(117.92)},
		{"$3,125.88", ptrFloat(3125.88)},
		{"0.25", ptrFloat(0.25)},
		{"unknown", nil},
		{"", nil},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, ParseFloat(test.input), "input: %q", test.input)
	}
}

func TestParseLandSize(t *testing.T) {
	testCases := []struct {
		input    string
		expected *float64
	}{
		// square feet pass through unchanged
		{"10,890 Square Feet", ptrFloat(10890)},
		{"43560 Square Feet", ptrFloat(43560)},
		// acres are converted
		{"0.25 Acres", ptrFloat(10890)},
		{"1 Acres", ptrFloat(43560)},
		{"2.5 Acres", ptrFloat(2.5 * 43560)},
		// anything else leaves the field unset
		{"Lot 2", nil},
		{"", nil},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, ParseLandSize(test.input), "input: %q", test.input)
	}
}

func TestParseSubdivisionBlockLot(t *testing.T) {
	subdivision, block, lot, err := ParseSubdivisionBlockLot("Elm Heights Block 3A Lot 12")
	require.NoError(t, err)
	require.Equal(t, "Elm Heights", subdivision)
	require.Equal(t, "3A", block)
	require.Equal(t, "12", lot)

	subdivision, block, lot, err = ParseSubdivisionBlockLot("MILITARY PARK ADDITION Block 7 Lot 22B")
	require.NoError(t, err)
	require.Equal(t, "MILITARY PARK ADDITION", subdivision)
	require.Equal(t, "7", block)
	require.Equal(t, "22B", lot)

	_, _, _, err = ParseSubdivisionBlockLot("UNPLATTED")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("01/15/2021")
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("2021-01-15")
	require.Error(t, err)
}

func ptrInt(n int64) *int64 { return &n }

func ptrFloat(f float64) *float64 { return &f }
