package assessor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// square feet per acre
const acreSquareFeet = 43560

var displayNumberCleaner = strings.NewReplacer("$", "", ",", "")

// ParseInt reads an integer out of display text like "$12,345".
// Blank and non-numeric cells come back nil instead of failing, the
// site leaves plenty of optional cells empty or holding "n/a".
func ParseInt(text string) *int64 {
	cleaned := strings.TrimSpace(displayNumberCleaner.Replace(text))
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseFloat is ParseInt for real-valued cells (millages, acreages).
func ParseFloat(text string) *float64 {
	cleaned := strings.TrimSpace(displayNumberCleaner.Replace(text))
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

var (
	squareFeetPattern = regexp.MustCompile(`(.*) Square Feet`)
	acresPattern      = regexp.MustCompile(`(.*) Acres`)
)

// ParseLandSize converts the land size display string to square feet.
// The site shows either "<n> Square Feet" or "<n> Acres"; anything
// else leaves the field unset.
func ParseLandSize(text string) *float64 {
	if m := squareFeetPattern.FindStringSubmatch(text); m != nil {
		return ParseFloat(m[1])
	}
	if m := acresPattern.FindStringSubmatch(text); m != nil {
		acres := ParseFloat(m[1])
		if acres == nil {
			return nil
		}
		sqft := *acres * acreSquareFeet
		return &sqft
	}
	return nil
}

// block and lot are alphanumeric, not [0-9]+: some carry letters
var subdivisionPattern = regexp.MustCompile(`(.+) Block ([a-zA-Z0-9]+) Lot ([a-zA-Z0-9]+)`)

// ParseSubdivisionBlockLot splits the composite subdivision string
// "<name> Block <block> Lot <lot>". Block and lot stay strings even
// when they look numeric. A mismatch is fatal, there is no fallback
// shape for this field.
func ParseSubdivisionBlockLot(text string) (subdivision, block, lot string, err error) {
	m := subdivisionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", "", fmt.Errorf(
			"subdivision %q does not match \"<name> Block <block> Lot <lot>\"", text,
		)
	}
	return m[1], m[2], m[3], nil
}

// dateLayout is the only date format the site emits
const dateLayout = "01/02/2006"

// ParseDate parses the site's MM/DD/YYYY dates, failing on any other
// format.
func ParseDate(text string) (time.Time, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected MM/DD/YYYY date: %w", err)
	}
	return date, nil
}
