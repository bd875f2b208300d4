package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

// PlaceholderDash marks a suppressed or zero value in the reports.
const PlaceholderDash = "--"

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// CleanNumber parses value text such as "1,234.5", "--" or "$312.45" into a
// float. Blank cells and cells left empty by cleaning parse to zero.
func CleanNumber(s string) (float64, error) {
	if models.IsBlank(s) {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, PlaceholderDash, "0.0")
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInteger parses header text as an integer. Integral floats such as
// "3.0" are accepted since legacy readers render numeric cells that way.
func parseInteger(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
