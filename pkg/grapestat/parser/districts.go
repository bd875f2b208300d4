package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

var (
	namedDistrict       = regexp.MustCompile(`^district\s*(?P<district>[0-9]+)`)
	interleavedDistrict = regexp.MustCompile(`^dist\s+(?P<district>\d+)\s+\d+\s+[a-z]+`)
	compactDistrict     = regexp.MustCompile(`^d(?P<district>[0-9]+)(?P<type>[a-z]+)(?P<year>[0-9]+)`)
)

// DistrictMatch is a resolved district header.
type DistrictMatch struct {
	District models.District
	// Pattern names the matcher that succeeded.
	Pattern string
	// Interleaved is set for header conventions that spread bearing,
	// non-bearing and total over consecutive sub-columns.
	Interleaved bool
}

type districtMatcher struct {
	name        string
	interleaved bool
	match       func(text string) (models.District, bool)
}

func regexpMatcher(re *regexp.Regexp) func(string) (models.District, bool) {
	idx := re.SubexpIndex("district")
	return func(text string) (models.District, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[idx])
		if err != nil {
			return 0, false
		}
		return models.District(n), true
	}
}

func matchStateTotal(text string) (models.District, bool) {
	if strings.Contains(text, "state total") || strings.HasPrefix(text, "dst") {
		return models.StateTotal, true
	}
	return 0, false
}

// districtMatchers are evaluated in order; the first success wins.
var districtMatchers = []districtMatcher{
	{name: "district", match: regexpMatcher(namedDistrict)},
	{name: "dist", interleaved: true, match: regexpMatcher(interleavedDistrict)},
	{name: "compact", interleaved: true, match: regexpMatcher(compactDistrict)},
	{name: "state total", match: matchStateTotal},
}

// MatchDistrict classifies header text. The text is trimmed and case-folded
// before matching. The returned district is not range checked.
func MatchDistrict(text string) (DistrictMatch, bool) {
	text = models.Normalize(text)
	if text == "" {
		return DistrictMatch{}, false
	}
	for _, m := range districtMatchers {
		if d, ok := m.match(text); ok {
			return DistrictMatch{District: d, Pattern: m.name, Interleaved: m.interleaved}, true
		}
	}
	return DistrictMatch{}, false
}

// crushDistrict resolves a crush report header, which must be an integer no
// greater than the state total sentinel.
func crushDistrict(text string) (models.District, bool) {
	n, ok := parseInteger(text)
	if !ok || n > int(models.StateTotal) {
		return 0, false
	}
	return models.District(n), true
}

// isInterleaved reports whether the block under anchor a spreads each
// district over bearing, non-bearing and total sub-columns. That is the case
// when any header uses an interleaved convention, or when a named district
// header is followed by an unlabelled column that carries data on one of the
// block's variety rows, which end at row end.
func isInterleaved(g *models.Grid, a models.Anchor, end int, allow *models.AllowList) bool {
	for col := a.Col + 1; col < g.Cols(); col++ {
		m, ok := MatchDistrict(g.Cell(a.Row, col))
		if !ok {
			continue
		}
		if m.Interleaved {
			return true
		}
		if m.District != models.StateTotal && g.Blank(a.Row, col+1) && columnHasData(g, a, end, col+1, allow) {
			return true
		}
	}
	return false
}

func columnHasData(g *models.Grid, a models.Anchor, end, col int, allow *models.AllowList) bool {
	if col >= g.Cols() {
		return false
	}
	for row := range varietyRows(g, a, end, allow) {
		if !g.Blank(row, col) {
			return true
		}
	}
	return false
}
