package parser

import (
	"strings"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

// MatchVariety tests label against the allow-list by case-insensitive
// substring. The allow-list is walked in declared order and the last match
// wins.
//
// NOTE: a label containing two allow-listed names resolves to whichever is
// declared later. No pair in the shipped lists overlaps, but the tie-break is
// kept as is so output stays comparable with earlier runs.
func MatchVariety(label string, allow *models.AllowList) (models.Variety, bool) {
	text := strings.ToLower(label)
	if models.IsBlank(text) {
		return models.Variety{}, false
	}
	var (
		found models.Variety
		ok    bool
	)
	for v := range allow.All() {
		if strings.Contains(text, v.Name) {
			found, ok = v, true
		}
	}
	return found, ok
}

// varietyRows yields the rows from the anchor row up to end (exclusive)
// whose label matches an allow-listed variety.
func varietyRows(g *models.Grid, a models.Anchor, end int, allow *models.AllowList) func(yield func(int, models.Variety) bool) {
	return func(yield func(int, models.Variety) bool) {
		for row := a.Row; row < end; row++ {
			v, ok := MatchVariety(g.Cell(row, a.Col), allow)
			if !ok {
				continue
			}
			if !yield(row, v) {
				return
			}
		}
	}
}

// blockEnd returns the row where the block of anchors[i] ends: the next
// anchor below it in the same column, or the bottom of the grid.
func blockEnd(g *models.Grid, anchors []models.Anchor, i int) int {
	end := g.Rows()
	a := anchors[i]
	for _, b := range anchors {
		if b.Col == a.Col && b.Row > a.Row && b.Row < end {
			end = b.Row
		}
	}
	return end
}
