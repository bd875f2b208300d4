package parser

import (
	"strings"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"go.uber.org/zap"
)

// LabelRule maps a known header label to the kind of anchor it produces.
type LabelRule struct {
	Text string
	Kind models.HeaderKind
}

// ScanPolicy configures how header anchors are located in a grid.
type ScanPolicy struct {
	// Labels are tried in order; the first match wins for a cell.
	Labels []LabelRule
	// Contains matches labels by substring instead of equality.
	Contains bool
	// InferFromSiblings enables the "dist N ..." fallback for omitted labels.
	InferFromSiblings bool
	// BottomMargin discards label matches closer than this many rows to the
	// bottom edge of the grid.
	BottomMargin int
}

// AcreageScan is the scan policy for acreage reports.
var AcreageScan = ScanPolicy{
	Labels: []LabelRule{
		{Text: "type and variety", Kind: models.HeaderLabeled},
		{Text: "varname", Kind: models.HeaderLegacy},
	},
	InferFromSiblings: true,
	BottomMargin:      3,
}

// CrushScan is the scan policy for crush reports.
var CrushScan = ScanPolicy{
	Labels: []LabelRule{
		{Text: "type and variety", Kind: models.HeaderCrush},
		{Text: "variety", Kind: models.HeaderCrush},
	},
	Contains:     true,
	BottomMargin: 3,
}

// ScanAnchors visits every cell column by column and returns the header
// anchors found, in visit order.
func ScanAnchors(g *models.Grid, p ScanPolicy) []models.Anchor {
	var anchors []models.Anchor
	rows, cols := g.Rows(), g.Cols()
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			text := g.Normalized(row, col)
			if text == "" {
				continue
			}
			if kind, ok := p.matchLabel(text); ok {
				if rows-row < p.BottomMargin {
					zap.L().Debug("discarding header near bottom edge",
						zap.String("file", g.Source), zap.Int("row", row), zap.Int("col", col))
					continue
				}
				anchors = append(anchors, models.Anchor{Row: row, Col: col, Kind: kind})
				continue
			}
			if p.InferFromSiblings && col > 0 && interleavedDistrict.MatchString(text) && g.Blank(row, col-1) {
				anchors = append(anchors, models.Anchor{Row: row, Col: col - 1, Kind: models.HeaderInferred})
			}
		}
	}
	return anchors
}

func (p ScanPolicy) matchLabel(text string) (models.HeaderKind, bool) {
	for _, rule := range p.Labels {
		if text == rule.Text || (p.Contains && strings.Contains(text, rule.Text)) {
			return rule.Kind, true
		}
	}
	return "", false
}
