package parser

import (
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"go.uber.org/zap"
)

// ExtractCrush reads one crush report grid into asm under category. It
// reports found=false without error when the grid has no header anchor.
//
// District headers must be small integers. A non-numeric header ends the
// column scan for that row, except in the right-most header block where the
// first such column is read once as the state total.
func ExtractCrush(g *models.Grid, category models.Category, asm *Assembler) (found bool, err error) {
	anchors := ScanAnchors(g, CrushScan)
	if len(anchors) == 0 {
		zap.L().Warn("no crush header found", zap.String("file", g.Source))
		return false, nil
	}

	maxCol := anchors[0].Col
	for _, a := range anchors[1:] {
		maxCol = max(maxCol, a.Col)
	}

	for _, a := range anchors {
		matched := 0
		for row, variety := range varietyRows(g, a, g.Rows(), asm.allow) {
			matched++
			if err := crushRow(g, a, row, a.Col == maxCol, variety, category, asm); err != nil {
				return true, err
			}
		}
		if matched == 0 {
			zap.L().Warn("crush header without varieties",
				zap.String("file", g.Source),
				zap.Int("row", a.Row), zap.Int("col", a.Col),
				zap.String("text", g.Cell(a.Row, a.Col)))
			return true, NewExtractionError(g.Source, "varieties", a.Row, a.Col, g.Cell(a.Row, a.Col), ErrNoVarieties)
		}
	}
	return true, nil
}

func crushRow(g *models.Grid, a models.Anchor, row int, rightmost bool, v models.Variety, category models.Category, asm *Assembler) error {
	totalTaken := false
	for col := a.Col + 1; col < g.Cols(); col++ {
		district, ok := crushDistrict(g.Cell(a.Row, col))
		if !ok {
			if !rightmost || totalTaken {
				break
			}
			district = models.StateTotal
			totalTaken = true
		}
		text := g.Cell(row, col)
		value, err := CleanNumber(text)
		if err != nil {
			return NewExtractionError(g.Source, "assemble", row, col, text, ErrBadNumber)
		}
		obs := Observation{Category: category, Variety: v, District: district, Value: value, Row: row, Col: col}
		if err := asm.Add(g.Source, obs); err != nil {
			return err
		}
	}
	return nil
}
