package parser

import (
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"go.uber.org/zap"
)

// ExtractAcreage reads one acreage report grid into asm. The assembler must
// have been created with models.AcreageCategories.
func ExtractAcreage(g *models.Grid, asm *Assembler) error {
	anchors := ScanAnchors(g, AcreageScan)
	if len(anchors) == 0 {
		return fileError(g.Source, "layout", ErrNoHeader)
	}

	interleaved := make([]bool, len(anchors))
	var flat []int
	for i, a := range anchors {
		interleaved[i] = isInterleaved(g, a, blockEnd(g, anchors, i), asm.allow)
		if !interleaved[i] {
			flat = append(flat, i)
		}
	}
	zap.L().Debug("acreage headers",
		zap.String("file", g.Source), zap.Int("anchors", len(anchors)), zap.Int("flat", len(flat)))

	for i, a := range anchors {
		block := blockCategory(i, flat)
		matched := 0
		for row, variety := range varietyRows(g, a, blockEnd(g, anchors, i), asm.allow) {
			matched++
			var err error
			if interleaved[i] {
				err = interleavedRow(g, a, row, variety, asm)
			} else {
				err = flatRow(g, a, row, variety, block, asm)
			}
			if err != nil {
				return err
			}
		}
		if matched == 0 {
			return NewExtractionError(g.Source, "varieties", a.Row, a.Col, g.Cell(a.Row, a.Col), ErrNoVarieties)
		}
	}
	return nil
}

// blockCategory assigns a flat header block its acreage sub-block. A grid
// with a single flat block holds totals; otherwise blocks are read as
// bearing, non-bearing and total in scan order.
func blockCategory(anchor int, flat []int) models.Category {
	if len(flat) == 1 {
		return models.AcreageTotal
	}
	for n, i := range flat {
		if i == anchor {
			return models.AcreageCategories[n%len(models.AcreageCategories)]
		}
	}
	return models.AcreageTotal
}

// flatRow reads a block where every value column carries its own district
// header.
func flatRow(g *models.Grid, a models.Anchor, row int, v models.Variety, category models.Category, asm *Assembler) error {
	for col := a.Col + 1; col < g.Cols(); col++ {
		m, ok := MatchDistrict(g.Cell(a.Row, col))
		if !ok {
			if g.Blank(row, col) {
				continue
			}
			return NewExtractionError(g.Source, "districts", row, col, g.Cell(a.Row, col), ErrUnresolvedColumn)
		}
		if err := addAcreage(g, a.Row, row, col, v, m.District, category, asm); err != nil {
			return err
		}
	}
	return nil
}

// interleavedRow reads a block whose columns cycle bearing, non-bearing and
// total per district, followed by one spacer column. A district header
// carries over unlabelled sub-columns until the cycle completes.
func interleavedRow(g *models.Grid, a models.Anchor, row int, v models.Variety, asm *Assembler) error {
	var (
		district models.District
		have     bool
		cycle    int
		skip     bool
	)
	for col := a.Col + 1; col < g.Cols(); col++ {
		if skip {
			skip = false
			continue
		}
		if m, ok := MatchDistrict(g.Cell(a.Row, col)); ok {
			district, have = m.District, true
		}
		if !have {
			if g.Blank(row, col) {
				continue
			}
			return NewExtractionError(g.Source, "districts", row, col, g.Cell(a.Row, col), ErrUnresolvedColumn)
		}
		category := models.AcreageCategories[cycle]
		if err := addAcreage(g, a.Row, row, col, v, district, category, asm); err != nil {
			return err
		}
		if category == models.AcreageTotal {
			have, skip = false, true
		}
		cycle = (cycle + 1) % len(models.AcreageCategories)
	}
	return nil
}

func addAcreage(g *models.Grid, headerRow, row, col int, v models.Variety, d models.District, category models.Category, asm *Assembler) error {
	if !d.Valid() {
		return NewExtractionError(g.Source, "districts", headerRow, col, g.Cell(headerRow, col), ErrInvalidDistrict)
	}
	text := g.Cell(row, col)
	value, err := CleanNumber(text)
	if err != nil {
		return NewExtractionError(g.Source, "assemble", row, col, text, ErrBadNumber)
	}
	return asm.Add(g.Source, Observation{
		Category: category,
		Variety:  v,
		District: d,
		Value:    value,
		Row:      row,
		Col:      col,
	})
}
