package parser

import "github.com/ukaji3/grapestat-go/pkg/grapestat/models"

// trimRows drops trailing blank rows and columns so the grid edge is the
// last populated cell. Leading blanks are kept, since anchor coordinates are
// reported against the sheet.
func trimRows(rows [][]string) [][]string {
	lastRow, lastCol := dataExtent(rows)
	if lastRow < 0 {
		return nil
	}
	rows = rows[:lastRow+1]
	for i, row := range rows {
		if len(row) > lastCol+1 {
			rows[i] = row[:lastCol+1]
		}
	}
	return rows
}

// dataExtent returns the last row and column holding a non-blank cell, or
// -1, -1 for a blank sheet.
func dataExtent(rows [][]string) (lastRow, lastCol int) {
	lastRow, lastCol = -1, -1
	for r, row := range rows {
		for c, cell := range row {
			if models.IsBlank(cell) {
				continue
			}
			lastRow = r
			lastCol = max(lastCol, c)
		}
	}
	return lastRow, lastCol
}
