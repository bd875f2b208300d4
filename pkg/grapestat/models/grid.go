// Package models defines data structures for grape report extraction.
package models

import "strings"

// Grid is an immutable text view of the first sheet of a report workbook.
// Indices are zero-based. Cells outside the populated area read as "".
type Grid struct {
	// Source identifies the file the grid was read from.
	Source string

	cells [][]string
	cols  int
}

// NewGrid copies rows into a new Grid.
func NewGrid(source string, rows [][]string) *Grid {
	g := &Grid{
		Source: source,
		cells:  make([][]string, len(rows)),
	}
	for i, row := range rows {
		g.cells[i] = append([]string(nil), row...)
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	return g
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the width of the widest row.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns the raw text at (row, col).
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.cells) {
		return ""
	}
	r := g.cells[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Normalized returns the trimmed, lower-cased text at (row, col).
func (g *Grid) Normalized(row, col int) string {
	return Normalize(g.Cell(row, col))
}

// Blank reports whether the cell at (row, col) carries no value.
func (g *Grid) Blank(row, col int) bool {
	return IsBlank(g.Cell(row, col))
}

// Normalize trims and case-folds cell text.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsBlank reports whether s is empty, whitespace or a "nan" placeholder left
// behind by spreadsheet exports.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}
