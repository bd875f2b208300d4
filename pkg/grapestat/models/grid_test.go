package models

import "testing"

func TestGridCell(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"c"},
		{},
		{"", "", "f"},
	}
	g := NewGrid("test.xlsx", rows)
	rows[0][0] = "changed"

	if g.Rows() != 4 {
		t.Errorf("Expected 4 rows, got %d", g.Rows())
	}
	if g.Cols() != 3 {
		t.Errorf("Expected 3 cols, got %d", g.Cols())
	}

	tests := []struct {
		row, col int
		expected string
	}{
		{0, 0, "a"},
		{0, 1, "b"},
		{1, 1, ""},
		{2, 0, ""},
		{3, 2, "f"},
		{-1, 0, ""},
		{0, -1, ""},
		{10, 10, ""},
	}
	for _, tt := range tests {
		if got := g.Cell(tt.row, tt.col); got != tt.expected {
			t.Errorf("Cell(%d, %d) = %q, expected %q", tt.row, tt.col, got, tt.expected)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"nan", true},
		{"NaN", true},
		{"0", false},
		{"--", false},
		{"Chardonnay", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.expected {
			t.Errorf("IsBlank(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Type and Variety \n"); got != "type and variety" {
		t.Errorf("Normalize = %q", got)
	}
}
