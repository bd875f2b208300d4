package parser

import (
	"testing"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

func TestMatchDistrict(t *testing.T) {
	tests := []struct {
		text     string
		district models.District
		pattern  string
		ok       bool
	}{
		{"District 1", 1, "district", true},
		{"  district12 ", 12, "district", true},
		{"District 3 State Total", 3, "district", true},
		{"Dist 3 2021 Bearing", 3, "dist", true},
		{"dist 14 21 non-bearing", 14, "dist", true},
		{"d4b21", 4, "compact", true},
		{"D17T05", 17, "compact", true},
		{"State Total", models.StateTotal, "state total", true},
		{"DST21", models.StateTotal, "state total", true},
		{"District 18", 18, "district", true},
		{"dist 2", 0, "", false},
		{"Total", 0, "", false},
		{"Napa", 0, "", false},
		{"", 0, "", false},
	}

	for _, tt := range tests {
		m, ok := MatchDistrict(tt.text)
		if ok != tt.ok {
			t.Errorf("MatchDistrict(%q) ok = %v, expected %v", tt.text, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if m.District != tt.district || m.Pattern != tt.pattern {
			t.Errorf("MatchDistrict(%q) = %d/%s, expected %d/%s",
				tt.text, m.District, m.Pattern, tt.district, tt.pattern)
		}
	}
}

func TestMatchDistrictInterleaved(t *testing.T) {
	tests := map[string]bool{
		"District 1":          false,
		"Dist 1 2021 Bearing": true,
		"d1b21":               true,
		"State Total":         false,
	}
	for text, expected := range tests {
		m, _ := MatchDistrict(text)
		if m.Interleaved != expected {
			t.Errorf("MatchDistrict(%q).Interleaved = %v, expected %v", text, m.Interleaved, expected)
		}
	}
}

func TestCrushDistrict(t *testing.T) {
	tests := []struct {
		text     string
		district models.District
		ok       bool
	}{
		{"1", 1, true},
		{"17.0", 17, true},
		{"100", models.StateTotal, true},
		{"101", 0, false},
		{"State Total", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		d, ok := crushDistrict(tt.text)
		if d != tt.district || ok != tt.ok {
			t.Errorf("crushDistrict(%q) = %d, %v, expected %d, %v", tt.text, d, ok, tt.district, tt.ok)
		}
	}
}

func TestIsInterleaved(t *testing.T) {
	flat := grid(
		row("Type and Variety", "District 1", "", "District 2"),
		row("Chardonnay", "1", "", "2"),
	)
	if isInterleaved(flat, models.Anchor{Row: 0, Col: 0}, flat.Rows(), models.AcreageVarieties) {
		t.Error("Expected flat block with an empty gap column")
	}

	merged := grid(
		row("Type and Variety", "District 1", "", ""),
		row("Chardonnay", "1", "2", "3"),
	)
	if !isInterleaved(merged, models.Anchor{Row: 0, Col: 0}, merged.Rows(), models.AcreageVarieties) {
		t.Error("Expected interleaved block for a district header spanning data columns")
	}

	compact := grid(
		row("VARNAME", "d1b21", "d1n21"),
		row("Chardonnay", "1", "2"),
	)
	if !isInterleaved(compact, models.Anchor{Row: 0, Col: 0}, compact.Rows(), models.AcreageVarieties) {
		t.Error("Expected interleaved block for compact codes")
	}

	footnote := grid(
		row("Type and Variety", "District 1", "", "State Total"),
		row("Chardonnay", "1", "", "1"),
		row("", "", "1/ revised"),
	)
	if isInterleaved(footnote, models.Anchor{Row: 0, Col: 0}, footnote.Rows(), models.AcreageVarieties) {
		t.Error("Expected text outside variety rows to leave the block flat")
	}

	stacked := grid(
		row("Type and Variety", "District 1", "", "State Total"),
		row("Merlot", "1", "", "1"),
		row("Type and Variety", "District 1", "", ""),
		row("Merlot", "1", "2", "3"),
	)
	if isInterleaved(stacked, models.Anchor{Row: 0, Col: 0}, 2, models.AcreageVarieties) {
		t.Error("Expected data of the next block to be ignored")
	}
}
