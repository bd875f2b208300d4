package models

import "testing"

func TestDistrictValid(t *testing.T) {
	tests := []struct {
		d        District
		expected bool
	}{
		{0, false},
		{1, true},
		{17, true},
		{18, false},
		{99, false},
		{StateTotal, true},
		{101, false},
		{-3, false},
	}
	for _, tt := range tests {
		if got := tt.d.Valid(); got != tt.expected {
			t.Errorf("District(%d).Valid() = %v, expected %v", tt.d, got, tt.expected)
		}
	}
}

func TestDistrictStringRoundTrip(t *testing.T) {
	for _, d := range []District{1, 9, 17, StateTotal} {
		got, err := ParseDistrict(d.String())
		if err != nil {
			t.Fatalf("ParseDistrict(%q) failed: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDistrict(%q) = %d, expected %d", d.String(), got, d)
		}
	}
	if StateTotal.String() != "California" {
		t.Errorf("Expected 'California', got %q", StateTotal.String())
	}
	if _, err := ParseDistrict("Napa"); err == nil {
		t.Error("Expected error for non-numeric district")
	}
}

func TestVarietyRecordOrdering(t *testing.T) {
	var rec VarietyRecord
	rec.Set(StateTotal, 100)
	rec.Set(3, 30)
	rec.Set(1, 10)
	rec.Set(17, 170)
	if replaced := rec.Set(3, 33); !replaced {
		t.Error("Expected Set on existing district to report replacement")
	}

	expected := []DistrictValue{{1, 10}, {3, 33}, {17, 170}, {StateTotal, 100}}
	if len(rec.Values) != len(expected) {
		t.Fatalf("Expected %d values, got %d: %v", len(expected), len(rec.Values), rec.Values)
	}
	for i, dv := range expected {
		if rec.Values[i] != dv {
			t.Errorf("Values[%d] = %v, expected %v", i, rec.Values[i], dv)
		}
	}
	if v, ok := rec.Value(17); !ok || v != 170 {
		t.Errorf("Value(17) = %v, %v", v, ok)
	}
	if _, ok := rec.Value(5); ok {
		t.Error("Expected no value for district 5")
	}
}

func TestYearlyResultOrder(t *testing.T) {
	zin, _ := CrushVarieties.Lookup("zinfandel")
	chard, _ := CrushVarieties.Lookup("chardonnay")

	res := NewYearlyResult(2020, Volume)
	res.Add(zin, 3, 1)
	res.Add(zin, StateTotal, 2)
	res.Add(chard, 1, 3)
	res.Add(chard, 3, 4)

	recs := res.Records()
	if len(recs) != 2 || recs[0].Variety.Name != "zinfandel" || recs[1].Variety.Name != "chardonnay" {
		t.Fatalf("Unexpected record order: %v", recs)
	}

	districts := res.Districts()
	expected := []District{3, StateTotal, 1}
	if len(districts) != len(expected) {
		t.Fatalf("Expected districts %v, got %v", expected, districts)
	}
	for i := range expected {
		if districts[i] != expected[i] {
			t.Errorf("Districts()[%d] = %d, expected %d", i, districts[i], expected[i])
		}
	}
}

func TestCategoryDir(t *testing.T) {
	tests := []struct {
		c        Category
		expected string
	}{
		{Volume, "Volume"},
		{Price, "Price"},
		{Brix, "DegreeBrix"},
		{AcreageNonBearing, "Acreage/non_bearing"},
	}
	for _, tt := range tests {
		if got := tt.c.Dir(); got != tt.expected {
			t.Errorf("%s.Dir() = %q, expected %q", tt.c, got, tt.expected)
		}
	}
	if c, ok := ParseCategory("purchased_brix"); !ok || c != PurchasedBrix {
		t.Errorf("ParseCategory(purchased_brix) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("yield"); ok {
		t.Error("Expected unknown category to fail")
	}
}

func TestAllowLists(t *testing.T) {
	if _, ok := AcreageVarieties.Lookup("total all varieties"); ok {
		t.Error("Acreage allow-list should not contain 'total all varieties'")
	}
	v, ok := CrushVarieties.Lookup("total all varieties")
	if !ok || v.Wine != NotApplicable {
		t.Errorf("Crush lookup = %v, %v", v, ok)
	}
	if CrushVarieties.Len() != AcreageVarieties.Len()+1 {
		t.Errorf("Expected crush list one longer, got %d and %d", CrushVarieties.Len(), AcreageVarieties.Len())
	}
	if CrushVarieties.Rank("chardonnay") != 0 || CrushVarieties.Rank("merlot") != 8 {
		t.Error("Unexpected allow-list ranks")
	}
	if CrushVarieties.Rank("concord") != -1 {
		t.Error("Expected -1 for unknown variety")
	}
	for _, v := range CrushVarieties.Varieties() {
		if Normalize(v.Name) != v.Name {
			t.Errorf("Variety name %q is not canonical", v.Name)
		}
	}
}

func TestAllowListAll(t *testing.T) {
	var names []string
	for v := range AcreageVarieties.All() {
		names = append(names, v.Name)
	}
	list := AcreageVarieties.Varieties()
	if len(names) != len(list) {
		t.Fatalf("Expected %d varieties, got %d", len(list), len(names))
	}
	for i, v := range list {
		if names[i] != v.Name {
			t.Errorf("All()[%d] = %s, expected %s", i, names[i], v.Name)
		}
	}

	for v := range CrushVarieties.All() {
		if v.Name != "chardonnay" {
			t.Errorf("Expected chardonnay first, got %s", v.Name)
		}
		break
	}
}
