package parser

import (
	"testing"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

// grid builds a test grid from rows.
func grid(rows ...[]string) *models.Grid {
	return models.NewGrid("test.xlsx", rows)
}

// row is shorthand for a grid row literal.
func row(cells ...string) []string {
	return cells
}

func expectValues(t *testing.T, res *models.YearlyResult, variety string, expected []models.DistrictValue) {
	t.Helper()
	rec, ok := res.Record(variety)
	if !ok {
		t.Fatalf("%s: no record for %q", res.Category, variety)
	}
	if len(rec.Values) != len(expected) {
		t.Fatalf("%s/%s: expected %v, got %v", res.Category, variety, expected, rec.Values)
	}
	for i, dv := range expected {
		if rec.Values[i] != dv {
			t.Errorf("%s/%s: Values[%d] = %v, expected %v", res.Category, variety, i, rec.Values[i], dv)
		}
	}
}
