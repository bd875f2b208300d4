package models

import (
	"path/filepath"
	"sort"
)

// Category is the kind of statistic a YearlyResult holds.
type Category string

const (
	Volume            Category = "volume"
	PurchasedVolume   Category = "purchased_volume"
	Brix              Category = "brix"
	PurchasedBrix     Category = "purchased_brix"
	Price             Category = "price"
	AcreageBearing    Category = "acreage_bearing"
	AcreageNonBearing Category = "acreage_non_bearing"
	AcreageTotal      Category = "acreage_total"
)

// CrushCategories lists the categories read from crush reports.
var CrushCategories = []Category{Volume, Brix, PurchasedVolume, PurchasedBrix, Price}

// AcreageCategories lists the acreage sub-blocks in sheet order.
var AcreageCategories = []Category{AcreageBearing, AcreageNonBearing, AcreageTotal}

var categoryDirs = map[Category]string{
	Volume:            "Volume",
	PurchasedVolume:   "PurchasedVolume",
	Brix:              "DegreeBrix",
	PurchasedBrix:     "PurchasedDegreeBrix",
	Price:             "Price",
	AcreageBearing:    filepath.Join("Acreage", "bearing"),
	AcreageNonBearing: filepath.Join("Acreage", "non_bearing"),
	AcreageTotal:      filepath.Join("Acreage", "total"),
}

// Dir returns the output directory name for the category, relative to the
// data root.
func (c Category) Dir() string {
	if d, ok := categoryDirs[c]; ok {
		return d
	}
	return string(c)
}

// IsAcreage reports whether c is one of the acreage sub-blocks.
func (c Category) IsAcreage() bool {
	return c == AcreageBearing || c == AcreageNonBearing || c == AcreageTotal
}

// ParseCategory returns the Category named s.
func ParseCategory(s string) (Category, bool) {
	for c := range categoryDirs {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// VarietyRecord holds per-district values for one variety. Values are kept
// sorted by district with at most one entry per district; StateTotal sorts
// last.
type VarietyRecord struct {
	Variety Variety
	Values  []DistrictValue
}

// Set stores value for d, replacing any previous value. It reports whether
// a value was replaced.
func (r *VarietyRecord) Set(d District, value float64) bool {
	i := sort.Search(len(r.Values), func(i int) bool { return r.Values[i].District >= d })
	if i < len(r.Values) && r.Values[i].District == d {
		r.Values[i].Value = value
		return true
	}
	r.Values = append(r.Values, DistrictValue{})
	copy(r.Values[i+1:], r.Values[i:])
	r.Values[i] = DistrictValue{District: d, Value: value}
	return false
}

// Value returns the value recorded for d.
func (r *VarietyRecord) Value(d District) (float64, bool) {
	for _, dv := range r.Values {
		if dv.District == d {
			return dv.Value, true
		}
	}
	return 0, false
}

// YearlyResult maps variety names to records for one (year, category).
// Records keep the order in which varieties were first seen.
type YearlyResult struct {
	Year     int
	Category Category

	records map[string]*VarietyRecord
	order   []string
}

// NewYearlyResult creates an empty result.
func NewYearlyResult(year int, category Category) *YearlyResult {
	return &YearlyResult{
		Year:     year,
		Category: category,
		records:  make(map[string]*VarietyRecord),
	}
}

// Add stores one observation and reports whether it replaced an earlier
// value for the same variety and district.
func (y *YearlyResult) Add(v Variety, d District, value float64) bool {
	rec, ok := y.records[v.Name]
	if !ok {
		rec = &VarietyRecord{Variety: v}
		y.records[v.Name] = rec
		y.order = append(y.order, v.Name)
	}
	return rec.Set(d, value)
}

// Record returns the record for the named variety.
func (y *YearlyResult) Record(name string) (*VarietyRecord, bool) {
	rec, ok := y.records[name]
	return rec, ok
}

// Records returns the records in first-seen order.
func (y *YearlyResult) Records() []*VarietyRecord {
	out := make([]*VarietyRecord, 0, len(y.order))
	for _, name := range y.order {
		out = append(out, y.records[name])
	}
	return out
}

// Len returns the number of varieties.
func (y *YearlyResult) Len() int {
	return len(y.order)
}

// Districts returns the union of districts across all records, in the order
// they are first encountered walking records in first-seen order.
func (y *YearlyResult) Districts() []District {
	seen := make(map[District]bool)
	var out []District
	for _, rec := range y.Records() {
		for _, dv := range rec.Values {
			if !seen[dv.District] {
				seen[dv.District] = true
				out = append(out, dv.District)
			}
		}
	}
	return out
}
