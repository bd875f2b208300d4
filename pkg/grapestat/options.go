// Package grapestat extracts variety by district statistics from USDA
// California grape crush and acreage reports.
package grapestat

import (
	"fmt"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/parser"
)

// Variant represents the report family being read.
type Variant string

const (
	// VariantCrush reads the grape crush report tables.
	VariantCrush Variant = "crush"
	// VariantAcreage reads the grape acreage report tables.
	VariantAcreage Variant = "acreage"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantCrush, VariantAcreage:
		return Variant(s), nil
	}
	return "", fmt.Errorf("invalid variant: %s (must be crush or acreage)", s)
}

// Options configures extraction behavior.
type Options struct {
	// Variant selects the report family.
	Variant Variant
	// Category is the crush statistic read; ignored for acreage, which
	// always yields the bearing, non-bearing and total categories.
	Category models.Category
	// Year labels the results.
	Year int
	// CSVCharset is passed to the grid loader for .csv inputs.
	CSVCharset string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Variant:  VariantCrush,
		Category: models.Volume,
	}
}

// Categories returns the categories an extraction with these options yields.
func (o Options) Categories() []models.Category {
	if o.Variant == VariantAcreage {
		return models.AcreageCategories
	}
	return []models.Category{o.Category}
}

// AllowList returns the variety allow-list for the variant.
func (o Options) AllowList() *models.AllowList {
	if o.Variant == VariantAcreage {
		return models.AcreageVarieties
	}
	return models.CrushVarieties
}

func (o Options) loadOptions() parser.LoadOptions {
	return parser.LoadOptions{CSVCharset: o.CSVCharset}
}

// crushPostfixes maps crush categories to the file name postfix of their
// table in the yearly archive.
var crushPostfixes = map[models.Category]string{
	models.Volume:          "02",
	models.Brix:            "03",
	models.PurchasedVolume: "04",
	models.PurchasedBrix:   "05",
	models.Price:           "06",
}

// CrushPostfix returns the sheet file postfix for a crush category.
func CrushPostfix(c models.Category) (string, bool) {
	p, ok := crushPostfixes[c]
	return p, ok
}
