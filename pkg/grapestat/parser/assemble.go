package parser

import (
	"fmt"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"go.uber.org/zap"
)

// Observation is one numeric cell attributed to a variety and district.
type Observation struct {
	Category models.Category
	Variety  models.Variety
	District models.District
	Value    float64
	// Row and Col locate the value cell in the source grid.
	Row, Col int
}

// Assembler collects observations for one year into per-category results.
// Observations from several grids and header blocks merge into the same
// results; a later value for the same variety and district replaces an
// earlier one.
type Assembler struct {
	year    int
	allow   *models.AllowList
	results map[models.Category]*models.YearlyResult
	order   []models.Category
}

// NewAssembler creates an Assembler producing one result per category.
func NewAssembler(year int, allow *models.AllowList, categories ...models.Category) *Assembler {
	a := &Assembler{
		year:    year,
		allow:   allow,
		results: make(map[models.Category]*models.YearlyResult, len(categories)),
	}
	for _, c := range categories {
		a.results[c] = models.NewYearlyResult(year, c)
		a.order = append(a.order, c)
	}
	return a
}

// Add records an observation read from file.
func (a *Assembler) Add(file string, o Observation) error {
	if !o.District.Valid() {
		return NewExtractionError(file, "assemble", o.Row, o.Col,
			fmt.Sprintf("district %d", int(o.District)), ErrInvalidDistrict)
	}
	res, ok := a.results[o.Category]
	if !ok {
		return NewExtractionError(file, "assemble", o.Row, o.Col, string(o.Category),
			fmt.Errorf("unexpected category %q", o.Category))
	}
	if res.Add(o.Variety, o.District, o.Value) {
		zap.L().Debug("replacing duplicate value",
			zap.String("file", file),
			zap.String("category", string(o.Category)),
			zap.String("variety", o.Variety.Name),
			zap.Int("district", int(o.District)),
			zap.Int("row", o.Row), zap.Int("col", o.Col))
	}
	return nil
}

// Results verifies every record and returns the results in category order.
func (a *Assembler) Results() ([]*models.YearlyResult, error) {
	out := make([]*models.YearlyResult, 0, len(a.order))
	for _, c := range a.order {
		res := a.results[c]
		if err := Verify(res, a.allow); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Result returns the result for a single category.
func (a *Assembler) Result(c models.Category) (*models.YearlyResult, bool) {
	res, ok := a.results[c]
	return res, ok
}

// Verify checks that every record names an allow-listed variety and holds
// only valid districts.
func Verify(res *models.YearlyResult, allow *models.AllowList) error {
	file := fmt.Sprintf("%d/%s", res.Year, res.Category)
	for _, rec := range res.Records() {
		if _, ok := allow.Lookup(rec.Variety.Name); !ok {
			return fileError(file, "assemble", fmt.Errorf("%w: %q", ErrUnknownVariety, rec.Variety.Name))
		}
		for _, dv := range rec.Values {
			if !dv.District.Valid() {
				return fileError(file, "assemble",
					fmt.Errorf("%w: %d for %q", ErrInvalidDistrict, int(dv.District), rec.Variety.Name))
			}
		}
	}
	return nil
}
