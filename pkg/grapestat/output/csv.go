// Package output serializes yearly results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
)

const (
	// VarietyColumn is the header of the variety label column.
	VarietyColumn = "Type and Variety"
	// WineCategoryColumn is the header of the wine category column.
	WineCategoryColumn = "Wine Category"
)

// WriteCSV writes res as a table with one row per variety. Columns after the
// two fixed ones are the districts in first-seen order; rows follow the
// allow-list order.
func WriteCSV(w io.Writer, res *models.YearlyResult, allow *models.AllowList) error {
	districts := res.Districts()
	header := []string{VarietyColumn, WineCategoryColumn}
	for _, d := range districts {
		header = append(header, d.String())
	}

	records := res.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return allow.Rank(records[i].Variety.Name) < allow.Rank(records[j].Variety.Name)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if allow.Rank(rec.Variety.Name) < 0 {
			return fmt.Errorf("variety %q not in allow-list", rec.Variety.Name)
		}
		row := []string{rec.Variety.Name, string(rec.Variety.Wine)}
		for _, d := range districts {
			if v, ok := rec.Value(d); ok {
				row = append(row, strconv.FormatFloat(v, 'f', 1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes res to <root>/<category dir>/<year>.csv and returns the
// path written.
func WriteCSVFile(root string, res *models.YearlyResult, allow *models.AllowList) (string, error) {
	dir := filepath.Join(root, res.Category.Dir())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", eris.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.csv", res.Year))
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "create %s", path)
	}
	if err := WriteCSV(f, res, allow); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader, year int, category models.Category, allow *models.AllowList) (*models.YearlyResult, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	res := models.NewYearlyResult(year, category)
	if len(rows) == 0 {
		return res, nil
	}

	header := rows[0]
	if len(header) < 2 || header[0] != VarietyColumn || header[1] != WineCategoryColumn {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	districts := make([]models.District, len(header)-2)
	for i, h := range header[2:] {
		d, err := models.ParseDistrict(h)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+2, err)
		}
		districts[i] = d
	}

	for n, row := range rows[1:] {
		v, ok := allow.Lookup(row[0])
		if !ok {
			return nil, fmt.Errorf("row %d: variety %q not in allow-list", n+1, row[0])
		}
		for i, cell := range row[2:] {
			if cell == "" || i >= len(districts) {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", n+1, i+2, err)
			}
			res.Add(v, districts[i], value)
		}
	}
	return res, nil
}
