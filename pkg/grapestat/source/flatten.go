package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Flatten copies every spreadsheet in src into dst so that each file in dst
// holds a single sheet. Workbooks with one sheet, or whose first sheet is the
// default "Sheet1", are copied as is; other workbooks are split into one
// .xlsx file per sheet named after the sheet.
func Flatten(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return eris.Wrap(err, "flatten: create dir")
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return eris.Wrapf(err, "flatten: read %s", src)
	}
	for _, e := range entries {
		if e.IsDir() || !IsSpreadsheet(e.Name()) {
			continue
		}
		path := filepath.Join(src, e.Name())
		sheets, err := parser.ReadSheets(path, parser.LoadOptions{})
		if err != nil {
			return eris.Wrapf(err, "flatten: read %s", path)
		}
		if len(sheets) <= 1 || isDefaultSheetName(sheets[0].Name) {
			if err := copyFile(path, filepath.Join(dst, e.Name())); err != nil {
				return err
			}
			continue
		}
		for _, sheet := range sheets {
			out := filepath.Join(dst, sanitizeName(sheet.Name)+".xlsx")
			if err := WriteSheet(out, sheet); err != nil {
				return err
			}
		}
		zap.L().Debug("flattened workbook", zap.String("file", path), zap.Int("sheets", len(sheets)))
	}
	return nil
}

// WriteSheet saves sheet as a single-sheet workbook at path.
func WriteSheet(path string, sheet parser.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	for i, row := range sheet.Rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return eris.Wrap(err, "flatten: cell name")
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return eris.Wrapf(err, "flatten: write row %d", i+1)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "flatten: save %s", path)
	}
	return nil
}

// IsSpreadsheet reports whether name has a spreadsheet extension.
func IsSpreadsheet(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xls", ".xlsx", ".xlsm", ".xlsb":
		return true
	}
	return false
}

func isDefaultSheetName(name string) bool {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "") == "sheet1"
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}
