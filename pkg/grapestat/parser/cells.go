// Package parser locates header blocks in report sheets and extracts
// variety by district values from them.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	xlsb "github.com/TsubasaBE/go-xlsb"
	"github.com/extrame/xls"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// LoadOptions configures grid loading.
type LoadOptions struct {
	// CSVCharset is "utf-8" (default) or "windows-1252".
	CSVCharset string
}

// Sheet is the text content of one worksheet.
type Sheet struct {
	Name string
	Rows [][]string
}

// LoadGrid reads the first sheet of the spreadsheet at path.
func LoadGrid(path string, opts LoadOptions) (*models.Grid, error) {
	sheets, err := ReadSheets(path, opts)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	if len(sheets) > 0 {
		rows = trimRows(sheets[0].Rows)
	}
	g := models.NewGrid(path, rows)
	zap.L().Debug("loaded grid",
		zap.String("file", path),
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()))
	return g, nil
}

// ReadSheets reads every sheet of the spreadsheet at path, in workbook order.
func ReadSheets(path string, opts LoadOptions) ([]Sheet, error) {
	var (
		sheets []Sheet
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		sheets, err = readXLSX(path)
	case ".xlsb":
		sheets, err = readXLSB(path)
	case ".xls":
		sheets, err = readXLS(path)
	case ".csv":
		sheets, err = readCSV(path, opts.CSVCharset)
	default:
		return nil, fileError(path, "cells", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext))
	}
	if err != nil {
		return nil, fileError(path, "cells", err)
	}
	return sheets, nil
}

func readXLSX(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := ExtractCells(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// ExtractCells returns the display text of every row of a sheet.
func ExtractCells(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName)
}

func readXLSB(path string) ([]Sheet, error) {
	wb, err := xlsb.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var sheets []Sheet
	for i, name := range wb.Sheets() {
		ws, err := wb.Sheet(i + 1)
		if err != nil {
			return nil, err
		}
		var rows [][]string
		for row := range ws.Rows(true) {
			for _, cell := range row {
				if cell.V == nil {
					continue
				}
				rows = setCell(rows, cell.R, cell.C, wb.FormatCell(cell.V, cell.Style))
			}
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

func readXLS(path string) ([]Sheet, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}

	var sheets []Sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				continue
			}
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				if text := row.Col(c); text != "" {
					rows = setCell(rows, r, c, text)
				}
			}
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: rows})
	}
	return sheets, nil
}

func readCSV(path, charset string) ([]Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "windows-1252", "cp1252", "latin1":
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("unknown csv charset %q", charset)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []Sheet{{Name: name, Rows: rows}}, nil
}

// setCell grows rows as needed and stores text at (r, c).
func setCell(rows [][]string, r, c int, text string) [][]string {
	for len(rows) <= r {
		rows = append(rows, nil)
	}
	row := rows[r]
	for len(row) <= c {
		row = append(row, "")
	}
	row[c] = text
	rows[r] = row
	return rows
}
