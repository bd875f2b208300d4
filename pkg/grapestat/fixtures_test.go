package grapestat

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

type fixtureSheet struct {
	Name string
	Rows [][]string
}

var crushVolumeRows = [][]string{
	{"Table 2. Tons of grapes crushed by district"},
	{"Type and Variety", "1", "2", "State Total"},
	{"Chardonnay", "1,200.5", "--", "1,200.5"},
	{"Zinfandel", "30", "40", "70"},
	{"Source: NASS"},
	{"1/ Preliminary"},
}

var acreageRows = [][]string{
	{"Grape acreage by district"},
	{"", "Type and Variety", "district 1", "district 2", "State Total"},
	{"", "Chardonnay", "10.5", "20.0", "30.5"},
	{"", "Source: NASS"},
	{"", "1/ Preliminary"},
	{"", "(D) Withheld"},
}

// workbook builds an xlsx file holding sheets in order.
func workbook(t *testing.T, sheets ...fixtureSheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		switch {
		case i == 0 && sheet.Name != "Sheet1":
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		case i > 0:
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("NewSheet failed: %v", err)
			}
		}
		for r, row := range sheet.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

// zipArchive packs files into an in-memory zip.
func zipArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}
