package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractCrushSideBySide(t *testing.T) {
	g := grid(
		row("Table 2. Grapes crushed, by type, variety and district"),
		row("Type and Variety", "1", "2", "3", "", "Type and Variety", "4", "5", "State Total"),
		row("Chardonnay", "10", "20", "30", "", "Chardonnay", "40", "50", "150"),
		row("Zinfandel", "1,000", "--", "5", "", "Zinfandel", "7", "8", "1,020"),
		row("Total All Varieties", "1,010", "20", "35", "", "Total All Varieties", "47", "58", "1,170"),
		row("Source: NASS"),
		row("1/ Preliminary"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Volume)
	found, err := ExtractCrush(g, models.Volume, asm)
	if err != nil {
		t.Fatalf("ExtractCrush failed: %v", err)
	}
	if !found {
		t.Fatal("Expected header to be found")
	}

	res, _ := asm.Result(models.Volume)
	expectValues(t, res, "chardonnay", []models.DistrictValue{
		{District: 1, Value: 10}, {District: 2, Value: 20}, {District: 3, Value: 30},
		{District: 4, Value: 40}, {District: 5, Value: 50}, {District: models.StateTotal, Value: 150},
	})
	expectValues(t, res, "zinfandel", []models.DistrictValue{
		{District: 1, Value: 1000}, {District: 2, Value: 0}, {District: 3, Value: 5},
		{District: 4, Value: 7}, {District: 5, Value: 8}, {District: models.StateTotal, Value: 1020},
	})

	records := res.Records()
	if len(records) != 3 || records[2].Variety.Name != "total all varieties" {
		t.Errorf("Expected 3 records ending with the total, got %d", len(records))
	}
}

func TestExtractCrushNonNumericHeaderEndsRow(t *testing.T) {
	g := grid(
		row("Type and Variety", "1", "Total", "Notes"),
		row("Merlot", "12", "12", "1.2.3"),
		row("Source: NASS"),
		row("footnote"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Price)
	if _, err := ExtractCrush(g, models.Price, asm); err != nil {
		t.Fatalf("ExtractCrush failed: %v", err)
	}
	res, _ := asm.Result(models.Price)
	expectValues(t, res, "merlot", []models.DistrictValue{
		{District: 1, Value: 12}, {District: models.StateTotal, Value: 12},
	})
}

func TestExtractCrushLeftBlockStopsAtGap(t *testing.T) {
	g := grid(
		row("Type and Variety", "1", "Notes", "", "Type and Variety", "2"),
		row("Merlot", "3", "x", "", "Merlot", "4"),
		row("Source: NASS"),
		row("footnote"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Brix)
	if _, err := ExtractCrush(g, models.Brix, asm); err != nil {
		t.Fatalf("ExtractCrush failed: %v", err)
	}
	res, _ := asm.Result(models.Brix)
	expectValues(t, res, "merlot", []models.DistrictValue{
		{District: 1, Value: 3}, {District: 2, Value: 4},
	})
}

func TestExtractCrushNoHeader(t *testing.T) {
	g := grid(
		row("Table 6. Weighted average price"),
		row("Merlot", "1"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Price)
	found, err := ExtractCrush(g, models.Price, asm)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found {
		t.Error("Expected found=false")
	}
}

func TestExtractCrushInvalidDistrict(t *testing.T) {
	g := grid(
		row("Type and Variety", "18"),
		row("Merlot", "1"),
		row("Source: NASS"),
		row("footnote"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Volume)
	if _, err := ExtractCrush(g, models.Volume, asm); !errors.Is(err, ErrInvalidDistrict) {
		t.Errorf("Expected ErrInvalidDistrict, got %v", err)
	}
}

func TestExtractCrushBadNumber(t *testing.T) {
	g := grid(
		row("Type and Variety", "1"),
		row("Merlot", "1.2.3"),
		row("Source: NASS"),
		row("footnote"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Volume)
	_, err := ExtractCrush(g, models.Volume, asm)
	if !errors.Is(err, ErrBadNumber) {
		t.Fatalf("Expected ErrBadNumber, got %v", err)
	}
	var extErr *ExtractionError
	if errors.As(err, &extErr) && extErr.Text != "1.2.3" {
		t.Errorf("Expected offending text in error, got %q", extErr.Text)
	}
}

func TestExtractCrushFootnoteAnchorLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	g := grid(
		row("Type and Variety", "1"),
		row("Merlot", "4"),
		row(),
		row("1/ Variety totals may not add due to rounding"),
		row("Source: NASS"),
		row(""),
		row("footnote"),
	)

	asm := NewAssembler(2020, models.CrushVarieties, models.Volume)
	_, err := ExtractCrush(g, models.Volume, asm)
	if !errors.Is(err, ErrNoVarieties) {
		t.Fatalf("Expected ErrNoVarieties, got %v", err)
	}

	entries := logs.FilterMessage("crush header without varieties").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["text"] != "1/ Variety totals may not add due to rounding" {
		t.Errorf("Expected anchor text in warning, got %v", fields["text"])
	}
	if fields["row"] != int64(3) {
		t.Errorf("Expected row 3, got %v", fields["row"])
	}
}
