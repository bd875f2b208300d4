package grapestat

import (
	"fmt"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/parser"
	"go.uber.org/zap"
)

// Extract reads the report sheets at paths and returns one result per
// category. Every path contributes to the same results, so an acreage
// report split across several sheet files yields a single set of tables.
//
// A crush sheet without a header block yields no results and no error.
func Extract(paths []string, opts Options) ([]*models.YearlyResult, error) {
	if opts.Variant == VariantCrush {
		if _, ok := CrushPostfix(opts.Category); !ok {
			return nil, fmt.Errorf("invalid crush category: %s", opts.Category)
		}
	}

	asm := parser.NewAssembler(opts.Year, opts.AllowList(), opts.Categories()...)
	found := false
	for _, path := range paths {
		zap.L().Info("parsing", zap.String("file", path), zap.Int("year", opts.Year))
		g, err := parser.LoadGrid(path, opts.loadOptions())
		if err != nil {
			return nil, err
		}

		switch opts.Variant {
		case VariantAcreage:
			if err := parser.ExtractAcreage(g, asm); err != nil {
				return nil, err
			}
			found = true
		default:
			ok, err := parser.ExtractCrush(g, opts.Category, asm)
			if err != nil {
				return nil, err
			}
			found = found || ok
		}
	}
	if !found {
		return nil, nil
	}
	return asm.Results()
}

// ExtractFile reads a single report sheet.
func ExtractFile(path string, opts Options) ([]*models.YearlyResult, error) {
	return Extract([]string{path}, opts)
}
