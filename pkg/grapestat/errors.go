package grapestat

import (
	"github.com/ukaji3/grapestat-go/pkg/grapestat/parser"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/source"
)

var (
	// ErrNoHeader indicates no header anchor was found in a sheet.
	ErrNoHeader = parser.ErrNoHeader
	// ErrNoVarieties indicates a header block held no allow-listed variety.
	ErrNoVarieties = parser.ErrNoVarieties
	// ErrUnresolvedColumn indicates data under an unrecognized district column.
	ErrUnresolvedColumn = parser.ErrUnresolvedColumn
	// ErrInvalidDistrict indicates a district code outside 1..17 other than the state total.
	ErrInvalidDistrict = parser.ErrInvalidDistrict
	// ErrUnknownVariety indicates a variety missing from the allow-list.
	ErrUnknownVariety = parser.ErrUnknownVariety
	// ErrYearNotListed indicates a requested year with no published report.
	ErrYearNotListed = source.ErrYearNotListed
	// ErrNoSheetFile indicates the report sheet could not be picked from an archive.
	ErrNoSheetFile = source.ErrNoSheetFile
)

// ExtractionError represents a fatal error while extracting one file.
type ExtractionError = parser.ExtractionError
