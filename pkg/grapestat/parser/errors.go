package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader indicates no header anchor was found in a grid.
	ErrNoHeader = errors.New("no header anchor found")
	// ErrNoVarieties indicates a header anchor had no allow-listed variety below it.
	ErrNoVarieties = errors.New("no allow-listed variety under header")
	// ErrUnresolvedColumn indicates data under a column whose header matched no district pattern.
	ErrUnresolvedColumn = errors.New("no district for column with data")
	// ErrInvalidDistrict indicates a resolved district outside 1..17 that is not the state total.
	ErrInvalidDistrict = errors.New("district out of range")
	// ErrUnknownVariety indicates a variety that is not on the allow-list.
	ErrUnknownVariety = errors.New("variety not in allow-list")
	// ErrBadNumber indicates a value cell that could not be parsed after cleaning.
	ErrBadNumber = errors.New("unparseable numeric value")
	// ErrUnsupportedFormat indicates a spreadsheet file type with no reader.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// ExtractionError represents a fatal error while extracting one file.
type ExtractionError struct {
	File      string
	Component string // "layout", "districts", "varieties", "assemble", "cells"
	Row       int    // -1 when not tied to a cell
	Col       int
	Text      string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("extraction error in %q (%s): %v", e.File, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in %q (%s) at (%d,%d) %q: %v",
		e.File, e.Component, e.Row, e.Col, e.Text, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates an ExtractionError tied to a cell.
func NewExtractionError(file, component string, row, col int, text string, err error) *ExtractionError {
	return &ExtractionError{
		File:      file,
		Component: component,
		Row:       row,
		Col:       col,
		Text:      text,
		Err:       err,
	}
}

func fileError(file, component string, err error) *ExtractionError {
	return NewExtractionError(file, component, -1, -1, "", err)
}
