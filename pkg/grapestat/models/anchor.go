package models

import "fmt"

// HeaderKind identifies which label convention produced a header anchor.
type HeaderKind string

const (
	// HeaderLabeled is the current "Type and Variety" label.
	HeaderLabeled HeaderKind = "type and variety"
	// HeaderLegacy is the "VARNAME" label of older acreage reports.
	HeaderLegacy HeaderKind = "varname"
	// HeaderInferred marks a header row whose label cell was omitted and was
	// located from the "dist N ..." pattern of its right neighbour.
	HeaderInferred HeaderKind = "inferred"
	// HeaderCrush is a crush report variety label.
	HeaderCrush HeaderKind = "crush"
)

// Anchor marks the top of a variety-name column and its district header row.
type Anchor struct {
	// Row is the header row index (0-based).
	Row int
	// Col is the variety-name column index (0-based).
	Col int
	// Kind is the label convention that matched.
	Kind HeaderKind
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s@(%d,%d)", a.Kind, a.Row, a.Col)
}
