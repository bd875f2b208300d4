package models

import (
	"strconv"
	"strings"
)

// District identifies a winegrowing sub-region, or the statewide total.
type District int

const (
	// MinDistrict is the lowest numbered district.
	MinDistrict District = 1
	// MaxDistrict is the highest numbered district.
	MaxDistrict District = 17
	// StateTotal is the sentinel for the statewide total column.
	StateTotal District = 100
)

// StateTotalLabel is the column header written for StateTotal.
const StateTotalLabel = "California"

// Valid reports whether d is a numbered district or the statewide total.
func (d District) Valid() bool {
	return d == StateTotal || (d >= MinDistrict && d <= MaxDistrict)
}

// String renders the district as it appears in output headers.
func (d District) String() string {
	if d == StateTotal {
		return StateTotalLabel
	}
	return strconv.Itoa(int(d))
}

// ParseDistrict parses an output header back into a District.
func ParseDistrict(s string) (District, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, StateTotalLabel) {
		return StateTotal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return District(n), nil
}

// DistrictValue is one numeric observation for a district.
type DistrictValue struct {
	District District
	Value    float64
}
