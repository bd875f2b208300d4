package models

import (
	"iter"
	"slices"
)

// WineCategory is the red/white classification attached to a variety.
type WineCategory string

const (
	Red           WineCategory = "red"
	White         WineCategory = "white"
	NotApplicable WineCategory = "na"
)

// Variety is an allow-listed grape variety.
type Variety struct {
	// Name is the canonical lower-case variety name.
	Name string
	// Wine is the wine category tag.
	Wine WineCategory
}

// AllowList is an ordered, read-only set of varieties.
type AllowList struct {
	varieties []Variety
	rank      map[string]int
}

// NewAllowList builds an AllowList preserving the given order.
func NewAllowList(varieties ...Variety) *AllowList {
	l := &AllowList{
		varieties: slices.Clone(varieties),
		rank:      make(map[string]int, len(varieties)),
	}
	for i, v := range varieties {
		l.rank[v.Name] = i
	}
	return l
}

// Varieties returns the varieties in declared order.
func (l *AllowList) Varieties() []Variety {
	return slices.Clone(l.varieties)
}

// All yields the varieties in declared order without copying the list.
func (l *AllowList) All() iter.Seq[Variety] {
	return slices.Values(l.varieties)
}

// Lookup returns the variety with the given canonical name.
func (l *AllowList) Lookup(name string) (Variety, bool) {
	i, ok := l.rank[name]
	if !ok {
		return Variety{}, false
	}
	return l.varieties[i], true
}

// Rank returns the declared position of name, or -1.
func (l *AllowList) Rank(name string) int {
	if i, ok := l.rank[name]; ok {
		return i
	}
	return -1
}

// Len returns the number of varieties.
func (l *AllowList) Len() int {
	return len(l.varieties)
}

var baseVarieties = []Variety{
	{"chardonnay", White},
	{"cabernet sauvignon", Red},
	{"french colombard", White},
	{"zinfandel", Red},
	{"pinot gris", White},
	{"pinot noir", Red},
	{"rubired", Red},
	{"muscat of alexandria", White},
	{"merlot", Red},
	{"sauvignon blanc", White},
	{"petite sirah", Red},
	{"syrah", Red},
	{"barbera", Red},
	{"grenache", Red},
	{"chenin blanc", White},
	{"malbec", Red},
	{"ruby cabernet", Red},
	{"white riesling", White},
	{"petit verdot", Red},
	{"symphony", White},
	{"total raisin", NotApplicable},
	{"total red", NotApplicable},
	{"total white", NotApplicable},
	{"total wine", NotApplicable},
	{"total table", NotApplicable},
}

// AcreageVarieties is the allow-list used for acreage reports.
var AcreageVarieties = NewAllowList(baseVarieties...)

// CrushVarieties is the allow-list used for crush reports.
var CrushVarieties = NewAllowList(append(slices.Clone(baseVarieties),
	Variety{"total all varieties", NotApplicable})...)
