package core

import (
	"context"
	"io"
	"sort"
)

// Row is one record of a loaded table: header name -> raw field value.
// Rows are built by the loader and never modified afterwards.
type Row struct {
	values map[string]string
}

// newRow creates a row with room for every column of header.
func newRow(header []string) *Row {
	return &Row{values: make(map[string]string, len(header))}
}

// Get returns the raw value of field. The boolean is false when the column
// is absent from the row, which is distinct from an empty value.
func (r *Row) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Has reports whether the row carries the named field.
func (r *Row) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Table maps the value of the key column to its row.
// On duplicate keys the last row read wins.
type Table struct {
	KeyField string
	Header   []string

	rows       map[string]*Row
	duplicates int
}

// NewTable creates an empty table keyed by keyField.
func NewTable(keyField string, header []string) *Table {
	return &Table{
		KeyField: keyField,
		Header:   header,
		rows:     make(map[string]*Row),
	}
}

// put stores row under key, replacing any previous row with the same key.
func (t *Table) put(key string, row *Row) {
	if _, exists := t.rows[key]; exists {
		t.duplicates++
	}
	t.rows[key] = row
}

// Lookup returns the row stored under key.
func (t *Table) Lookup(key string) (*Row, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.rows)
}

// Duplicates returns how many rows were overwritten by a later row with the same key.
func (t *Table) Duplicates() int {
	return t.duplicates
}

// Keys returns all row keys, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Names returns the set of keys for use with Reconcile.
func (t *Table) Names() NameSet {
	names := make(NameSet, len(t.rows))
	for k := range t.rows {
		names[k] = struct{}{}
	}
	return names
}

// CodeNameMap maps a map display code (e.g. "af") to a country name.
type CodeNameMap map[string]string

// Codes returns the map's codes, sorted.
func (m CodeNameMap) Codes() []string {
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// NameSet is a set of known country names.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from a list of names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports exact, case-sensitive membership.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// CodeSet is a set of display codes.
type CodeSet map[string]struct{}

// NewCodeSet builds a CodeSet from a list of codes.
func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts code into the set.
func (s CodeSet) Add(code string) {
	s[code] = struct{}{}
}

// Has reports whether code is in the set.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Len returns the number of codes.
func (s CodeSet) Len() int {
	return len(s)
}

// Sorted returns the codes in ascending order.
func (s CodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ReconciliationResult partitions the codes of a CodeNameMap.
// Every input code appears in exactly one of Matched or Unmatched.
type ReconciliationResult struct {
	Matched   CodeNameMap
	Unmatched CodeSet
}

// YearResolution partitions the codes of a CodeNameMap for a single year.
// Values holds log10 of the year's value; the three collections are disjoint
// and together cover every input code.
type YearResolution struct {
	Year     string
	Values   map[string]float64
	NotFound CodeSet
	NoData   CodeSet
}

// Total returns the number of codes covered by the resolution.
func (y YearResolution) Total() int {
	return len(y.Values) + y.NotFound.Len() + y.NoData.Len()
}

// Series labels used for the three partitions when drawing a map.
const (
	SeriesNotFound = "Not found in world map"
	SeriesNoData   = "No data"
)

// SeriesValues returns the label of the value series for year.
func SeriesValues(year string) string {
	return "In year " + year
}

// MapTitle returns the chart title for year.
func MapTitle(year string) string {
	return "GDP data by country for year " + year
}

// MapData is everything a MapRenderer needs to draw one year.
type MapData struct {
	Title    string
	Year     string
	Values   map[string]float64
	NotFound CodeSet
	NoData   CodeSet
	Names    CodeNameMap
}

// NewMapData builds the renderer input for a resolved year.
func NewMapData(res YearResolution, names CodeNameMap) MapData {
	return MapData{
		Title:    MapTitle(res.Year),
		Year:     res.Year,
		Values:   res.Values,
		NotFound: res.NotFound,
		NoData:   res.NoData,
		Names:    names,
	}
}

// MapRenderer draws a MapData and writes the encoded image to w.
// The renderer owns colors, legend and file encoding.
type MapRenderer interface {
	Render(ctx context.Context, w io.Writer, data MapData) error
	// Extension returns the file extension of the rendered output, e.g. ".svg".
	Extension() string
}
