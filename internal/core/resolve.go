package core

import (
	"math"
	"strconv"
	"strings"
)

// Resolve looks up year for every code of codeToName in table and sorts the
// codes into three buckets:
//
//   - Values: log10 of the year's value
//   - NotFound: the code's name is not a key of table
//   - NoData: the row has no year column, or its value is empty
//
// Surrounding whitespace is ignored when parsing a value, but a value made
// only of whitespace is not empty: it fails to parse.
//
// A non-empty value that is not a number fails with *ParseError and a value
// that is not strictly positive fails with *NumericDomainError. On error no
// partial result is returned. Codes are visited in sorted order so the error
// reported for a bad file is always the same one.
func Resolve(table *Table, codeToName CodeNameMap, year string) (YearResolution, error) {
	rec := Reconcile(codeToName, table.Names())

	res := YearResolution{
		Year:     year,
		Values:   make(map[string]float64, len(rec.Matched)),
		NotFound: rec.Unmatched,
		NoData:   make(CodeSet),
	}

	for _, code := range rec.Matched.Codes() {
		name := rec.Matched[code]
		row, _ := table.Lookup(name)

		raw, ok := row.Get(year)
		if !ok || raw == "" {
			res.NoData.Add(code)
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return YearResolution{}, &ParseError{Code: code, Name: name, Year: year, Value: raw, Err: err}
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return YearResolution{}, &NumericDomainError{Code: code, Name: name, Year: year, Value: v}
		}

		res.Values[code] = math.Log10(v)
	}

	return res, nil
}
