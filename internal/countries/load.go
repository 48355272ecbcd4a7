package countries

import (
	"fmt"

	"github.com/JonMunkholm/gdpmap/internal/core"
)

// Default column names and delimiters for country files.
const (
	DefaultCodeField = "code"
	DefaultNameField = "name"
)

// Load reads a code to name table from a delimited file. Each row needs
// both columns; an empty code is skipped.
func Load(path, codeField, nameField string, sep, quote rune) (core.CodeNameMap, error) {
	table, err := core.LoadTable(path, codeField, sep, quote)
	if err != nil {
		return nil, err
	}

	if !hasField(table.Header, nameField) {
		return nil, &core.SchemaError{
			Path:   path,
			Line:   1,
			Field:  nameField,
			Reason: "name column not found in header",
		}
	}

	out := make(core.CodeNameMap, table.Len())
	for _, code := range table.Keys() {
		if code == "" {
			continue
		}
		row, _ := table.Lookup(code)
		name, ok := row.Get(nameField)
		if !ok || name == "" {
			return nil, &core.SchemaError{
				Path:   path,
				Field:  nameField,
				Reason: fmt.Sprintf("no name for code %q", code),
			}
		}
		out[code] = name
	}
	return out, nil
}

// Open returns the table at path, or World when path is empty. Files use
// DefaultCodeField, DefaultNameField, commas and double quotes.
func Open(path string) (core.CodeNameMap, error) {
	if path == "" {
		return World(), nil
	}
	return Load(path, DefaultCodeField, DefaultNameField, ',', '"')
}

func hasField(header []string, field string) bool {
	for _, h := range header {
		if h == field {
			return true
		}
	}
	return false
}
