package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// LoadTable reads the delimited file at path into a Table keyed by keyField.
// The first record is the header. The file is closed on every return path.
//
// Errors are *FileAccessError when the file cannot be opened or read and
// *SchemaError when the key column is missing from the header or a row.
func LoadTable(path, keyField string, sep, quote rune) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	cr := wrapForLoad(f)
	table, err := readTable(cr, keyField, sep, quote)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
			return nil, se
		}
		return nil, &FileAccessError{Path: path, Err: err}
	}

	logger := slog.With("path", path, "key_field", keyField)
	if table.Duplicates() > 0 {
		logger.Warn("duplicate keys in table, last row wins", "duplicates", table.Duplicates())
	}
	logger.Debug("table loaded",
		"rows", table.Len(),
		"columns", len(table.Header),
		"bytes", cr.BytesRead,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return table, nil
}

// ReadTable reads a delimited table from r. It behaves like LoadTable
// without the file handling; *SchemaError values carry no path.
func ReadTable(r io.Reader, keyField string, sep, quote rune) (*Table, error) {
	return readTable(wrapForLoad(r), keyField, sep, quote)
}

func readTable(r io.Reader, keyField string, sep, quote rune) (*Table, error) {
	dr := newDelimitedReader(r, sep, quote)

	header, err := dr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Field: keyField, Reason: "no header row"}
	}
	if err != nil {
		return nil, err
	}

	keyIdx := -1
	for i, h := range header {
		if h == keyField {
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, &SchemaError{Line: dr.Line(), Field: keyField, Reason: "key column not found in header"}
	}

	fields := uniqueFields(header)
	table := NewTable(keyField, fields)

	for {
		rec, err := dr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if keyIdx >= len(rec) {
			return nil, &SchemaError{
				Line:   dr.Line(),
				Field:  keyField,
				Reason: fmt.Sprintf("row has %d fields, key column is field %d", len(rec), keyIdx+1),
			}
		}

		row := newRow(fields)
		for i, h := range header {
			if i >= len(rec) {
				break
			}
			row.values[h] = rec[i]
		}
		table.put(rec[keyIdx], row)
	}

	return table, nil
}

// uniqueFields returns header names with repeats removed, keeping first position.
func uniqueFields(header []string) []string {
	seen := make(map[string]bool, len(header))
	out := make([]string, 0, len(header))
	for _, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
