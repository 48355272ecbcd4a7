package core

// delimited.go tokenizes delimited text with a configurable separator and
// quote character. encoding/csv only supports '"' as the quote, while GDP
// files in the wild use other quote runes, so the tokenizer is local.
//
// Rules:
//   - A field that starts with the quote rune is quoted. Inside it a doubled
//     quote is a literal quote; separators and newlines are literal.
//   - Text after a closing quote is appended to the field.
//   - A quote rune in the middle of an unquoted field is literal.
//   - Records end at \n, \r\n or \r. Blank lines are skipped.
//   - A quoted field still open at end of input is an error.
//   - Bytes that are not valid UTF-8 are copied through unchanged.

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

type delimitedReader struct {
	r     *bufio.Reader
	sep   rune
	quote rune

	line     int // line on which the last returned record started
	nextLine int
}

func newDelimitedReader(r io.Reader, sep, quote rune) *delimitedReader {
	return &delimitedReader{
		r:        bufio.NewReader(r),
		sep:      sep,
		quote:    quote,
		nextLine: 1,
	}
}

// Line returns the 1-based line number where the last record started.
func (d *delimitedReader) Line() int {
	return d.line
}

// Read returns the next non-blank record, or io.EOF.
func (d *delimitedReader) Read() ([]string, error) {
	for {
		rec, blank, err := d.readRecord()
		if err != nil {
			return nil, err
		}
		if blank {
			continue
		}
		return rec, nil
	}
}

func (d *delimitedReader) readRecord() ([]string, bool, error) {
	d.line = d.nextLine

	var (
		fields []string
		field  strings.Builder
	)
	started := false
	fieldStart := true

	for {
		r, raw, err := d.readRune()
		if err == io.EOF {
			if !started {
				return nil, false, io.EOF
			}
			return append(fields, field.String()), false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if raw != 0 {
			started = true
			fieldStart = false
			field.WriteByte(raw)
			continue
		}

		if fieldStart && r == d.quote {
			started = true
			fieldStart = false
			if err := d.readQuoted(&field); err != nil {
				return nil, false, err
			}
			continue
		}

		switch r {
		case d.sep:
			started = true
			fields = append(fields, field.String())
			field.Reset()
			fieldStart = true
		case '\n', '\r':
			if r == '\r' {
				next, _, err := d.r.ReadRune()
				if err == nil && next != '\n' {
					_ = d.r.UnreadRune()
				} else if err != nil && err != io.EOF {
					return nil, false, err
				}
			}
			d.nextLine++
			if !started {
				return nil, true, nil
			}
			return append(fields, field.String()), false, nil
		default:
			started = true
			fieldStart = false
			field.WriteRune(r)
		}
	}
}

// readRune reads one rune. For a byte that is not valid UTF-8 it returns
// that byte in raw, otherwise raw is 0.
func (d *delimitedReader) readRune() (r rune, raw byte, err error) {
	r, size, err := d.r.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	if r == utf8.RuneError && size == 1 {
		if err := d.r.UnreadRune(); err != nil {
			return 0, 0, err
		}
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		return r, b, nil
	}
	return r, 0, nil
}

// readQuoted consumes a quoted section; the opening quote is already read.
func (d *delimitedReader) readQuoted(field *strings.Builder) error {
	for {
		r, raw, err := d.readRune()
		if err == io.EOF {
			return &SchemaError{Line: d.line, Reason: "unterminated quoted field"}
		}
		if err != nil {
			return err
		}
		if raw != 0 {
			field.WriteByte(raw)
			continue
		}

		if r == d.quote {
			next, _, err := d.r.ReadRune()
			switch {
			case err == nil && next == d.quote:
				field.WriteRune(d.quote)
				continue
			case err == nil:
				_ = d.r.UnreadRune()
			case err != io.EOF:
				return err
			}
			return nil
		}

		if r == '\n' {
			d.nextLine++
		}
		field.WriteRune(r)
	}
}
