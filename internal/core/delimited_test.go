package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllRecords(t *testing.T, input string, sep, quote rune) [][]string {
	t.Helper()
	dr := newDelimitedReader(strings.NewReader(input), sep, quote)
	var out [][]string
	for {
		rec, err := dr.Read()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestDelimitedReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   rune
		quote rune
		want  [][]string
	}{
		{
			name:  "plain comma",
			input: "a,b,c\n1,2,3\n",
			sep:   ',', quote: '"',
			want: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b\n1,2",
			sep:   ',', quote: '"',
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "quoted separator and newline",
			input: "\"Korea, Rep.\",\"line\nbreak\"\n",
			sep:   ',', quote: '"',
			want: [][]string{{"Korea, Rep.", "line\nbreak"}},
		},
		{
			name:  "doubled quote is literal",
			input: `"say ""hi""",x` + "\n",
			sep:   ',', quote: '"',
			want: [][]string{{`say "hi"`, "x"}},
		},
		{
			name:  "custom separator and quote",
			input: "'Name';'1960'\n'Cote d''Ivoire';'12.5'\n",
			sep:   ';', quote: '\'',
			want: [][]string{{"Name", "1960"}, {"Cote d'Ivoire", "12.5"}},
		},
		{
			name:  "tab separator keeps double quotes literal",
			input: "a\t\"b\"\n",
			sep:   '\t', quote: '\'',
			want: [][]string{{"a", `"b"`}},
		},
		{
			name:  "blank lines skipped",
			input: "a,b\n\n\r\n1,2\n\n",
			sep:   ',', quote: '"',
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "crlf and cr endings",
			input: "a,b\r\n1,2\r3,4",
			sep:   ',', quote: '"',
			want: [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:  "empty fields",
			input: ",,\n\"\",x,\n",
			sep:   ',', quote: '"',
			want: [][]string{{"", "", ""}, {"", "x", ""}},
		},
		{
			name:  "bare quote in unquoted field",
			input: "5\" disk,x\n",
			sep:   ',', quote: '"',
			want: [][]string{{`5" disk`, "x"}},
		},
		{
			name:  "text after closing quote appended",
			input: `"ab"cd,e` + "\n",
			sep:   ',', quote: '"',
			want: [][]string{{"abcd", "e"}},
		},
		{
			name:  "invalid utf8 kept",
			input: "a\xffb,c\n",
			sep:   ',', quote: '"',
			want: [][]string{{"a\xffb", "c"}},
		},
		{
			name:  "invalid utf8 inside quotes kept",
			input: "\"\xf4,\xe9\",c\n",
			sep:   ',', quote: '"',
			want: [][]string{{"\xf4,\xe9", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAllRecords(t, tt.input, tt.sep, tt.quote))
		})
	}
}

func TestDelimitedReader_LineNumbers(t *testing.T) {
	dr := newDelimitedReader(strings.NewReader("h\n\n\"multi\nline\"\nlast\n"), ',', '"')

	_, err := dr.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, dr.Line())

	_, err = dr.Read()
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Line())

	_, err = dr.Read()
	require.NoError(t, err)
	assert.Equal(t, 5, dr.Line())
}

func TestDelimitedReader_UnterminatedQuote(t *testing.T) {
	dr := newDelimitedReader(strings.NewReader("a,b\n\"open,field\n"), ',', '"')

	_, err := dr.Read()
	require.NoError(t, err)

	_, err = dr.Read()
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
	assert.Contains(t, se.Reason, "unterminated")
}
