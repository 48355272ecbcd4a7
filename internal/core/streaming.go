package core

// streaming.go holds the io.Reader wrappers applied to a GDP file before it
// is tokenized:
//
//   - bomSkippingReader drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) that
//     spreadsheet exports often prepend, so the first header cell matches.
//   - countingReader tracks bytes consumed for load logging.
//
// Invalid UTF-8 is handled by the tokenizer, which writes '?' for bytes that
// do not decode.

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomSkippingReader strips a UTF-8 BOM from the start of the stream.
type bomSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{r: bufio.NewReader(r)}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// countingReader counts bytes read through it.
type countingReader struct {
	r         io.Reader
	BytesRead int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// wrapForLoad applies BOM stripping and byte counting, in that order.
func wrapForLoad(r io.Reader) *countingReader {
	return &countingReader{r: newBOMSkippingReader(r)}
}
