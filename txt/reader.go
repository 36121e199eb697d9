// Package txt reads plain text files.
//
// Content is decoded as UTF-8 when valid. Otherwise it is decoded with a
// fallback single-byte encoding, Latin-1 by default, which accepts every
// byte sequence; decoding never fails.
package txt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
)

const (
	// EncodingUTF8 is reported for valid UTF-8 input.
	EncodingUTF8 = "utf-8"
	// EncodingLatin1 is the default fallback encoding.
	EncodingLatin1 = "latin-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newlines maps CRLF and lone CR line endings to LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Reader provides access to a decoded text file.
type Reader struct {
	content  string
	lines    []string
	encoding string
}

// Open reads and decodes the file at path. fallback names the encoding used
// when the file is not valid UTF-8; empty means Latin-1.
func Open(path, fallback string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	return FromBytes(data, fallback), nil
}

// FromBytes decodes data as Open does. Line endings are normalized to LF.
func FromBytes(data []byte, fallback string) *Reader {
	content, enc := Decode(data, fallback)
	content = newlines.Replace(content)
	return &Reader{
		content:  content,
		lines:    layout.SplitLines(content),
		encoding: enc,
	}
}

// Decode converts data to a string and reports the encoding used.
func Decode(data []byte, fallback string) (string, string) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), EncodingUTF8
	}

	enc, name := lookupFallback(fallback)
	if out, err := enc.NewDecoder().Bytes(data); err == nil {
		return string(out), name
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out), EncodingLatin1
}

// lookupFallback resolves an encoding label through the WHATWG label table.
// Latin-1 labels map to ISO-8859-1 itself rather than windows-1252.
func lookupFallback(label string) (encoding.Encoding, string) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "latin-1", "latin1", "iso-8859-1", "iso8859-1", "l1":
		return charmap.ISO8859_1, EncodingLatin1
	}
	if enc, name := charset.Lookup(label); enc != nil {
		return enc, name
	}
	return charmap.ISO8859_1, EncodingLatin1
}

// Content returns the decoded text.
func (r *Reader) Content() string {
	return r.content
}

// Lines returns the text split into lines.
func (r *Reader) Lines() []string {
	return r.lines
}

// Encoding returns the name of the encoding the text was decoded with.
func (r *Reader) Encoding() string {
	return r.encoding
}

// WordCount counts whitespace-separated words in the whole text.
func (r *Reader) WordCount() int {
	return layout.CountWords(r.content)
}

// Stats computes line, character and paragraph statistics.
func (r *Reader) Stats() *model.TextStats {
	blocks := layout.SegmentParagraphs(r.lines)
	stats := &model.TextStats{
		Lines:         len(r.lines),
		Chars:         utf8.RuneCountInString(r.content),
		CharsNoSpaces: utf8.RuneCountInString(strings.NewReplacer(" ", "", "\n", "", "\t", "").Replace(r.content)),
		HasHeadings:   len(layout.DetectHeadings(r.lines)) > 0,
		HasParagraphs: len(blocks) > 1,
	}
	if len(blocks) > 0 {
		stats.AvgParagraphLength = float64(r.WordCount()) / float64(len(blocks))
	}
	return stats
}
