package layout

import (
	"strings"

	"github.com/tsawler/docnorm/model"
)

// StructureText classifies plain text lines into elements. Each block yields
// its headings, then a paragraph holding every line of the block, then a
// table when the block is tab-delimited and tables are wanted.
func StructureText(lines []string, tables bool) []model.Element {
	byLine := make(map[int]TextHeading)
	for _, h := range DetectHeadings(lines) {
		byLine[h.Line] = h
	}

	var elems []model.Element
	for _, b := range SegmentParagraphs(lines) {
		for i := range b.Lines {
			if h, ok := byLine[b.StartLine+i]; ok {
				elems = append(elems, &model.Heading{
					Text:  h.Text,
					Level: textHeadingLevel(lines, h),
					Line:  h.Line,
					Kind:  h.Kind,
				})
			}
		}

		text := b.Text()
		elems = append(elems, &model.Paragraph{Text: text, WordCount: CountWords(text)})
		if tables {
			if rows, ok := DelimitedRows(b); ok {
				elems = append(elems, TextTable(rows))
			}
		}
	}
	return elems
}

// textHeadingLevel is 2 for headings underlined with dashes, 1 otherwise.
func textHeadingLevel(lines []string, h TextHeading) int {
	if h.Kind == "underlined" && strings.HasPrefix(strings.TrimSpace(lines[h.Line]), "-") {
		return 2
	}
	return 1
}
