package layout

import (
	"strings"

	"github.com/tsawler/docnorm/model"
)

// TableNote accompanies every PDF table estimate.
const TableNote = "Table detection is approximate - may need manual review"

// TextBlocks splits extracted page text into blocks at blank lines, which is
// how the text layer separates layout blocks.
func TextBlocks(text string) []Block {
	return SegmentParagraphs(SplitLines(text))
}

// EstimateTables counts table candidates: blocks with more than two lines.
func EstimateTables(blocks []Block) *model.TableEstimate {
	n := 0
	for _, b := range blocks {
		if len(b.Lines) > 2 {
			n++
		}
	}
	return &model.TableEstimate{Candidates: n, Note: TableNote}
}

// PageElements turns page blocks into paragraph elements.
func PageElements(blocks []Block) []model.Element {
	elems := make([]model.Element, 0, len(blocks))
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text())
		elems = append(elems, &model.Paragraph{Text: text, WordCount: CountWords(text)})
	}
	return elems
}
