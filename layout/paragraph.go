package layout

import "strings"

// Block is a run of consecutive non-blank lines.
type Block struct {
	StartLine int // 1-indexed
	Lines     []string
}

// Text joins the block's lines with newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// SplitLines splits text on newlines, dropping a trailing carriage return
// from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// SegmentParagraphs groups consecutive non-blank lines into blocks. A blank
// line ends the current block and a trailing block is always emitted.
func SegmentParagraphs(lines []string) []Block {
	var (
		blocks  []Block
		current *Block
	)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &Block{StartLine: i + 1}
		}
		current.Lines = append(current.Lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}
