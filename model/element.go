package model

import "encoding/json"

// ElementType represents the type of a structural element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeHeading
	ElementTypeTable
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "paragraph"
	case ElementTypeHeading:
		return "heading"
	case ElementTypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Element is the interface for all structural elements of a unit
type Element interface {
	Type() ElementType
	GetText() string
}

// Paragraph represents a paragraph of text
type Paragraph struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	Style     string `json:"style,omitempty"`
	Runs      int    `json:"runs,omitempty"`
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) GetText() string   { return p.Text }

// MarshalJSON tags the paragraph with its element kind.
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Element string `json:"element"`
		*alias
	}{"paragraph", (*alias)(p)})
}

// Heading represents a heading. Line and Kind are only set for headings
// detected in plain text, where Kind names the rule that matched.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
	Style string `json:"style,omitempty"`
	Line  int    `json:"line_number,omitempty"`
	Kind  string `json:"type,omitempty"`
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }
func (h *Heading) GetText() string   { return h.Text }

// MarshalJSON tags the heading with its element kind.
func (h *Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Element string `json:"element"`
		*alias
	}{"heading", (*alias)(h)})
}

// ImageRef describes an embedded image. The image bytes are never kept.
type ImageRef struct {
	Index     int    `json:"index"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int    `json:"size_bytes"`
	XRef      int    `json:"xref,omitempty"`
	Name      string `json:"name,omitempty"`
}

// TableEstimate is the advisory table count for a PDF page.
type TableEstimate struct {
	Candidates int    `json:"candidates"`
	Note       string `json:"note"`
}
