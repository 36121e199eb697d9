// Package docx provides DOCX (Office Open XML) document parsing.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.ReadCloser
	document   *documentXML
	resolver   *StyleResolver
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	paragraphs []Paragraph
	tables     []ParsedTable
	images     []model.ImageRef
}

// Paragraph is a body paragraph with its resolved style.
type Paragraph struct {
	Text      string
	Style     string
	Runs      int
	IsHeading bool
	Level     int // heading level, 0 for non-headings
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	// Styles are optional; without them every paragraph is Normal.
	r.parseStyles()

	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	r.parseCoreProperties()
	r.parseAppProperties()
	r.images = r.extractImages()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Paragraphs returns every body paragraph in document order, including
// empty ones.
func (r *Reader) Paragraphs() []Paragraph {
	return r.paragraphs
}

// Tables returns the body tables in document order.
func (r *Reader) Tables() []ParsedTable {
	return r.tables
}

// Images returns the images stored in the package.
func (r *Reader) Images() []model.ImageRef {
	return r.images
}

// Text returns the paragraph text, one paragraph per line.
func (r *Reader) Text() string {
	var sb strings.Builder
	for i, para := range r.paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(para.Text)
	}
	return sb.String()
}

// WordCount returns the number of words across all paragraphs.
func (r *Reader) WordCount() int {
	n := 0
	for _, para := range r.paragraphs {
		n += layout.CountWords(para.Text)
	}
	return n
}

// Elements returns the structural elements of the document: headings and
// non-blank paragraphs in order, followed by the tables.
func (r *Reader) Elements() []model.Element {
	elements := make([]model.Element, 0, len(r.paragraphs)+len(r.tables))
	for _, para := range r.paragraphs {
		if strings.TrimSpace(para.Text) == "" {
			continue
		}
		if para.IsHeading {
			elements = append(elements, &model.Heading{
				Text:  para.Text,
				Level: para.Level,
				Style: para.Style,
			})
			continue
		}
		elements = append(elements, &model.Paragraph{
			Text:      para.Text,
			WordCount: layout.CountWords(para.Text),
			Style:     para.Style,
			Runs:      para.Runs,
		})
	}
	for i := range r.tables {
		elements = append(elements, r.tables[i].ToModelTable())
	}
	return elements
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Engine: "ooxml"}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Keywords = r.coreProps.Keywords
		meta.LastModifiedBy = r.coreProps.LastModifiedBy
		meta.Revision = strings.TrimSpace(r.coreProps.Revision)
		meta.Created = strings.TrimSpace(r.coreProps.Created)
		meta.Modified = strings.TrimSpace(r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	if r.document.Body == nil {
		return nil
	}

	r.paragraphs = make([]Paragraph, 0, len(r.document.Body.Paragraphs))
	for i := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(&r.document.Body.Paragraphs[i]))
	}

	tp := NewTableParser()
	for _, tbl := range r.document.Body.Tables {
		r.tables = append(r.tables, tp.ParseTable(tbl))
	}
	return nil
}

// processParagraph resolves a paragraph's text and style.
func (r *Reader) processParagraph(p *paragraphXML) Paragraph {
	style := r.resolver.Resolve(p.Properties.Style.Val)
	return Paragraph{
		Text:      p.Text(),
		Style:     style.Name,
		Runs:      len(p.Runs),
		IsHeading: style.IsHeading,
		Level:     style.HeadingLevel,
	}
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	var styles *stylesXML
	if data, err := r.getFileContent("word/styles.xml"); err == nil {
		styles = &stylesXML{}
		if xml.Unmarshal(data, styles) != nil {
			styles = nil
		}
	}
	r.resolver = NewStyleResolver(styles)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	r.coreProps = &corePropertiesXML{}
	xml.Unmarshal(data, r.coreProps)
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	r.appProps = &appPropertiesXML{}
	xml.Unmarshal(data, r.appProps)
}
