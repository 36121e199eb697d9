package reader

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/tsawler/docnorm/model"
)

// RasterDPI is the resolution used by RenderPNG.
const RasterDPI = 300

// EngineName identifies the text engine in document metadata.
const EngineName = "mupdf"

var (
	// ErrPageRange is returned for a page number outside the document.
	ErrPageRange = errors.New("page number out of range")
	// ErrStructure is returned by every structure call once the page
	// objects could not be parsed.
	ErrStructure = errors.New("page structure unreadable")
)

// Engine is the text layer of a PDF. Page indices are 0-based, as in
// go-fitz.
type Engine interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	Bound(pageNumber int) (image.Rectangle, error)
	ImagePNG(pageNumber int, dpi float64) ([]byte, error)
	Metadata() map[string]string
	Close() error
}

// Structure reads page objects the text engine does not expose. Page
// numbers are 1-based, as in pdfcpu.
type Structure interface {
	PageImages(pageNr int) ([]PageImage, error)
	PageRotation(pageNr int) (int, error)
}

// Reader represents an open PDF document.
type Reader struct {
	doc       Engine
	structure Structure
	pageCount int
}

// New wraps an engine and an optional structure source.
func New(doc Engine, structure Structure) *Reader {
	return &Reader{doc: doc, structure: structure, pageCount: doc.NumPage()}
}

// Open opens a PDF file with MuPDF. Page objects are read with pdfcpu on
// first use.
func Open(filename string) (*Reader, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return New(doc, newPDFStructure(filename)), nil
}

// Close releases the document.
func (r *Reader) Close() error {
	if r.doc == nil {
		return nil
	}
	err := r.doc.Close()
	r.doc = nil
	return err
}

// PageCount returns the number of pages.
func (r *Reader) PageCount() int {
	return r.pageCount
}

func (r *Reader) index(pageNr int) (int, error) {
	if pageNr < 1 || pageNr > r.pageCount {
		return 0, fmt.Errorf("page %d of %d: %w", pageNr, r.pageCount, ErrPageRange)
	}
	return pageNr - 1, nil
}

// PageText returns the text layer of a page. MuPDF separates text blocks
// with blank lines.
func (r *Reader) PageText(pageNr int) (string, error) {
	i, err := r.index(pageNr)
	if err != nil {
		return "", err
	}
	return r.doc.Text(i)
}

// PageSize returns the page width and height in points.
func (r *Reader) PageSize(pageNr int) (float64, float64, error) {
	i, err := r.index(pageNr)
	if err != nil {
		return 0, 0, err
	}
	b, err := r.doc.Bound(i)
	if err != nil {
		return 0, 0, err
	}
	return float64(b.Dx()), float64(b.Dy()), nil
}

// RenderPNG rasterizes a page at RasterDPI.
func (r *Reader) RenderPNG(pageNr int) ([]byte, error) {
	i, err := r.index(pageNr)
	if err != nil {
		return nil, err
	}
	return r.doc.ImagePNG(i, RasterDPI)
}

// PageImages returns the image XObjects placed on a page.
func (r *Reader) PageImages(pageNr int) ([]PageImage, error) {
	if _, err := r.index(pageNr); err != nil {
		return nil, err
	}
	if r.structure == nil {
		return nil, nil
	}
	return r.structure.PageImages(pageNr)
}

// PageRotation returns the page's /Rotate value in degrees.
func (r *Reader) PageRotation(pageNr int) (int, error) {
	if _, err := r.index(pageNr); err != nil {
		return 0, err
	}
	if r.structure == nil {
		return 0, nil
	}
	return r.structure.PageRotation(pageNr)
}

// Metadata returns the document info dictionary.
func (r *Reader) Metadata() model.Metadata {
	info := r.doc.Metadata()
	return model.Metadata{
		Title:      info["title"],
		Author:     info["author"],
		Subject:    info["subject"],
		Keywords:   info["keywords"],
		Creator:    info["creator"],
		Producer:   info["producer"],
		Created:    info["creationDate"],
		Modified:   info["modDate"],
		PDFVersion: Version(info["format"]),
		Engine:     EngineName,
	}
}

// Version extracts the version number from MuPDF's format string
// ("PDF 1.7" yields "1.7").
func Version(format string) string {
	v, ok := strings.CutPrefix(strings.TrimSpace(format), "PDF")
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
