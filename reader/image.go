package reader

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageImage represents an image XObject placed on a PDF page. Image bytes
// are counted, never kept.
type PageImage struct {
	Name   string // XObject name (e.g., "Im1")
	ObjNr  int
	Format string // File type as pdfcpu reports it: png, jpg, tif, jpx
	Width  int
	Height int
	Size   int
}

// pdfStructure reads page objects with pdfcpu. The context is parsed once,
// on first use; a parse failure wraps ErrStructure and is returned for every
// later call.
type pdfStructure struct {
	filename string
	ctx      *model.Context
	err      error
	loaded   bool
}

func newPDFStructure(filename string) *pdfStructure {
	return &pdfStructure{filename: filename}
}

func (s *pdfStructure) context() (*model.Context, error) {
	if s.loaded {
		return s.ctx, s.err
	}
	s.loaded = true

	f, err := os.Open(s.filename)
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrStructure, err)
		return nil, s.err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	s.ctx, err = api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		s.err = fmt.Errorf("%w: pdfcpu read: %v", ErrStructure, err)
	}
	return s.ctx, s.err
}

// PageImages extracts the image XObjects of a page, ordered by object number.
func (s *pdfStructure) PageImages(pageNr int) ([]PageImage, error) {
	ctx, err := s.context()
	if err != nil {
		return nil, err
	}

	imgs, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("extracting images from page %d: %w", pageNr, err)
	}

	out := make([]PageImage, 0, len(imgs))
	for objNr, img := range imgs {
		pi := PageImage{
			Name:   img.Name,
			ObjNr:  objNr,
			Format: img.FileType,
			Width:  img.Width,
			Height: img.Height,
		}
		if img.Reader != nil {
			n, _ := io.Copy(io.Discard, img)
			pi.Size = int(n)
		}
		out = append(out, pi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjNr < out[j].ObjNr })
	return out, nil
}

// PageRotation returns the inherited /Rotate of a page.
func (s *pdfStructure) PageRotation(pageNr int) (int, error) {
	ctx, err := s.context()
	if err != nil {
		return 0, err
	}
	_, _, inh, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, fmt.Errorf("reading page %d: %w", pageNr, err)
	}
	if inh == nil {
		return 0, nil
	}
	return inh.Rotate, nil
}
