package docnorm

import (
	"github.com/tsawler/docnorm/docx"
	"github.com/tsawler/docnorm/model"
)

type docxSource struct {
	r *docx.Reader
}

func openDOCXSource(path string, _ Config) (FormatReader, []Warning, error) {
	r, err := docx.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &docxSource{r: r}, nil, nil
}

func (s *docxSource) Units() int { return 1 }

func (s *docxSource) Metadata() model.Metadata { return s.r.Metadata() }

func (s *docxSource) Close() error { return s.r.Close() }

// Unit returns the whole document. Its word count covers paragraphs only.
func (s *docxSource) Unit(n int, run *runState) *model.Unit {
	u := &model.Unit{
		Index:     n,
		Text:      s.r.Text(),
		WordCount: s.r.WordCount(),
	}
	for _, e := range s.r.Elements() {
		if e.Type() == model.ElementTypeTable && !run.opts.includeTables {
			continue
		}
		u.Elements = append(u.Elements, e)
	}
	if run.opts.includeImages {
		u.Images = s.r.Images()
	}
	return u
}
