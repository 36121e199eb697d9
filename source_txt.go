package docnorm

import (
	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
	"github.com/tsawler/docnorm/txt"
)

type txtSource struct {
	r *txt.Reader
}

func openTXTSource(path string, cfg Config) (FormatReader, []Warning, error) {
	r, err := txt.Open(path, cfg.TextEncoding)
	if err != nil {
		return nil, nil, err
	}
	return &txtSource{r: r}, nil, nil
}

func (s *txtSource) Units() int { return 1 }

func (s *txtSource) Metadata() model.Metadata {
	return model.Metadata{Engine: "text", Encoding: s.r.Encoding()}
}

func (s *txtSource) Close() error { return nil }

func (s *txtSource) Stats() *model.TextStats { return s.r.Stats() }

// Unit returns the whole text with its inferred structure.
func (s *txtSource) Unit(n int, run *runState) *model.Unit {
	return &model.Unit{
		Index:     n,
		Text:      s.r.Content(),
		WordCount: s.r.WordCount(),
		Elements:  layout.StructureText(s.r.Lines(), run.opts.includeTables),
	}
}
