package docnorm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tsawler/docnorm/format"
)

// Pipeline is the document extraction engine. It is immutable after New
// and may be shared between goroutines; each extraction owns its readers.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// OCRAvailable reports whether the pipeline can recover text with OCR.
func (p *Pipeline) OCRAvailable() bool {
	return p.cfg.OCR.Available()
}

// Open returns an Extractor for filename. Nothing is read until a terminal
// operation runs.
func (p *Pipeline) Open(filename string) *Extractor {
	return &Extractor{
		pipeline: p,
		filename: filename,
		options:  defaultOptions(),
	}
}

// SupportedFormats lists the format tags the pipeline extracts.
func SupportedFormats() []string {
	all := format.All()
	tags := make([]string, len(all))
	for i, f := range all {
		tags[i] = f.String()
	}
	return tags
}

// source is an opened document.
type source struct {
	path     string
	name     string
	size     int64
	format   format.Format
	reader   FormatReader
	warnings []Warning
}

// open checks the file and opens the reader for its format. Every failure
// is FatalIO.
func (p *Pipeline) open(path string) (*source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fatalIO(path, err)
	}
	if info.IsDir() {
		return nil, fatalIO(path, errors.New("is a directory"))
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fatalIO(path, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize))
	}

	f, err := format.Resolve(path)
	if err != nil {
		return nil, fatalIO(path, err)
	}
	openFormat, ok := openers[f]
	if !ok {
		return nil, fatalIO(path, fmt.Errorf("%w: %s", format.ErrUnsupported, f))
	}
	r, warnings, err := openFormat(path, p.cfg)
	if err != nil {
		return nil, fatalIO(path, fmt.Errorf("opening %s: %w", f, err))
	}

	p.logger.Debug("opened document", "path", path, "format", f.String(), "units", r.Units())
	return &source{
		path:     path,
		name:     filepath.Base(path),
		size:     info.Size(),
		format:   f,
		reader:   r,
		warnings: warnings,
	}, nil
}

func (s *source) close(logger *slog.Logger) {
	if err := s.reader.Close(); err != nil {
		logger.Warn("closing document", "path", s.path, "error", err)
	}
}
