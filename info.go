package docnorm

import (
	"context"
	"fmt"

	"github.com/tsawler/docnorm/chunk"
	"github.com/tsawler/docnorm/layout"
)

// InfoSamplePages is the number of leading pages sampled for the word
// estimate.
const InfoSamplePages = 5

// Info summarizes a PDF without extracting it, so a caller can decide
// whether to extract it in chunks.
type Info struct {
	FileName             string        `json:"file_name"`
	SizeBytes            int64         `json:"file_size_bytes"`
	PageCount            int           `json:"page_count"`
	EstimatedWords       int           `json:"estimated_words"`
	AvgWordsPerPage      int           `json:"avg_words_per_page"`
	NeedsChunking        bool          `json:"needs_chunking"`
	ChunkThreshold       int           `json:"chunk_threshold"`
	RecommendedChunkSize int           `json:"recommended_chunk_size"`
	RecommendedChunks    int           `json:"recommended_chunks"`
	ChunkRanges          []chunk.Range `json:"chunk_ranges"`
	Metadata             InfoMetadata  `json:"metadata"`
}

// InfoMetadata is the metadata subset reported by Info.
type InfoMetadata struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Info reads the page count and samples the first pages of a PDF. The
// estimate never uses OCR. Other formats fail with ErrUnsupported.
//
// Example:
//
//	info, err := docnorm.Open("big.pdf").Info(ctx)
//	if info.NeedsChunking {
//	    for _, r := range info.ChunkRanges { ... }
//	}
func (e *Extractor) Info(ctx context.Context) (*Info, error) {
	p := e.pipeline
	src, err := p.open(e.filename)
	if err != nil {
		return nil, err
	}
	defer src.close(p.logger)

	pdf, ok := src.reader.(*pdfSource)
	if !ok {
		return nil, &Error{Kind: KindUnsupported, Path: e.filename, Err: fmt.Errorf("info requires PDF, got %s", src.format)}
	}

	n := pdf.Units()
	sample := min(InfoSamplePages, n)
	words := 0
	for i := 1; i <= sample; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sampling %s: %w", e.filename, err)
		}
		text, err := pdf.r.PageText(i)
		if err != nil {
			p.logger.Warn("sampling page", "path", e.filename, "page", i, "error", err)
			continue
		}
		words += layout.CountWords(text)
	}

	var avg float64
	if sample > 0 {
		avg = float64(words) / float64(sample)
	}

	plan := chunk.NewPlan(n)
	recommended := 1
	if plan.NeedsChunking {
		recommended = plan.Chunks()
	}
	meta := pdf.Metadata()

	return &Info{
		FileName:             src.name,
		SizeBytes:            src.size,
		PageCount:            n,
		EstimatedWords:       int(avg * float64(n)),
		AvgWordsPerPage:      int(avg),
		NeedsChunking:        plan.NeedsChunking,
		ChunkThreshold:       chunk.Threshold,
		RecommendedChunkSize: chunk.Size,
		RecommendedChunks:    recommended,
		ChunkRanges:          append([]chunk.Range{}, plan.Ranges...),
		Metadata:             InfoMetadata{Title: meta.Title, Author: meta.Author},
	}, nil
}
