// Package docnorm extracts PDF, DOCX, XLSX and plain text files into one
// format-independent document model.
//
// Basic usage:
//
//	doc, warnings, err := docnorm.Open("report.pdf").Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docnorm.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := docnorm.New(docnorm.Config{OCR: ocr.Detect("eng")}).
//	    Open("scan.pdf").
//	    PageRange(31, 60).
//	    IncludeImages(false).
//	    Extract(ctx)
//
// The per-format readers (reader, docx, xlsx, txt) are also usable on their
// own.
package docnorm

// Open returns an Extractor for filename using the default configuration,
// in which OCR is unavailable.
//
// Example:
//
//	doc, warnings, err := docnorm.Open("notes.txt").Extract(ctx)
func Open(filename string) *Extractor {
	return New(Config{}).Open(filename)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	info := docnorm.Must(docnorm.Open("big.pdf").Info(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract is a helper that wraps a call to Extract and panics if the
// error is non-nil. It discards warnings and returns just the document.
//
// Example:
//
//	doc := docnorm.MustExtract(docnorm.Open("notes.txt").Extract(ctx))
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
