package docnorm

import (
	"log/slog"

	"github.com/tsawler/docnorm/ocr"
	"github.com/tsawler/docnorm/txt"
)

// DefaultMaxFileSize is the largest file extracted when Config.MaxFileSize
// is unset.
const DefaultMaxFileSize = 100 * 1024 * 1024

// Config configures a Pipeline.
type Config struct {
	// OCR is the recognition capability, resolved once with ocr.Detect.
	// The zero value disables OCR.
	OCR ocr.Capability

	// MaxFileSize is the maximum file size to process (default: 100 MB).
	MaxFileSize int64

	// TextEncoding names the encoding used for text files that are not
	// valid UTF-8 (default: latin-1).
	TextEncoding string

	// Logger for debug/warning messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.TextEncoding == "" {
		c.TextEncoding = txt.EncodingLatin1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
