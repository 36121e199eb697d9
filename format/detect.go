// Package format provides file format detection for docnorm.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// TXT indicates a plain text file.
	TXT
)

// ErrSignatureMismatch is returned when a file's content does not match the
// format implied by its extension.
var ErrSignatureMismatch = errors.New("file signature does not match extension")

// ErrUnsupported is returned for extensions outside the supported set.
var ErrUnsupported = errors.New("unsupported file format")

// All lists the supported formats in a stable order.
func All() []Format {
	return []Format{PDF, DOCX, XLSX, TXT}
}

// String returns the upper-case tag used in JSON output.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case TXT:
		return "TXT"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case TXT:
		return ".txt"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".txt", ".text":
		return TXT
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives return Unknown; use DetectFromReader to tell DOCX and XLSX apart.
func DetectFromMagic(data []byte) Format {
	if isPDF(data) {
		return PDF
	}
	return Unknown
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

func isZIP(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0x50, 0x4B, 0x03, 0x04})
}

// DetectFromReader inspects the content to determine format. Content with
// neither a PDF nor an OOXML signature is reported as Unknown.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isPDF(magic) {
		return PDF, nil
	}
	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX or XLSX.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}
	return Unknown, nil
}

// Resolve determines the format of the file at path. The extension selects the
// format and the content signature must agree with it; plain text has no
// signature and is accepted as-is.
func Resolve(path string) (Format, error) {
	want := Detect(path)
	if want == Unknown {
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}

	if want == TXT {
		if got != Unknown {
			return Unknown, fmt.Errorf("%w: %s content in %s file", ErrSignatureMismatch, got, want)
		}
		return TXT, nil
	}
	if got != want {
		return Unknown, fmt.Errorf("%w: expected %s, found %s", ErrSignatureMismatch, want, got)
	}
	return want, nil
}
