//go:build !ocr

// Package ocr recovers text from page rasters when a PDF page has no text
// layer.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// Detect reports OCR as unavailable and the Client returns ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
package ocr

// Compiled reports whether the Tesseract binding is built in.
const Compiled = false

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// Version returns an empty string; no OCR engine is linked.
func Version() string {
	return ""
}

func newTesseract() (Recognizer, error) {
	return nil, ErrOCRNotEnabled
}
