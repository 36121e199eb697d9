package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// EngineName identifies the recognizer in document metadata.
const EngineName = "tesseract"

// RasterDPI is the resolution pages are rendered at before recognition.
const RasterDPI = 300

// Recognizer turns a page image into text.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	SetLanguage(lang string) error
	Close() error
}

// Factory creates a Recognizer.
type Factory func() (Recognizer, error)

// Capability records whether OCR can run in this process. It is resolved
// once at start-up and passed to the pipeline; the zero value is
// unavailable.
type Capability struct {
	available bool
	language  string
	reason    string
	factory   Factory
}

// Detect checks the compiled-in Tesseract binding by opening and closing a
// client.
func Detect(lang string) Capability {
	if !Compiled {
		return Unavailable(ErrOCRNotEnabled.Error())
	}
	if err := tryRecognizer(newTesseract, lang); err != nil {
		return Unavailable(err.Error())
	}
	return WithRecognizer(lang, newTesseract)
}

func tryRecognizer(f Factory, lang string) error {
	rec, err := f()
	if err != nil {
		return err
	}
	defer rec.Close()
	if lang != "" {
		if err := rec.SetLanguage(lang); err != nil {
			return fmt.Errorf("setting language %q: %w", lang, err)
		}
	}
	return nil
}

// Unavailable returns a capability that skips every page with reason.
func Unavailable(reason string) Capability {
	return Capability{reason: reason}
}

// WithRecognizer returns an available capability backed by f.
func WithRecognizer(lang string, f Factory) Capability {
	if lang == "" {
		lang = DefaultLanguage
	}
	return Capability{available: true, language: lang, factory: f}
}

// Available reports whether OCR can run.
func (c Capability) Available() bool { return c.available }

// Language returns the configured recognition language.
func (c Capability) Language() string { return c.language }

// Reason explains why OCR is unavailable.
func (c Capability) Reason() string {
	if c.available {
		return ""
	}
	if c.reason == "" {
		return "ocr not configured"
	}
	return c.reason
}

// Status classifies the result of one recovery attempt.
type Status string

const (
	StatusRecovered Status = "recovered"
	StatusEmpty     Status = "empty"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome is the result of recovering one page.
type Outcome struct {
	Text   string
	Status Status
	Reason string
}

// Recovered reports whether the attempt produced text.
func (o Outcome) Recovered() bool { return o.Status == StatusRecovered }

// Skipped returns an outcome for a page that was not attempted.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Session runs recognition for one extraction. The recognizer is opened on
// first use and released by Close. A Session is not safe for concurrent use.
type Session struct {
	capability Capability
	rec        Recognizer
	openErr    error
}

// NewSession starts a session. No recognizer is opened until a page needs one.
func (c Capability) NewSession() *Session {
	return &Session{capability: c}
}

// Recover renders a page with render and recognizes its text. It never
// returns an error; failures are reported in the Outcome.
func (s *Session) Recover(render func() ([]byte, error)) Outcome {
	if !s.capability.available {
		return Skipped(s.capability.Reason())
	}
	if err := s.open(); err != nil {
		return Outcome{Status: StatusFailed, Reason: err.Error()}
	}

	img, err := render()
	if err != nil {
		return Outcome{Status: StatusFailed, Reason: fmt.Sprintf("rendering page: %v", err)}
	}
	text, err := s.rec.RecognizeImage(img)
	if err != nil {
		return Outcome{Status: StatusFailed, Reason: fmt.Sprintf("recognizing page: %v", err)}
	}
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) == 0 {
		return Outcome{Status: StatusEmpty, Reason: "no text recognized"}
	}
	return Outcome{Text: text, Status: StatusRecovered}
}

func (s *Session) open() error {
	if s.rec != nil || s.openErr != nil {
		return s.openErr
	}
	rec, err := s.capability.factory()
	if err != nil {
		s.openErr = fmt.Errorf("opening recognizer: %w", err)
		return s.openErr
	}
	if err := rec.SetLanguage(s.capability.language); err != nil {
		rec.Close()
		s.openErr = fmt.Errorf("setting language %q: %w", s.capability.language, err)
		return s.openErr
	}
	s.rec = rec
	return nil
}

// Close releases the recognizer, if one was opened.
func (s *Session) Close() error {
	if s.rec == nil {
		return nil
	}
	err := s.rec.Close()
	s.rec = nil
	return err
}
