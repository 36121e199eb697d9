package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{XLSX, "XLSX"},
		{TXT, "TXT"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	for _, f := range All() {
		if got := Detect("file" + f.Extension()); got != f {
			t.Errorf("Detect(%q) = %v, want %v", "file"+f.Extension(), got, f)
		}
	}
	if Unknown.Extension() != "" {
		t.Errorf("Unknown.Extension() = %q, want empty", Unknown.Extension())
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"document.docx", DOCX},
		{"document.Docx", DOCX},
		{"document.xlsx", XLSX},
		{"notes.txt", TXT},
		{"notes.TEXT", TXT},
		{"slides.pptx", Unknown},
		{"page.html", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pdf", PDF},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.4"), PDF},
		{"PDF minimal", []byte("%PDF"), PDF},
		{"ZIP magic bytes", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"empty data", []byte{}, Unknown},
		{"short data", []byte{0x50, 0x4B}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func createZip(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		fw.Write([]byte("<x/>"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.4\n%%EOF"), PDF},
		{"docx", createZip(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"xlsx", createZip(t, "[Content_Types].xml", "xl/workbook.xml"), XLSX},
		{"other zip", createZip(t, "[Content_Types].xml", "ppt/presentation.xml"), Unknown},
		{"plain text", []byte("Hello, World! This is plain text."), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr error
	}{
		{"pdf", write("a.pdf", []byte("%PDF-1.7\n")), PDF, nil},
		{"docx", write("a.docx", createZip(t, "word/document.xml")), DOCX, nil},
		{"txt", write("a.txt", []byte("hello")), TXT, nil},
		{"pdf named docx", write("b.docx", []byte("%PDF-1.7\n")), Unknown, ErrSignatureMismatch},
		{"xlsx named docx", write("c.docx", createZip(t, "xl/workbook.xml")), Unknown, ErrSignatureMismatch},
		{"garbage pdf", write("d.pdf", []byte("not a pdf")), Unknown, ErrSignatureMismatch},
		{"unsupported", write("e.pptx", []byte("x")), Unknown, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Resolve(filepath.Join(dir, "missing.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Resolve(missing) error = %v, want os.ErrNotExist", err)
	}
}
