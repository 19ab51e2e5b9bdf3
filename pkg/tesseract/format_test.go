package tesseract

import (
	"errors"
	"reflect"
	"testing"
)

func TestFileFormat(t *testing.T) {
	tests := []struct {
		format    FileFormat
		token     string
		extension string
	}{
		{FormatText, "txt", ".txt"},
		{FormatHOCR, "hocr", ".hocr"},
		{FormatPDF, "pdf", ".pdf"},
		{FormatTSV, "tsv", ".tsv"},
		{FormatALTO, "alto", ".xml"},
		{FormatOSD, "osd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := tt.format.String(); got != tt.token {
				t.Errorf("String() = %q, want %q", got, tt.token)
			}
			if got := tt.format.Extension(); got != tt.extension {
				t.Errorf("Extension() = %q, want %q", got, tt.extension)
			}
			if got := tt.format.WritesFile(); got != (tt.extension != "") {
				t.Errorf("WritesFile() = %v", got)
			}
			parsed, err := ParseFileFormat(tt.token)
			if err != nil || parsed != tt.format {
				t.Errorf("ParseFileFormat(%q) = %v, %v", tt.token, parsed, err)
			}
		})
	}

	if len(Formats()) != len(tests) {
		t.Errorf("Formats() has %d entries, want %d", len(Formats()), len(tests))
	}
}

func TestParseFileFormats(t *testing.T) {
	got, err := ParseFileFormats("txt, TSV pdf xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []FileFormat{FormatText, FormatTSV, FormatPDF, FormatALTO}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseFileFormats("txt docx"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestInvalidFileFormat(t *testing.T) {
	f := FileFormat(42)
	if f.String() != "FileFormat(42)" {
		t.Errorf("String() = %q", f.String())
	}
	if f.WritesFile() {
		t.Error("an invalid format writes no file")
	}
}
