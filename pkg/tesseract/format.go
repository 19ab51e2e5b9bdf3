package tesseract

import (
	"fmt"
	"strings"
)

// FileFormat is an output format tesseract can produce.
type FileFormat int

const (
	FormatText FileFormat = iota // Plain text
	FormatHOCR                   // hOCR HTML
	FormatPDF                    // Searchable PDF
	FormatTSV                    // Tab-separated word/line/block table
	FormatALTO                   // ALTO XML
	FormatOSD                    // Orientation and script detection, stdout only
)

var formatTokens = [...]string{
	FormatText: "txt",
	FormatHOCR: "hocr",
	FormatPDF:  "pdf",
	FormatTSV:  "tsv",
	FormatALTO: "alto",
	FormatOSD:  "osd",
}

// The ALTO renderer writes .xml, not .alto; OSD never writes a file.
var formatExtensions = [...]string{
	FormatText: ".txt",
	FormatHOCR: ".hocr",
	FormatPDF:  ".pdf",
	FormatTSV:  ".tsv",
	FormatALTO: ".xml",
	FormatOSD:  "",
}

// Formats lists every FileFormat in declaration order.
func Formats() []FileFormat {
	return []FileFormat{FormatText, FormatHOCR, FormatPDF, FormatTSV, FormatALTO, FormatOSD}
}

// String returns the token tesseract expects on its command line ("txt", "hocr", ...).
func (f FileFormat) String() string {
	if !f.valid() {
		return fmt.Sprintf("FileFormat(%d)", int(f))
	}
	return formatTokens[f]
}

// Extension returns the file extension, dot included, that tesseract appends to the
// output base for this format. It is empty for FormatOSD.
func (f FileFormat) Extension() string {
	if !f.valid() {
		return ""
	}
	return formatExtensions[f]
}

// WritesFile reports whether tesseract writes this format to <base><extension>.
func (f FileFormat) WritesFile() bool {
	return f.Extension() != ""
}

func (f FileFormat) valid() bool {
	return f >= FormatText && f <= FormatOSD
}

// ParseFileFormat maps a command-line token back to its FileFormat. It also accepts
// "text" and "xml" as aliases of txt and alto.
func ParseFileFormat(s string) (FileFormat, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	switch token {
	case "text":
		return FormatText, nil
	case "xml":
		return FormatALTO, nil
	}
	for f, t := range formatTokens {
		if t == token {
			return FileFormat(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// ParseFileFormats parses a whitespace or comma separated list such as "txt tsv pdf".
func ParseFileFormats(s string) ([]FileFormat, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	formats := make([]FileFormat, 0, len(fields))
	for _, field := range fields {
		f, err := ParseFileFormat(field)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
