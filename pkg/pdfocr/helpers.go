package pdfocr

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// normalizeCoords rescales hOCR Bounding Box (bbox) coords to the PDF coords.
func normalizeCoords(x, y, hocrW, hocrH, pdfW, pdfH float64) (float64, float64) {
	if hocrW <= 0 || hocrH <= 0 {
		return x, y
	}
	return x / hocrW * pdfW, y / hocrH * pdfH
}

// unescapePDFString resolves the backslash escapes of a PDF literal string body.
func unescapePDFString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\n':
			// Line continuation
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(c - '0')
			for n := 1; n < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; n++ {
				i++
				v = v*8 + int(s[i]-'0')
			}
			b.WriteByte(byte(v))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decodeTextString decodes a PDF text string that starts with a UTF-16BE byte order
// mark. Other strings are returned unchanged.
func decodeTextString(s string) string {
	if !strings.HasPrefix(s, "\xfe\xff") {
		return s
	}
	decoded, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
