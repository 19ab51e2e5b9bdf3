package tesseract

import (
	"errors"
	"strings"
	"testing"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n" +
	"2\t1\t1\t0\t0\t0\t36\t92\t582\t269\t-1\t\n" +
	"3\t1\t1\t1\t0\t0\t36\t92\t582\t56\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t36\t92\t582\t56\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t36\t92\t168\t56\t95.863\tThis\n" +
	"5\t1\t1\t1\t1\t2\t231\t92\t82\t56\t96.02\tis a\n" +
	"\n"

func TestParseData(t *testing.T) {
	rows, err := ParseData(sampleTSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw lines minus the header and the trailing empty line
	rawLines := len(strings.Split(sampleTSV, "\n"))
	if len(rows) != rawLines-3 {
		t.Fatalf("got %d rows from %d raw lines", len(rows), rawLines)
	}

	word := rows[4]
	if word.Level != 5 || word.WordNum != 1 || word.Left != 36 || word.Width != 168 {
		t.Errorf("unexpected word row: %+v", word)
	}
	if word.Conf != 95.863 || word.Text != "This" || !word.IsWord() {
		t.Errorf("unexpected word payload: %+v", word)
	}
	if rows[0].IsWord() || rows[0].Text != "" {
		t.Errorf("page row should carry no text: %+v", rows[0])
	}
	if rows[5].Text != "is a" {
		t.Errorf("spaces inside the text column must survive, got %q", rows[5].Text)
	}
}

func TestParseDataWithoutTrailingNewline(t *testing.T) {
	rows, err := ParseData(strings.TrimRight(sampleTSV, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Errorf("got %d rows, want 6", len(rows))
	}
}

func TestParseDataCRLF(t *testing.T) {
	rows, err := ParseData(strings.ReplaceAll(sampleTSV, "\n", "\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rows[4].Text != "This" {
		t.Errorf("carriage return leaked into text: %q", rows[4].Text)
	}
}

func TestParseDataMalformed(t *testing.T) {
	header := strings.SplitN(sampleTSV, "\n", 2)[0] + "\n"

	tests := []struct {
		name string
		text string
		line int
	}{
		{"missing header", "1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n", 1},
		{"too few fields", header + "5\t1\t1\n", 2},
		{"too many fields", header + "5\t1\t1\t1\t1\t1\t36\t92\t168\t56\t95\tThis\textra\n", 2},
		{"non-numeric column", header + "5\t1\t1\t1\t1\tone\t36\t92\t168\t56\t95\tThis\n", 2},
		{"non-numeric conf", header + "1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n5\t1\t1\t1\t1\t1\t36\t92\t168\t56\thigh\tThis\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseData(tt.text)
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line != tt.line {
				t.Errorf("line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestParseDataEmpty(t *testing.T) {
	rows, err := ParseData("")
	if err != nil || rows == nil || len(rows) != 0 {
		t.Errorf("got %v, %v; want empty slice", rows, err)
	}
}

func TestParseBoxes(t *testing.T) {
	boxes, err := ParseBoxes("T 36 368 92 424 0\nh 100 368 140 424 0\n1 10 20 30 40\n\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 3 {
		t.Fatalf("got %d boxes", len(boxes))
	}
	want := Box{Character: "T", X: 36, Y: 368, W: 92, H: 424}
	if boxes[0] != want {
		t.Errorf("got %+v, want %+v", boxes[0], want)
	}
	if boxes[2].Character != "1" || boxes[2].H != 40 {
		t.Errorf("five-column line parsed as %+v", boxes[2])
	}
	if boxes[1].String() != "h" {
		t.Errorf("String() = %q", boxes[1].String())
	}

	if _, err := ParseBoxes("T 36 368\n"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for a short line, got %v", err)
	}
	if _, err := ParseBoxes("T a b c d\n"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for non-numeric columns, got %v", err)
	}
}

func TestParseOSD(t *testing.T) {
	text := "Page number: 0\n" +
		"Orientation in degrees: 270\n" +
		"Rotate: 90\n" +
		"Orientation confidence: 9.36\n" +
		"Script: Latin\n" +
		"Script confidence: 1.11\n"

	osd, err := ParseOSD(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := OSD{
		PageNumber:            0,
		OrientationDegrees:    270,
		Rotate:                90,
		OrientationConfidence: 9.36,
		Script:                "Latin",
		ScriptConfidence:      1.11,
	}
	if osd != want {
		t.Errorf("got %+v, want %+v", osd, want)
	}

	if _, err := ParseOSD("Page number: 0\nRotate: 90\n"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for a partial block, got %v", err)
	}
	if _, err := ParseOSD(""); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for empty output, got %v", err)
	}
}

func TestParseParameters(t *testing.T) {
	text := "Tesseract parameters:\n" +
		"textord_debug_tabfind\t0\tDebug tab finding\n" +
		"classify_bln_numeric_mode\t0\tAssume the input is numbers [0-9].\n" +
		"chs_leading_punct\t('`\"\tLeading punctuation\n" +
		"applybox_exposure_pattern\t.exp\tExposure value follows this pattern\n" +
		"\n"

	params := ParseParameters(text)
	if len(params) != 4 {
		t.Fatalf("got %d parameters: %+v", len(params), params)
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	want := []string{"applybox_exposure_pattern", "chs_leading_punct", "classify_bln_numeric_mode", "textord_debug_tabfind"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("names = %v, want %v", names, want)
	}

	numeric := params[3]
	if numeric.Value != "0" || numeric.Description != "Debug tab finding" {
		t.Errorf("numeric parameter parsed as %+v", numeric)
	}
	text2 := params[1]
	if text2.Value != "-" {
		t.Errorf("non-numeric default should be reported as \"-\", got %q", text2.Value)
	}
}

func TestParseLanguages(t *testing.T) {
	text := "List of available languages in \"/usr/share/tessdata/\" (4):\neng\nosd\ndeu\nsnum\n"
	got := ParseLanguages(text)
	if strings.Join(got, ",") != "eng,osd,deu" {
		t.Errorf("got %v", got)
	}
	if langs := ParseLanguages(""); langs == nil || len(langs) != 0 {
		t.Errorf("expected an empty slice, got %#v", langs)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("tesseract 5.3.0\n leptonica-1.82.0\n")
	if err != nil || v != "5.3.0" {
		t.Errorf("got %q, %v", v, err)
	}
	if _, err := ParseVersion("tesseract\n"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (float64, bool)
		text  string
		want  float64
		found bool
	}{
		{"confidence", parseConfidence, "Page number: 0\nScript: Latin\nScript confidence: 2.33\n", 2.33, true},
		{"integer confidence", parseConfidence, "Script confidence: 7\n", 7, true},
		{"no confidence", parseConfidence, "Warning: Invalid resolution 0 dpi.\n", 0, false},
		{"deskew", parseDeskew, "Estimating resolution as 282\nDeskew angle: -0.3821\n", -0.3821, true},
		{"no deskew", parseDeskew, "", 0, false},
		{"trailing garbage", parseDeskew, "Deskew angle: 1.5 degrees\n", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tt.parse(tt.text)
			if got != tt.want || found != tt.found {
				t.Errorf("got %v, %v; want %v, %v", got, found, tt.want, tt.found)
			}
		})
	}
}
