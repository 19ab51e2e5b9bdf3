package tesseract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	dataColumns = 12
	osdFields   = 6
)

var dataColumnNames = [dataColumns]string{
	"level", "page_num", "block_num", "par_num", "line_num", "word_num",
	"left", "top", "width", "height", "conf", "text",
}

var (
	// Key and value are separated by variable spacing, so the whole text is swept at once
	osdPattern = regexp.MustCompile(`\w+\s?:\s*(-?\d+(?:\.\d+)?|\w+)`)

	// name, numeric value, description; falling back to name, description
	paramWithValuePattern = regexp.MustCompile(`^(\w+)\s+(-?\d+\.?\d*)\s+(.*?)\s*$`)
	paramPattern          = regexp.MustCompile(`^(\w+)\s+(.+?)\s*$`)

	confidencePattern = regexp.MustCompile(`(?m)Script.confidence:\s*(\d{1,10}(?:\.\d{1,10})?)\s*$`)
	deskewPattern     = regexp.MustCompile(`(?m)Deskew.angle:\s*(-?\d{1,10}(?:\.\d{1,10})?)\s*$`)
)

// ParseData parses tesseract TSV output. The header line and trailing empty lines are
// dropped; every other line must split on tabs into the twelve TSV columns.
func ParseData(text string) ([]Data, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return []Data{}, nil
	}
	if !strings.HasPrefix(lines[0], dataColumnNames[0]) {
		return nil, &ParseError{Parser: "tsv", Line: 1, Text: lines[0], Reason: "missing TSV header"}
	}

	rows := make([]Data, 0, len(lines)-1)
	for i, line := range lines[1:] {
		lineNum := i + 2
		fields := strings.Split(line, "\t")
		// Rows above word level end with an empty text column that may have been trimmed
		if len(fields) == dataColumns-1 {
			fields = append(fields, "")
		}
		if len(fields) != dataColumns {
			return nil, &ParseError{
				Parser: "tsv",
				Line:   lineNum,
				Text:   line,
				Reason: fmt.Sprintf("expected %d tab-separated fields, got %d", dataColumns, len(fields)),
			}
		}

		var ints [10]int
		for j := range ints {
			v, err := strconv.Atoi(strings.TrimSpace(fields[j]))
			if err != nil {
				return nil, &ParseError{Parser: "tsv", Line: lineNum, Text: line, Reason: "bad " + dataColumnNames[j], Err: err}
			}
			ints[j] = v
		}
		conf, err := strconv.ParseFloat(strings.TrimSpace(fields[10]), 64)
		if err != nil {
			return nil, &ParseError{Parser: "tsv", Line: lineNum, Text: line, Reason: "bad conf", Err: err}
		}

		rows = append(rows, Data{
			Level:    ints[0],
			PageNum:  ints[1],
			BlockNum: ints[2],
			ParNum:   ints[3],
			LineNum:  ints[4],
			WordNum:  ints[5],
			Left:     ints[6],
			Top:      ints[7],
			Width:    ints[8],
			Height:   ints[9],
			Conf:     conf,
			Text:     fields[11],
		})
	}
	return rows, nil
}

// ParseBoxes parses makebox output: one "char left bottom right top [page]" line per glyph.
// Trailing empty lines are dropped.
func ParseBoxes(text string) ([]Box, error) {
	lines := splitLines(text)
	boxes := make([]Box, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 5 && len(fields) != 6 {
			return nil, &ParseError{
				Parser: "box",
				Line:   i + 1,
				Text:   line,
				Reason: fmt.Sprintf("expected 5 or 6 fields, got %d", len(fields)),
			}
		}

		nums := make([]int, len(fields)-1)
		for j, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, &ParseError{Parser: "box", Line: i + 1, Text: line, Err: err}
			}
			nums[j] = v
		}

		box := Box{Character: fields[0], X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
		if len(nums) == 5 {
			box.Page = nums[4]
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}

// ParseOSD parses the orientation and script detection block printed with --psm 0.
// Tesseract prints exactly six "key: value" fields in a fixed order; any other count
// is a *ParseError.
func ParseOSD(text string) (OSD, error) {
	matches := osdPattern.FindAllStringSubmatch(text, -1)
	if len(matches) != osdFields {
		return OSD{}, &ParseError{
			Parser: "osd",
			Reason: fmt.Sprintf("expected %d key:value fields, got %d", osdFields, len(matches)),
		}
	}

	values := make([]string, osdFields)
	for i, m := range matches {
		values[i] = m[1]
	}

	var osd OSD
	var err error
	if osd.PageNumber, err = strconv.Atoi(values[0]); err != nil {
		return OSD{}, &ParseError{Parser: "osd", Reason: "bad page number", Err: err}
	}
	floats := []*float64{&osd.OrientationDegrees, &osd.Rotate, &osd.OrientationConfidence}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(values[i+1], 64); err != nil {
			return OSD{}, &ParseError{Parser: "osd", Reason: fmt.Sprintf("bad value in field %d", i+2), Err: err}
		}
	}
	osd.Script = values[4]
	if osd.ScriptConfidence, err = strconv.ParseFloat(values[5], 64); err != nil {
		return OSD{}, &ParseError{Parser: "osd", Reason: "bad script confidence", Err: err}
	}
	return osd, nil
}

// ParseParameters parses --print-parameters output, skipping its "Tesseract parameters:"
// heading. Lines matching neither the name/value/description nor the name/description
// shape are skipped. The result is sorted by name.
func ParseParameters(text string) []Parameter {
	lines := splitLines(text)
	if len(lines) > 0 {
		lines = lines[1:]
	}

	params := make([]Parameter, 0, len(lines))
	for _, line := range lines {
		if m := paramWithValuePattern.FindStringSubmatch(line); m != nil {
			params = append(params, Parameter{Name: m[1], Value: m[2], Description: m[3]})
			continue
		}
		if m := paramPattern.FindStringSubmatch(line); m != nil {
			params = append(params, Parameter{Name: m[1], Value: "-", Description: m[2]})
		}
	}

	sort.SliceStable(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}

// ParseLanguages returns the known language codes listed by --list-langs, in order.
func ParseLanguages(text string) []string {
	langs := []string{}
	for _, field := range strings.Fields(text) {
		if knownLanguages[field] {
			langs = append(langs, field)
		}
	}
	return langs
}

// ParseVersion returns the version from the first line of --version output
// ("tesseract 5.3.0" -> "5.3.0").
func ParseVersion(text string) (string, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return "", &ParseError{Parser: "version", Reason: "empty output"}
	}
	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return "", &ParseError{Parser: "version", Line: 1, Text: lines[0], Reason: "no version number"}
	}
	return fields[1], nil
}

// parseConfidence extracts "Script confidence: N" from OSD output.
func parseConfidence(text string) (float64, bool) {
	return parseScalar(confidencePattern, text)
}

// parseDeskew extracts "Deskew angle: N" from tesseract's diagnostic output.
func parseDeskew(text string) (float64, bool) {
	return parseScalar(deskewPattern, text)
}

func parseScalar(pattern *regexp.Regexp, text string) (float64, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// splitLines splits on newlines, strips carriage returns and drops trailing empty lines.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
