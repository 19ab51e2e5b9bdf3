package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ErrNoPages is returned by ParseHOCR for a document without any 'ocr_page' element.
var ErrNoPages = errors.New("no ocr_page elements found in hOCR data")

// ParseHOCR parses an hOCR document. The input is decoded from the charset its BOM or
// <meta> declares, UTF-8 being assumed otherwise.
func ParseHOCR(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	enc, name, _ := charset.DetermineEncoding(data, "text/html")
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return result, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	walk(doc, func(n *html.Node) bool {
		switch {
		case n.DataAtom == atom.Html:
			result.Language = attr(n, "lang")
		case n.DataAtom == atom.Title:
			result.Title = strings.TrimSpace(textContent(n))
			return false
		case n.DataAtom == atom.Meta:
			readMeta(&result, n)
		case hasClass(n, "ocr_page"):
			result.Pages = append(result.Pages, parsePage(n))
			return false
		}
		return true
	})

	if len(result.Pages) == 0 {
		return result, ErrNoPages
	}
	return result, nil
}

// ParseTitle splits an hOCR title attribute into its properties.
// Example input: `image "page 1.png"; bbox 100 200 300 400; x_wconf 95`
// Quoted values are kept as a single, unquoted value.
func ParseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		key, rest, _ := strings.Cut(strings.TrimSpace(part), " ")
		if key == "" {
			continue
		}
		rest = strings.TrimSpace(rest)
		if unquoted, err := strconv.Unquote(rest); err == nil {
			props[key] = []string{unquoted}
			continue
		}
		props[key] = strings.Fields(rest)
	}
	return props
}

// ParseBoundingBoxFromTitle returns the bbox property of title, or nil when there is
// none or it is malformed.
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	values := floats(ParseTitle(title)["bbox"])
	if len(values) != 4 {
		return nil
	}
	box := NewBoundingBox(values[0], values[1], values[2], values[3])
	return &box
}

func readMeta(result *HOCR, n *html.Node) {
	name, content := attr(n, "name"), attr(n, "content")
	if name == "" {
		return
	}
	switch name {
	case "ocr-system":
		result.System = content
	case "ocr-capabilities":
		result.Capabilities = strings.Fields(content)
	default:
		result.Metadata[name] = content
	}
}

func parsePage(n *html.Node) Page {
	props := ParseTitle(attr(n, "title"))
	page := Page{
		ID:         attr(n, "id"),
		BBox:       bboxOf(props),
		Properties: make(map[string]string),
	}
	if image := props["image"]; len(image) > 0 {
		page.ImageName = strings.Join(image, " ")
	}
	if ppageno := props["ppageno"]; len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}
	for k, v := range props {
		if k != "bbox" && k != "image" && k != "ppageno" {
			page.Properties[k] = strings.Join(v, " ")
		}
	}

	walk(n, func(c *html.Node) bool {
		switch {
		case hasClass(c, "ocr_carea"):
			page.Areas = append(page.Areas, parseArea(c))
			return false
		case hasClass(c, "ocr_par"):
			// Paragraph without an area: give it one of its own
			par := parseParagraph(c)
			page.Areas = append(page.Areas, Area{BBox: par.BBox, Paragraphs: []Paragraph{par}})
			return false
		case lineKind(c) != "":
			page.Lines = append(page.Lines, parseLine(c))
			return false
		}
		return true
	})
	return page
}

func parseArea(n *html.Node) Area {
	area := Area{
		ID:   attr(n, "id"),
		BBox: bboxOf(ParseTitle(attr(n, "title"))),
	}
	walk(n, func(c *html.Node) bool {
		switch {
		case hasClass(c, "ocr_par"):
			area.Paragraphs = append(area.Paragraphs, parseParagraph(c))
			return false
		case lineKind(c) != "":
			area.Lines = append(area.Lines, parseLine(c))
			return false
		}
		return true
	})
	return area
}

func parseParagraph(n *html.Node) Paragraph {
	par := Paragraph{
		ID:   attr(n, "id"),
		Lang: attr(n, "lang"),
		Dir:  attr(n, "dir"),
		BBox: bboxOf(ParseTitle(attr(n, "title"))),
	}

	var stray []Word
	walk(n, func(c *html.Node) bool {
		switch {
		case lineKind(c) != "":
			par.Lines = append(par.Lines, parseLine(c))
			return false
		case hasClass(c, "ocrx_word"):
			stray = append(stray, parseWord(c))
			return false
		}
		return true
	})

	// Words outside any line end up on one line spanning them
	if len(stray) > 0 {
		line := Line{Kind: KindLine, Words: stray}
		for _, w := range stray {
			line.BBox = line.BBox.Union(w.BBox)
		}
		par.Lines = append(par.Lines, line)
	}
	return par
}

func parseLine(n *html.Node) Line {
	props := ParseTitle(attr(n, "title"))
	line := Line{
		ID:   attr(n, "id"),
		Kind: lineKind(n),
		BBox: bboxOf(props),
	}
	if baseline := floats(props["baseline"]); len(baseline) == 2 {
		line.Baseline = Baseline{Slope: baseline[0], Offset: baseline[1]}
	}
	if size := floats(props["x_size"]); len(size) == 1 {
		line.XSize = size[0]
	}

	walk(n, func(c *html.Node) bool {
		if hasClass(c, "ocrx_word") {
			line.Words = append(line.Words, parseWord(c))
			return false
		}
		return true
	})
	return line
}

func parseWord(n *html.Node) Word {
	props := ParseTitle(attr(n, "title"))
	word := Word{
		ID:   attr(n, "id"),
		Text: strings.TrimSpace(textContent(n)),
		BBox: bboxOf(props),
		Lang: attr(n, "lang"),
	}
	if conf := floats(props["x_wconf"]); len(conf) == 1 {
		word.Confidence = conf[0]
	}
	walk(n, func(c *html.Node) bool {
		switch c.DataAtom {
		case atom.Strong, atom.B:
			word.Bold = true
		case atom.Em, atom.I:
			word.Italic = true
		}
		return true
	})
	return word
}

// walk calls visit for every element below n in document order. Children of an element
// are skipped when visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !visit(c) {
			continue
		}
		walk(c, visit)
	}
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func lineKind(n *html.Node) LineKind {
	for _, kind := range lineKinds {
		if hasClass(n, string(kind)) {
			return kind
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func bboxOf(props map[string][]string) BoundingBox {
	values := floats(props["bbox"])
	if len(values) != 4 {
		return BoundingBox{}
	}
	return NewBoundingBox(values[0], values[1], values[2], values[3])
}

// floats parses every value, returning nil if any is not a number.
func floats(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		out = append(out, f)
	}
	return out
}
