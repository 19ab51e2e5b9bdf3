package hocr

import (
	"strings"
)

// AllLines returns the lines of the page in reading order: lines of each area's
// paragraphs, then the area's own lines, then lines outside any area.
func (p Page) AllLines() []Line {
	var lines []Line
	for _, area := range p.Areas {
		for _, par := range area.Paragraphs {
			lines = append(lines, par.Lines...)
		}
		lines = append(lines, area.Lines...)
	}
	return append(lines, p.Lines...)
}

// Words returns every word of the page in reading order.
func (p Page) Words() []Word {
	var words []Word
	for _, line := range p.AllLines() {
		words = append(words, line.Words...)
	}
	return words
}

// Text returns the text of the line with words separated by single spaces.
func (l Line) Text() string {
	texts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if w.Text != "" {
			texts = append(texts, w.Text)
		}
	}
	return strings.Join(texts, " ")
}

// Text returns the page text: one line per hOCR line, paragraphs separated by a blank
// line.
func (p Page) Text() string {
	var blocks []string
	addLines := func(lines []Line) {
		var b strings.Builder
		for _, line := range lines {
			if text := line.Text(); text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
		if b.Len() > 0 {
			blocks = append(blocks, b.String())
		}
	}

	for _, area := range p.Areas {
		for _, par := range area.Paragraphs {
			addLines(par.Lines)
		}
		addLines(area.Lines)
	}
	addLines(p.Lines)
	return strings.Join(blocks, "\n")
}

// Text returns the text of every page, pages separated by a form feed.
func (h HOCR) Text() string {
	pages := make([]string, len(h.Pages))
	for i, p := range h.Pages {
		pages[i] = p.Text()
	}
	return strings.Join(pages, "\f")
}

// Words returns the words of every page in document order.
func (h HOCR) Words() []Word {
	var words []Word
	for _, p := range h.Pages {
		words = append(words, p.Words()...)
	}
	return words
}

// MeanConfidence returns the average word confidence of the page, 0 without words.
func (p Page) MeanConfidence() float64 {
	words := p.Words()
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}

// Boxes returns the bounding boxes of the page's words in reading order.
func (p Page) Boxes() []BoundingBox {
	words := p.Words()
	boxes := make([]BoundingBox, len(words))
	for i, w := range words {
		boxes[i] = w.BBox
	}
	return boxes
}

// ExtractText parses an hOCR document and returns its plain text.
func ExtractText(data []byte) (string, error) {
	doc, err := ParseHOCR(data)
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}
