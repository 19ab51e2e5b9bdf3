package hocr

// HOCR is a parsed hOCR document.
type HOCR struct {
	Title        string            // Contents of <title>
	Language     string            // lang of the <html> element
	System       string            // ocr-system meta, e.g. "tesseract 5.3.0"
	Capabilities []string          // ocr-capabilities meta
	Metadata     map[string]string // Every other <meta name=... content=...>
	Pages        []Page
}

// Page is an element with class 'ocr_page'.
type Page struct {
	ID         string
	PageNumber int         // ppageno property, 0-based
	ImageName  string      // image property, unquoted
	BBox       BoundingBox // Page size in image pixels
	Areas      []Area
	Lines      []Line            // Lines found outside any area
	Properties map[string]string // Title properties other than bbox, image and ppageno
}

// Area is an element with class 'ocr_carea'.
type Area struct {
	ID         string
	BBox       BoundingBox
	Paragraphs []Paragraph
	Lines      []Line // Lines found outside any paragraph
}

// Paragraph is an element with class 'ocr_par'.
type Paragraph struct {
	ID    string
	Lang  string
	Dir   string // "ltr" or "rtl" when tesseract set one
	BBox  BoundingBox
	Lines []Line
}

// LineKind is the hOCR class tesseract used for a line of text.
type LineKind string

const (
	KindLine      LineKind = "ocr_line"
	KindCaption   LineKind = "ocr_caption"
	KindHeader    LineKind = "ocr_header"
	KindTextFloat LineKind = "ocr_textfloat"
)

var lineKinds = []LineKind{KindLine, KindCaption, KindHeader, KindTextFloat}

// Line is one line of text in any of the LineKind classes.
type Line struct {
	ID       string
	Kind     LineKind
	BBox     BoundingBox
	Baseline Baseline
	XSize    float64 // x_size property: the line height in pixels
	Words    []Word
}

// Baseline is the hOCR 'baseline' property: the slope of the text baseline and its
// offset from the bottom of the line's bounding box.
type Baseline struct {
	Slope  float64
	Offset float64
}

// Word is an element with class 'ocrx_word'.
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf property, 0-100
	Lang       string
	Bold       bool // Wrapped in <strong>
	Italic     bool // Wrapped in <em>
}

// BoundingBox is an hOCR 'bbox' property. X1,Y1 is the top-left corner and X2,Y2 the
// bottom-right one.
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBoundingBox creates a bounding box from its corners.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (b BoundingBox) Width() float64  { return b.X2 - b.X1 }
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Empty reports whether the box has no area.
func (b BoundingBox) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Union returns the smallest box containing both b and o. An empty box is ignored.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	switch {
	case b.Empty():
		return o
	case o.Empty():
		return b
	}
	return BoundingBox{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}
