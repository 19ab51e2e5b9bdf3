package pdfocr

import (
	"log/slog"
)

// Config holds the options for adding an OCR text layer to a PDF.
type Config struct {
	Debug     bool         // Draw the text in red with word boxes instead of invisibly
	Force     bool         // Add a layer even if the PDF already has one
	LayerName string       // Base name of the OCR layer; " (Page N)" is appended per page
	StartPage int          // First PDF page (1-based) the hOCR pages apply to
	DPI       float64      // Resolution of the page images; 0 maps one pixel to one point
	Logger    *slog.Logger // nil = slog.Default()
	Font      FontConfig
}

// DefaultConfig returns a config with an invisible "OCR Text" layer starting at page 1.
func DefaultConfig() Config {
	return Config{
		LayerName: "OCR Text",
		StartPage: 1,
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Core font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Base font size before fitting to the word box
	AscentRatio float64 // Share of the font size above the baseline
}

// DefaultFont is Helvetica, whose metrics fit tesseract word boxes well.
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// scale returns the factor converting image pixels to PDF points.
func (c Config) scale() float64 {
	if c.DPI <= 0 {
		return 1
	}
	return 72 / c.DPI
}
