package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/tessexec/pkg/hocr"
)

// layerTitle returns the name of the OCR layer of one page.
func layerTitle(base string, pageNum int) string {
	if pageNum > 0 {
		return fmt.Sprintf("%s (Page %d)", base, pageNum)
	}
	return base
}

// drawOCRLayer draws the words of page onto their own layer of the current PDF page.
// transform maps hOCR pixel coordinates to PDF points.
func drawOCRLayer(
	pdf *fpdf.Fpdf,
	page hocr.Page,
	cfg Config,
	pageNum int,
	transform func(x, y float64) (float64, float64),
) error {
	layer := pdf.AddLayer(layerTitle(cfg.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	if cfg.Debug {
		pdf.SetTextColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal")
	}

	// Core fonts are cp1252; characters outside it become '?'
	encoder := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

	words := page.Words()
	lossy := 0
	for _, word := range words {
		if word.Text == "" || word.BBox.Empty() {
			continue
		}
		if _, err := charmap.Windows1252.NewEncoder().String(word.Text); err != nil {
			lossy++
		}
		text, err := encoder.String(word.Text)
		if err != nil {
			return fmt.Errorf("failed to encode word %q: %w", word.Text, err)
		}
		drawWord(pdf, word, text, transform, cfg)
	}

	if !cfg.Debug {
		pdf.SetAlpha(1.0, "Normal")
	}
	pdf.EndLayer()

	if lossy > 0 {
		cfg.logger().Warn("characters missing from the PDF font were replaced",
			"page", pageNum, "words", lossy, "total", len(words))
	}
	return pdf.Error()
}

// drawWord renders a single word, stretched to the width of its box.
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, text string, transform func(x, y float64) (float64, float64), cfg Config) {
	x, y := transform(word.BBox.X1, word.BBox.Y1)
	x2, y2 := transform(word.BBox.X2, word.BBox.Y2)
	wordWidth := x2 - x

	if strWidth := pdf.GetStringWidth(text); strWidth > 0 {
		pdf.SetFontSize(cfg.Font.Size * wordWidth / strWidth)
	}
	fontSize, _ := pdf.GetFontSize()
	baseline := y + fontSize*cfg.Font.AscentRatio

	pdf.Text(x, baseline, text)
	pdf.SetFontSize(cfg.Font.Size)

	if cfg.Debug {
		pdf.Rect(x, y, wordWidth, y2-y, "D")
	}
}
