// Package pdfocr adds invisible OCR text layers from hOCR to PDF documents.
//
// The text is positioned over the page image word by word, so the resulting PDF is
// searchable and text can be selected. Each page gets its own optional content group,
// which compatible readers let the user toggle on and off.
//
// Key Features:
//
// - Apply OCR text layers to existing PDFs
// - Create new PDFs from page images (PNG, JPEG, GIF, TIFF, BMP, WebP) with a text layer
// - Detect existing OCR layers to prevent duplication
//
// Main Functions:
//
// - ApplyOCR: Adds an OCR text layer to an existing PDF
// - AssembleWithOCR: Creates a new PDF from images with an OCR text layer
// - DetectOCR: Reports whether a PDF already carries an OCR layer
// - Merge: Concatenates PDFs
package pdfocr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/gardar/tessexec/pkg/hocr"
)

// ErrOCRExists is returned by ApplyOCR for a PDF that already has an OCR layer.
var ErrOCRExists = errors.New("PDF already has an OCR layer")

// AssembleWithOCR builds a new PDF with one page per image, starting at cfg.StartPage,
// and draws the words of the matching hOCR page over each image.
func AssembleWithOCR(doc hocr.HOCR, images [][]byte, cfg Config) ([]byte, error) {
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("hOCR data contains no pages")
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}
	if cfg.StartPage < 1 {
		return nil, fmt.Errorf("start page must be at least 1, got %d", cfg.StartPage)
	}
	if len(images) < len(doc.Pages) {
		return nil, fmt.Errorf("not enough images (%d) for hOCR pages (%d)", len(images), len(doc.Pages))
	}

	pages := make([]pageImage, len(images))
	for i, data := range images {
		img, err := normalizeImage(data)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		cfg.logger().Debug("page image", "page", i+1, "type", img.kind, "converted", img.converted)
		pages[i] = img
	}

	out, err := createPDFFromImages(doc, pages, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF from images: %w", err)
	}
	return out, nil
}

// ApplyOCR overlays the pages of an existing PDF, starting at cfg.StartPage, with the
// words of the hOCR pages. PDFs that already carry an OCR layer are rejected with
// ErrOCRExists unless cfg.Force is set.
func ApplyOCR(pdfData []byte, doc hocr.HOCR, cfg Config) ([]byte, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("hOCR data contains no pages")
	}
	if cfg.StartPage < 1 {
		return nil, fmt.Errorf("start page must be at least 1, got %d", cfg.StartPage)
	}

	count, err := pageCount(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to read input PDF: %w", err)
	}
	if last := cfg.StartPage - 1 + len(doc.Pages); last > count {
		return nil, fmt.Errorf("hOCR pages %d-%d do not fit a PDF with %d pages", cfg.StartPage, last, count)
	}

	log := cfg.logger()
	detection, err := DetectOCR(pdfData, cfg)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	if len(detection.LayerInfo.Layers) > 0 {
		log.Debug("existing layers in PDF", "layers", detection.LayerInfo.Layers)
	}
	for _, warning := range detection.Warnings {
		log.Warn(warning)
	}

	if detection.HasOCR {
		if !cfg.Force {
			return nil, fmt.Errorf("%w: layer '%s'", ErrOCRExists, detection.LayerInfo.OCRLayerName)
		}
		log.Warn("file already has OCR, reapplying will duplicate the text", "layer", detection.LayerInfo.OCRLayerName)
	}

	out, err := modifyExistingPDF(pdfData, count, doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("error modifying existing PDF: %w", err)
	}
	return out, nil
}

// Merge concatenates PDF documents into one, in order.
func Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no PDF data provided")
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, data := range docs {
		readers[i] = bytes.NewReader(data)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, pdfcpuConfig()); err != nil {
		return nil, fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return buf.Bytes(), nil
}

var disableConfigDir sync.Once

// pdfcpuConfig returns a relaxed pdfcpu configuration that never touches the user's
// config directory.
func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// pageCount returns the number of pages of a PDF.
func pageCount(pdfData []byte) (int, error) {
	return api.PageCount(bytes.NewReader(pdfData), pdfcpuConfig())
}
