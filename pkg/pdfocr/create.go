package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/tessexec/pkg/hocr"
)

// pageImage is an image in a format fpdf can embed.
type pageImage struct {
	data      []byte
	kind      string // fpdf image type: PNG, JPEG or GIF
	width     int
	height    int
	converted bool // Re-encoded to PNG from another format
}

// normalizeImage detects the format of data and re-encodes formats fpdf cannot embed
// (TIFF, BMP, WebP) as PNG.
func normalizeImage(data []byte) (pageImage, error) {
	if len(data) == 0 {
		return pageImage{}, fmt.Errorf("image is empty")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return pageImage{}, fmt.Errorf("failed to decode image config: %w", err)
	}
	img := pageImage{data: data, kind: strings.ToUpper(format), width: cfg.Width, height: cfg.Height}

	switch img.kind {
	case "PNG", "JPEG", "GIF":
		return img, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return pageImage{}, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return pageImage{}, fmt.Errorf("failed to convert %s image to PNG: %w", format, err)
	}
	img.data, img.kind, img.converted = buf.Bytes(), "PNG", true
	return img, nil
}

// createPDFFromImages builds a new PDF from page images with their OCR text layers.
// Inputs are validated by AssembleWithOCR.
func createPDFFromImages(doc hocr.HOCR, images []pageImage, cfg Config) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	scale := cfg.scale()

	for i := cfg.StartPage - 1; i < len(doc.Pages) && i < len(images); i++ {
		page := doc.Pages[i]
		img := images[i]

		// The hOCR page box is the image size in pixels; fall back to the image itself
		pxW, pxH := page.BBox.X2, page.BBox.Y2
		if pxW <= 0 || pxH <= 0 {
			pxW, pxH = float64(img.width), float64(img.height)
		}
		w, h := pxW*scale, pxH*scale

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		name := fmt.Sprintf("img%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: img.kind}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")

		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x, y, pxW, pxH, w, h)
		}
		if err := drawOCRLayer(pdf, page, cfg, i+1, transform); err != nil {
			return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
