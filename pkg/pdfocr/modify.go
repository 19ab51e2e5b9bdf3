package pdfocr

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/tessexec/pkg/hocr"
)

// modifyExistingPDF re-imports all pages of an existing PDF and overlays the pages the
// hOCR document covers with their OCR text layer.
func modifyExistingPDF(pdfData []byte, pages int, doc hocr.HOCR, cfg Config) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(pdfData))

	for target := 1; target <= pages; target++ {
		tpl := importer.ImportPageFromStream(pdf, &rs, target, "/MediaBox")

		idx := target - cfg.StartPage
		covered := idx >= 0 && idx < len(doc.Pages)
		var page hocr.Page
		if covered {
			page = doc.Pages[idx]
		}
		w, h := mediaBox(importer, target, page)

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		importer.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
		if !covered {
			continue
		}

		// hOCR coordinates are image pixels; stretch them over the PDF page
		pxW, pxH := page.BBox.X2, page.BBox.Y2
		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x, y, pxW, pxH, w, h)
		}
		if err := drawOCRLayer(pdf, page, cfg, target, transform); err != nil {
			return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", target, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mediaBox returns the size in points of an imported page, or the hOCR page size when
// the importer does not know it.
func mediaBox(importer *gofpdi.Importer, pageNum int, page hocr.Page) (float64, float64) {
	if box, ok := importer.GetPageSizes()[pageNum]["/MediaBox"]; ok && box["w"] > 0 && box["h"] > 0 {
		return box["w"], box["h"]
	}
	return page.BBox.X2, page.BBox.Y2
}
