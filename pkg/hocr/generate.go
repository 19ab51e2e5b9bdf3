package hocr

import (
	"bytes"
	"cmp"
	"embed"
	"fmt"
	"html/template"
	"maps"
	"slices"
	"strconv"
	"strings"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var hocrTemplate = template.Must(template.New("hocr.tmpl").Funcs(template.FuncMap{
	"join":      strings.Join,
	"bbox":      formatBBox,
	"kind":      func(k LineKind) LineKind { return cmp.Or(k, KindLine) },
	"pageTitle": pageTitle,
	"lineTitle": lineTitle,
	"wordTitle": wordTitle,
}).ParseFS(templateFS, "templates/hocr.tmpl"))

// GenerateHOCRDocument renders doc as an hOCR HTML document that ParseHOCR reads back
// into the same model.
func GenerateHOCRDocument(doc *HOCR) (string, error) {
	var buf bytes.Buffer
	if err := hocrTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

// Merge concatenates the pages of docs into one document. Pages are renumbered from 0
// and given fresh ids; metadata is taken from the first document.
func Merge(docs ...HOCR) HOCR {
	var merged HOCR
	if len(docs) > 0 {
		merged = docs[0]
		merged.Metadata = maps.Clone(docs[0].Metadata)
		merged.Pages = nil
	}
	for _, doc := range docs {
		for _, page := range doc.Pages {
			page.PageNumber = len(merged.Pages)
			page.ID = fmt.Sprintf("page_%d", page.PageNumber+1)
			merged.Pages = append(merged.Pages, page)
		}
	}
	if _, ok := merged.Metadata["ocr-number-of-pages"]; ok {
		merged.Metadata["ocr-number-of-pages"] = strconv.Itoa(len(merged.Pages))
	}
	return merged
}

func pageTitle(p Page) string {
	parts := []string{
		"image " + strconv.Quote(p.ImageName),
		formatBBox(p.BBox),
		"ppageno " + strconv.Itoa(p.PageNumber),
	}
	for _, k := range slices.Sorted(maps.Keys(p.Properties)) {
		parts = append(parts, k+" "+p.Properties[k])
	}
	return strings.Join(parts, "; ")
}

func lineTitle(l Line) string {
	parts := []string{formatBBox(l.BBox)}
	if l.Baseline != (Baseline{}) {
		parts = append(parts, "baseline "+formatFloat(l.Baseline.Slope)+" "+formatFloat(l.Baseline.Offset))
	}
	if l.XSize > 0 {
		parts = append(parts, "x_size "+formatFloat(l.XSize))
	}
	return strings.Join(parts, "; ")
}

func wordTitle(w Word) string {
	return formatBBox(w.BBox) + "; x_wconf " + formatFloat(w.Confidence)
}

func formatBBox(b BoundingBox) string {
	return fmt.Sprintf("bbox %s %s %s %s", formatFloat(b.X1), formatFloat(b.Y1), formatFloat(b.X2), formatFloat(b.Y2))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
