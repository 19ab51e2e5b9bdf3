package hocr

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title></title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name='ocr-system' content='tesseract 5.3.0' />
  <meta name='ocr-capabilities' content='ocr_page ocr_carea ocr_par ocr_line ocrx_word ocrp_wconf'/>
 </head>
 <body>
  <div class='ocr_page' id='page_1' title='image "scan 1.png"; bbox 0 0 640 480; ppageno 0; scan_res 300 300'>
   <div class='ocr_carea' id='block_1_1' title="bbox 36 92 618 361">
    <p class='ocr_par' id='par_1_1' lang='eng' title="bbox 36 92 618 148">
     <span class='ocr_line' id='line_1_1' title="bbox 36 92 618 148; baseline 0.002 -12; x_size 56; x_descenders 12; x_ascenders 14">
      <span class='ocrx_word' id='word_1_1' title='bbox 36 92 204 148; x_wconf 95'>This</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 231 92 313 148; x_wconf 96'><strong>is</strong></span>
     </span>
     <span class='ocr_caption' id='line_1_2' title="bbox 36 160 300 200; baseline 0 -8; x_size 40">
      <span class='ocrx_word' id='word_1_3' title='bbox 36 160 300 200; x_wconf 80'><em>caption</em></span>
     </span>
    </p>
    <p class='ocr_par' id='par_1_2' lang='eng' title="bbox 36 300 618 361">
     <span class='ocr_header' id='line_1_3' title="bbox 36 300 618 361">
      <span class='ocrx_word' id='word_1_4' title='bbox 36 300 618 361; x_wconf 70'>Heading</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>
`

func TestParseHOCR(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.System != "tesseract 5.3.0" {
		t.Errorf("System = %q", doc.System)
	}
	if len(doc.Capabilities) != 6 || doc.Capabilities[0] != "ocr_page" {
		t.Errorf("Capabilities = %v", doc.Capabilities)
	}
	if doc.Language != "en" {
		t.Errorf("Language = %q", doc.Language)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages", len(doc.Pages))
	}

	page := doc.Pages[0]
	if page.ImageName != "scan 1.png" || page.PageNumber != 0 {
		t.Errorf("page = %+v", page)
	}
	if page.BBox != NewBoundingBox(0, 0, 640, 480) {
		t.Errorf("page bbox = %+v", page.BBox)
	}
	if page.Properties["scan_res"] != "300 300" {
		t.Errorf("properties = %v", page.Properties)
	}
	if len(page.Areas) != 1 || len(page.Areas[0].Paragraphs) != 2 {
		t.Fatalf("areas = %+v", page.Areas)
	}

	par := page.Areas[0].Paragraphs[0]
	if par.Lang != "eng" || len(par.Lines) != 2 {
		t.Fatalf("paragraph = %+v", par)
	}
	line := par.Lines[0]
	if line.Kind != KindLine || line.XSize != 56 || line.Baseline != (Baseline{Slope: 0.002, Offset: -12}) {
		t.Errorf("line = %+v", line)
	}
	if par.Lines[1].Kind != KindCaption {
		t.Errorf("second line kind = %q", par.Lines[1].Kind)
	}
	if page.Areas[0].Paragraphs[1].Lines[0].Kind != KindHeader {
		t.Errorf("header line kind = %q", page.Areas[0].Paragraphs[1].Lines[0].Kind)
	}

	words := page.Words()
	var texts []string
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	if !reflect.DeepEqual(texts, []string{"This", "is", "caption", "Heading"}) {
		t.Errorf("words = %v", texts)
	}
	if !words[1].Bold || words[1].Italic || !words[2].Italic {
		t.Errorf("emphasis lost: %+v", words[1:3])
	}
	if words[0].Confidence != 95 || words[0].BBox.Width() != 168 {
		t.Errorf("first word = %+v", words[0])
	}
}

func TestParseHOCRCharset(t *testing.T) {
	doc := `<html><head><meta charset="iso-8859-1"></head><body>` +
		`<div class='ocr_page' title='bbox 0 0 10 10'><span class='ocr_line' title='bbox 0 0 10 10'>` +
		"<span class='ocrx_word' title='bbox 0 0 10 10; x_wconf 90'>caf\xe9</span></span></div></body></html>"

	parsed, err := ParseHOCR([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	words := parsed.Words()
	if len(words) != 1 || words[0].Text != "café" {
		t.Errorf("words = %+v", words)
	}
	if len(parsed.Pages[0].Lines) != 1 {
		t.Errorf("line outside an area should stay on the page: %+v", parsed.Pages[0])
	}
}

func TestParseHOCRNoPages(t *testing.T) {
	_, err := ParseHOCR([]byte("<html><body><p>nothing</p></body></html>"))
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestParseHOCRStrayWords(t *testing.T) {
	doc := `<div class='ocr_page' title='bbox 0 0 100 100'><p class='ocr_par' title='bbox 0 0 100 100'>` +
		`<span class='ocrx_word' title='bbox 0 0 40 20'>loose</span>` +
		`<span class='ocrx_word' title='bbox 50 10 90 30'>words</span></p></div>`

	parsed, err := ParseHOCR([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	page := parsed.Pages[0]
	if len(page.Areas) != 1 || len(page.Areas[0].Paragraphs) != 1 {
		t.Fatalf("paragraph outside an area should get its own: %+v", page.Areas)
	}
	lines := page.AllLines()
	if len(lines) != 1 || lines[0].BBox != NewBoundingBox(0, 0, 90, 30) {
		t.Errorf("lines = %+v", lines)
	}
	if got := page.Text(); got != "loose words\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestParseTitle(t *testing.T) {
	props := ParseTitle(`image "/tmp/scan 1.png"; bbox 1 2 3 4;  x_wconf 91 ;`)
	if got := props["image"]; len(got) != 1 || got[0] != "/tmp/scan 1.png" {
		t.Errorf("image = %q", got)
	}
	if got := strings.Join(props["bbox"], ","); got != "1,2,3,4" {
		t.Errorf("bbox = %q", got)
	}
	if got := props["x_wconf"]; len(got) != 1 || got[0] != "91" {
		t.Errorf("x_wconf = %q", got)
	}

	if box := ParseBoundingBoxFromTitle("bbox 1 2 3"); box != nil {
		t.Errorf("short bbox should be rejected, got %+v", box)
	}
	if box := ParseBoundingBoxFromTitle("x_wconf 3; bbox 10 20 30 40"); box == nil || box.Height() != 20 {
		t.Errorf("box = %+v", box)
	}
}
