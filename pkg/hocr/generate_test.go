package hocr

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateRoundTrip(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatal(err)
	}

	out, err := GenerateHOCRDocument(&doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `class="ocr_caption"`) {
		t.Errorf("line kind lost:\n%s", out)
	}

	again, err := ParseHOCR([]byte(out))
	if err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}
	if !reflect.DeepEqual(again.Pages, doc.Pages) {
		t.Errorf("pages changed on round trip:\n got %+v\nwant %+v", again.Pages, doc.Pages)
	}
	if again.System != doc.System {
		t.Errorf("System = %q", again.System)
	}
}

func TestGenerateEscapesText(t *testing.T) {
	doc := HOCR{Pages: []Page{{
		ImageName: `a "quoted" name.png`,
		BBox:      NewBoundingBox(0, 0, 10, 10),
		Lines: []Line{{
			BBox:  NewBoundingBox(0, 0, 10, 10),
			Words: []Word{{Text: "<b>&", BBox: NewBoundingBox(0, 0, 10, 10), Confidence: 50}},
		}},
	}}}

	out, err := GenerateHOCRDocument(&doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<b>&") {
		t.Errorf("word text not escaped:\n%s", out)
	}

	again, err := ParseHOCR([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Words(); len(got) != 1 || got[0].Text != "<b>&" {
		t.Errorf("words = %+v", got)
	}
	if again.Pages[0].ImageName != `a "quoted" name.png` {
		t.Errorf("ImageName = %q", again.Pages[0].ImageName)
	}
	if again.Pages[0].Lines[0].Kind != KindLine {
		t.Errorf("empty kind should render as ocr_line, got %q", again.Pages[0].Lines[0].Kind)
	}
}

func TestMerge(t *testing.T) {
	first := HOCR{System: "tesseract 5", Metadata: map[string]string{"ocr-number-of-pages": "1"}, Pages: []Page{{ID: "page_1", ImageName: "a.png"}}}
	second := HOCR{Pages: []Page{{ID: "page_1", ImageName: "b.png"}, {ID: "page_2", ImageName: "c.png"}}}

	merged := Merge(first, second)
	if len(merged.Pages) != 3 {
		t.Fatalf("got %d pages", len(merged.Pages))
	}
	for i, p := range merged.Pages {
		if p.PageNumber != i {
			t.Errorf("page %d numbered %d", i, p.PageNumber)
		}
	}
	if merged.Pages[2].ID != "page_3" || merged.Pages[2].ImageName != "c.png" {
		t.Errorf("last page = %+v", merged.Pages[2])
	}
	if merged.System != "tesseract 5" || merged.Metadata["ocr-number-of-pages"] != "3" {
		t.Errorf("metadata = %q %v", merged.System, merged.Metadata)
	}
	if first.Metadata["ocr-number-of-pages"] != "1" {
		t.Error("Merge must not modify its inputs")
	}
}

func TestTextAndConfidence(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatal(err)
	}
	want := "This is\ncaption\n\nHeading\n"
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := doc.Pages[0].MeanConfidence(); got != (95+96+80+70)/4.0 {
		t.Errorf("MeanConfidence() = %v", got)
	}
	if boxes := doc.Pages[0].Boxes(); len(boxes) != 4 || boxes[0] != doc.Pages[0].Words()[0].BBox {
		t.Errorf("Boxes() = %+v", boxes)
	}
	if text, err := ExtractText([]byte(sampleHOCR)); err != nil || text != want {
		t.Errorf("ExtractText() = %q, %v", text, err)
	}
	if _, err := ExtractText([]byte("<html></html>")); err == nil {
		t.Error("expected an error for a document without pages")
	}

	box := NewBoundingBox(10, 10, 20, 20).Union(NewBoundingBox(0, 15, 15, 30))
	if box != NewBoundingBox(0, 10, 20, 30) {
		t.Errorf("Union = %+v", box)
	}
	if (BoundingBox{}).Union(box) != box {
		t.Error("union with an empty box should return the other box")
	}
}
