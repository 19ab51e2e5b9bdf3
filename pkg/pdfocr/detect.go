package pdfocr

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// literal matches a PDF literal string without unescaped inner parentheses
const literal = `\(((?:\\.|[^\\)])*)\)`

var ocgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)/Type\s*/OCG\s*/Name\s*` + literal),
	regexp.MustCompile(`(?s)/Name\s*` + literal + `\s*/Type\s*/OCG`),
}

// detectPDFLayers finds the names of the optional content groups in raw PDF data.
func detectPDFLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	for _, pattern := range ocgPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			name := decodeTextString(unescapePDFString(match[1]))
			if !slices.Contains(layers, name) {
				layers = append(layers, name)
			}
		}
	}
	return layers, nil
}

// LayerCheckResult contains the results of checking for OCR layers
type LayerCheckResult struct {
	Layers       []string // All detected layers
	HasOCRLayer  bool     // True if the specified OCR layer exists
	OCRLayerName string   // Name of the detected OCR layer (if any)
	Warnings     []string // Any warnings about potential OCR layers
}

// CheckExistingOCRLayers looks for a layer named ocrLayerName, with or without the
// " (Page N)" suffix, and warns about other layers that mention OCR.
func CheckExistingOCRLayers(pdfData []byte, ocrLayerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := detectPDFLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayer := regexp.MustCompile(`^` + regexp.QuoteMeta(ocrLayerName) + `\s*\(Page\s*\d+`)
	for _, layer := range layers {
		if layer == ocrLayerName || pageLayer.MatchString(layer) {
			if !result.HasOCRLayer {
				result.HasOCRLayer = true
				result.OCRLayerName = layer
			}
			continue
		}
		if strings.Contains(strings.ToLower(layer), "ocr") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Existing layer detected that might contain OCR: %s", layer))
		}
	}
	return result, nil
}

// OCRDetectionResult contains comprehensive OCR detection information
type OCRDetectionResult struct {
	HasOCR      bool             // True if any OCR is detected by any method
	HasLayerOCR bool             // True if OCR layers are detected
	LayerInfo   LayerCheckResult // Details from layer detection
	Warnings    []string         // Warnings from any detection method
}

// DetectOCR reports whether pdfData already has the OCR layer cfg.LayerName.
func DetectOCR(pdfData []byte, cfg Config) (OCRDetectionResult, error) {
	result := OCRDetectionResult{}

	layers, err := CheckExistingOCRLayers(pdfData, cfg.LayerName)
	if err != nil {
		return result, err
	}
	result.LayerInfo = layers
	result.HasLayerOCR = layers.HasOCRLayer
	result.Warnings = append(result.Warnings, layers.Warnings...)

	result.HasOCR = result.HasLayerOCR
	return result, nil
}
