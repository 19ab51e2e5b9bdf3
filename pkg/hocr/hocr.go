// Package hocr reads and writes hOCR, the HTML format tesseract produces with its
// "hocr" output.
//
// The object model follows the element hierarchy tesseract emits:
// Document → Pages → Areas → Paragraphs → Lines → Words. Lines keep their hOCR
// kind, because tesseract marks captions, headers and floating text with their own
// classes instead of 'ocr_line'.
//
// Key Types:
//
// - HOCR: a parsed document with the ocr-system metadata and its pages
// - Page, Area, Paragraph, Line, Word: one level of the hierarchy each
// - BoundingBox: the 'bbox' property, in image pixels with the origin top-left
//
// Main Functions:
//
// - ParseHOCR: decodes and parses an hOCR document in any charset it declares
// - ParseTitle: splits an hOCR title attribute into its properties
// - GenerateHOCRDocument: renders a document back to hOCR HTML
// - HOCR.Text and Page.Words: reading-order text and flattened words
package hocr
