package tesseract

import (
	"context"

	"github.com/gardar/tessexec/pkg/hocr"
)

// ImageToHOCRDocument runs tesseract with hOCR output and parses it into the hocr
// object model.
func (c *Client) ImageToHOCRDocument(ctx context.Context, img Image, opts Options) (hocr.HOCR, error) {
	res, _, err := c.output(ctx, img, opts, FormatHOCR.String())
	if err != nil {
		return hocr.HOCR{}, err
	}
	doc, err := hocr.ParseHOCR(res.Stdout)
	if err != nil {
		return hocr.HOCR{}, &ParseError{Parser: "hocr", Err: err}
	}
	return doc, nil
}
