package tesseract

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ImageToString returns the plain text tesseract recognizes in img.
func (c *Client) ImageToString(ctx context.Context, img Image, opts Options) (string, error) {
	return c.decoded(ctx, img, opts, FormatText)
}

// ImageToHOCR returns the hOCR HTML document for img.
func (c *Client) ImageToHOCR(ctx context.Context, img Image, opts Options) (string, error) {
	return c.decoded(ctx, img, opts, FormatHOCR)
}

// ImageToALTO returns the ALTO XML document for img.
func (c *Client) ImageToALTO(ctx context.Context, img Image, opts Options) (string, error) {
	return c.decoded(ctx, img, opts, FormatALTO)
}

// ImageToTSV returns tesseract's raw TSV table for img. See ImageToData for the parsed rows.
func (c *Client) ImageToTSV(ctx context.Context, img Image, opts Options) (string, error) {
	return c.decoded(ctx, img, opts, FormatTSV)
}

// ImageToPDF returns a searchable PDF of img with the recognized text as an invisible layer.
func (c *Client) ImageToPDF(ctx context.Context, img Image, opts Options) ([]byte, error) {
	res, _, err := c.output(ctx, img, opts, FormatPDF.String())
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// ImageToBoxes returns one Box per recognized glyph, from tesseract's makebox output.
func (c *Client) ImageToBoxes(ctx context.Context, img Image, opts Options) ([]Box, error) {
	res, opts, err := c.output(ctx, img, opts, "batch.nochop", "makebox")
	if err != nil {
		return nil, err
	}
	text, err := decode(res.Stdout, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return ParseBoxes(text)
}

// ImageToData returns the rows of tesseract's TSV output: the page, block, paragraph,
// line and word hierarchy with bounding boxes and word confidences.
func (c *Client) ImageToData(ctx context.Context, img Image, opts Options) ([]Data, error) {
	text, err := c.decoded(ctx, img, opts, FormatTSV)
	if err != nil {
		return nil, err
	}
	return ParseData(text)
}

// ImageToOSD runs orientation and script detection. PSM is forced to 0 and the default
// engine mode is replaced by the legacy engine, which is the only one that ships OSD.
func (c *Client) ImageToOSD(ctx context.Context, img Image, opts Options) (OSD, error) {
	opts.PSM = 0
	if opts.OEM == DefaultOEM {
		opts.OEM = 0
	}

	text, err := c.decoded(ctx, img, opts, FormatOSD)
	if err != nil {
		var runErr *RuntimeError
		if errors.As(err, &runErr) && missingOSDModel(runErr.Stderr) {
			return OSD{}, &RuntimeError{
				ExitCode: runErr.ExitCode,
				Stderr: "OSD (orientation and script detection) requires legacy engine support; " +
					"install osd.traineddata with the legacy model. tesseract said: " + runErr.Stderr,
			}
		}
		return OSD{}, err
	}
	return ParseOSD(text)
}

func missingOSDModel(stderr string) bool {
	return strings.Contains(stderr, "OSD requires a model for the legacy engine") ||
		strings.Contains(stderr, "Can't open osd")
}

// Confidence returns the script confidence tesseract reports during orientation and
// script detection. Inputs for which tesseract prints no confidence line, including
// inputs it rejects, yield 0.
func (c *Client) Confidence(ctx context.Context, img Image, opts Options) (float64, error) {
	opts.PSM = 0
	res, opts, err := c.output(ctx, img, opts)
	if err != nil {
		if errors.Is(err, ErrRuntime) {
			c.logger.Debug("no script confidence, tesseract rejected the input", "error", err)
			return 0, nil
		}
		return 0, err
	}

	text, err := decode(res.Stdout, opts.Encoding)
	if err != nil {
		return 0, err
	}
	confidence, ok := parseConfidence(text)
	if !ok {
		c.logger.Debug("no script confidence in tesseract output")
	}
	return confidence, nil
}

// Deskew returns the skew angle tesseract estimates with page segmentation mode 2.
// Inputs for which tesseract prints no angle, including inputs it rejects, yield 0.
func (c *Client) Deskew(ctx context.Context, img Image, opts Options) (float64, error) {
	opts.PSM = 2
	res, opts, err := c.output(ctx, img, opts)
	if err != nil {
		if errors.Is(err, ErrRuntime) {
			c.logger.Debug("no deskew angle, tesseract rejected the input", "error", err)
			return 0, nil
		}
		return 0, err
	}

	// The angle is a diagnostic and goes to stderr
	for _, out := range [][]byte{res.Stderr, res.Stdout} {
		text, err := decode(out, opts.Encoding)
		if err != nil {
			return 0, err
		}
		if angle, ok := parseDeskew(text); ok {
			return angle, nil
		}
	}
	c.logger.Debug("no deskew angle in tesseract output")
	return 0, nil
}

// Languages returns the known languages installed for tesseract. An empty tessdataDir
// uses tesseract's own default location.
func (c *Client) Languages(ctx context.Context, tessdataDir string) ([]string, error) {
	var args []string
	if tessdataDir != "" {
		if err := ValidateFileExists(tessdataDir); err != nil {
			return nil, err
		}
		args = append(args, "--tessdata-dir", tessdataDir)
	}
	args = append(args, "--list-langs")

	res, opts, err := c.introspect(ctx, args...)
	if err != nil {
		return nil, err
	}
	// Releases before 4.0 printed the list on stderr
	for _, out := range [][]byte{res.Stdout, res.Stderr} {
		text, err := decode(out, opts.Encoding)
		if err != nil {
			return nil, err
		}
		if langs := ParseLanguages(text); len(langs) > 0 {
			return langs, nil
		}
	}
	return []string{}, nil
}

// Version returns the version of the tesseract binary, such as "5.3.0".
func (c *Client) Version(ctx context.Context) (string, error) {
	res, opts, err := c.introspect(ctx, "--version")
	if err != nil {
		return "", err
	}
	out := res.Stdout
	if len(strings.TrimSpace(string(out))) == 0 {
		out = res.Stderr
	}
	text, err := decode(out, opts.Encoding)
	if err != nil {
		return "", err
	}
	return ParseVersion(text)
}

// Parameters returns every tesseract control parameter with its default value and
// description, sorted by name.
func (c *Client) Parameters(ctx context.Context) ([]Parameter, error) {
	res, opts, err := c.introspect(ctx, "--print-parameters")
	if err != nil {
		return nil, err
	}
	text, err := decode(res.Stdout, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return ParseParameters(text), nil
}

// decoded runs tesseract for a single format written to stdout and decodes the output.
func (c *Client) decoded(ctx context.Context, img Image, opts Options, format FileFormat) (string, error) {
	res, opts, err := c.output(ctx, img, opts, format.String())
	if err != nil {
		return "", err
	}
	return decode(res.Stdout, opts.Encoding)
}

// output runs tesseract on img with stdout as the output base and the given trailing
// configfile tokens. It returns the options with the client defaults applied.
func (c *Client) output(ctx context.Context, img Image, opts Options, configFiles ...string) (*result, Options, error) {
	opts = c.withDefaults(opts)
	if _, err := lookupEncoding(opts.Encoding); err != nil {
		return nil, opts, err
	}

	input, stdin, err := imageSource(img)
	if err != nil {
		return nil, opts, err
	}
	args, err := buildArgs(input, StdoutSentinel, opts, configFiles...)
	if err != nil {
		return nil, opts, err
	}

	res, err := c.execute(ctx, args, stdin, opts)
	if err != nil {
		return nil, opts, err
	}
	return res, opts, nil
}

// introspect runs one of tesseract's no-input commands with the client defaults.
func (c *Client) introspect(ctx context.Context, args ...string) (*result, Options, error) {
	opts := c.withDefaults(Options{})
	res, err := c.execute(ctx, args, nil, opts)
	if err != nil {
		return nil, opts, fmt.Errorf("tesseract %s: %w", strings.Join(args, " "), err)
	}
	return res, opts, nil
}
