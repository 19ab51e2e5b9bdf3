package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/tessexec/pkg/hocr"
	"github.com/gardar/tessexec/pkg/pdfocr"
	"github.com/gardar/tessexec/pkg/tesseract"
)

// recognizer is a recognition method of tesseract.Client, used as a method expression.
type recognizer func(*tesseract.Client, context.Context, tesseract.Image, tesseract.Options) (string, error)

// openImages maps command-line arguments to images. "-" reads the image from stdin and
// may be given once.
func openImages(args []string, stdin io.Reader) ([]tesseract.Image, error) {
	images := make([]tesseract.Image, len(args))
	for i, arg := range args {
		if arg != "-" {
			images[i] = tesseract.Path(arg)
			continue
		}
		if slices.Index(args, "-") != i {
			return nil, fmt.Errorf("stdin can be read only once")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read image from stdin: %w", err)
		}
		images[i] = tesseract.Bytes(data)
	}
	return images, nil
}

// forEachImage runs recognize on every image argument, at most --jobs at a time, and
// returns the results in argument order. The first failure cancels the rest.
func forEachImage[T any](cmd *cobra.Command, args []string, recognize func(*tesseract.Client, context.Context, tesseract.Image, tesseract.Options) (T, error)) ([]T, error) {
	images, err := openImages(args, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	results := make([]T, len(images))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(app.settings.Jobs)
	for i, img := range images {
		g.Go(func() error {
			r, err := recognize(app.client, ctx, img, app.settings.Options)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// textCmdFor prints the decoded output of every image in order.
func textCmdFor(use, short string, recognize recognizer) *cobra.Command {
	return &cobra.Command{
		Use:   use + " IMAGE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := forEachImage[string](cmd, args, recognize)
			if err != nil {
				return err
			}
			for _, text := range results {
				if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// structuredCmdFor prints the parsed result of every image as YAML or JSON.
func structuredCmdFor[T any](use, short string, recognize func(*tesseract.Client, context.Context, tesseract.Image, tesseract.Options) (T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " IMAGE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := forEachImage(cmd, args, recognize)
			if err != nil {
				return err
			}
			out := make([]any, len(results))
			for i, r := range results {
				out[i] = r
			}
			return printResults(cmd.OutOrStdout(), app.settings.Output, args, out)
		},
	}
}

var (
	textCmd = textCmdFor("text", "Recognize plain text", (*tesseract.Client).ImageToString)
	altoCmd = textCmdFor("alto", "Recognize text as ALTO XML", (*tesseract.Client).ImageToALTO)
	tsvCmd  = textCmdFor("tsv", "Recognize text as tesseract's TSV table", (*tesseract.Client).ImageToTSV)

	boxesCmd      = structuredCmdFor("boxes", "List the bounding box of every recognized glyph", (*tesseract.Client).ImageToBoxes)
	dataCmd       = structuredCmdFor("data", "List the page, block, paragraph, line and word rows of the TSV output", (*tesseract.Client).ImageToData)
	osdCmd        = structuredCmdFor("osd", "Detect page orientation and script", (*tesseract.Client).ImageToOSD)
	confidenceCmd = structuredCmdFor("confidence", "Print the script confidence of orientation detection", (*tesseract.Client).Confidence)
	deskewCmd     = structuredCmdFor("deskew", "Print the estimated skew angle", (*tesseract.Client).Deskew)
)

var hocrCmd = &cobra.Command{
	Use:   "hocr IMAGE...",
	Short: "Recognize text as hOCR",
	Long: `Recognize text as hOCR. A single image prints tesseract's document unchanged;
several images are merged into one document with one page per image.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			results, err := forEachImage(cmd, args, (*tesseract.Client).ImageToHOCR)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), results[0])
			return err
		}

		docs, err := forEachImage(cmd, args, (*tesseract.Client).ImageToHOCRDocument)
		if err != nil {
			return err
		}
		merged := hocr.Merge(docs...)
		out, err := hocr.GenerateHOCRDocument(&merged)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

var pdfOut string

var pdfCmd = &cobra.Command{
	Use:   "pdf --out FILE IMAGE...",
	Short: "Create a searchable PDF, one page per image",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := forEachImage(cmd, args, (*tesseract.Client).ImageToPDF)
		if err != nil {
			return err
		}

		out := docs[0]
		if len(docs) > 1 {
			if out, err = pdfocr.Merge(docs); err != nil {
				return err
			}
		}
		if err := os.WriteFile(pdfOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		app.logger.Info("wrote PDF", "path", pdfOut, "images", len(args))
		return nil
	},
}

func init() {
	pdfCmd.Flags().StringVar(&pdfOut, "out", "", "output PDF file")
	_ = pdfCmd.MarkFlagRequired("out")
}
