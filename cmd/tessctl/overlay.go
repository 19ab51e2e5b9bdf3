package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gardar/tessexec/pkg/hocr"
	"github.com/gardar/tessexec/pkg/pdfocr"
	"github.com/gardar/tessexec/pkg/tesseract"
)

var overlayFlags struct {
	out       string
	pdf       string
	hocr      string
	imageDir  string
	layer     string
	startPage int
	debug     bool
	force     bool
	overwrite bool
}

var overlayCmd = &cobra.Command{
	Use:   "overlay --out FILE [--pdf FILE --hocr FILE | --image-dir DIR | IMAGE...]",
	Short: "Build a searchable PDF with an invisible text layer per page",
	Long: `Build a searchable PDF with one invisible text layer per page.

With page images (arguments or --image-dir, sorted by name) a new PDF is created with
one page per image. The text comes from --hocr when given, otherwise every image is
recognized with tesseract first.

With --pdf the pages of an existing PDF, from --start-page on, are overlaid with the
pages of the --hocr document. PDFs that already carry an OCR layer are refused unless
--force is set.`,
	Example: `  tessctl overlay --out book.pdf page-*.png
  tessctl overlay --out book.pdf --image-dir scans/ --hocr book.hocr
  tessctl overlay --out searchable.pdf --pdf scan.pdf --hocr scan.hocr --start-page 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := overlayFlags
		if _, err := os.Stat(f.out); err == nil && !f.overwrite {
			return fmt.Errorf("output file %s already exists, use --overwrite to replace it", f.out)
		}

		cfg := pdfocr.DefaultConfig()
		cfg.Debug = f.debug
		cfg.Force = f.force
		cfg.StartPage = f.startPage
		cfg.Logger = app.logger
		if f.layer != "" {
			cfg.LayerName = f.layer
		}

		var (
			out []byte
			err error
		)
		if f.pdf != "" {
			out, err = overlayPDF(f.pdf, f.hocr, cfg)
		} else {
			out, err = overlayImages(cmd, args, f.imageDir, f.hocr, cfg)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(f.out, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output PDF: %w", err)
		}
		app.logger.Info("OCR-enhanced PDF created", "path", f.out)
		return nil
	},
}

func init() {
	flags := overlayCmd.Flags()
	flags.StringVar(&overlayFlags.out, "out", "", "output PDF file")
	flags.StringVar(&overlayFlags.pdf, "pdf", "", "existing PDF to add the text layer to")
	flags.StringVar(&overlayFlags.hocr, "hocr", "", "hOCR file with the text (required with --pdf)")
	flags.StringVar(&overlayFlags.imageDir, "image-dir", "", "directory of page images")
	flags.StringVar(&overlayFlags.layer, "layer", "", `base name of the text layers (default "OCR Text")`)
	flags.IntVar(&overlayFlags.startPage, "start-page", 1, "first PDF page the hOCR pages apply to")
	flags.BoolVar(&overlayFlags.debug, "debug", false, "draw the text visibly with word boxes")
	flags.BoolVar(&overlayFlags.force, "force", false, "add a text layer even if the PDF already has one")
	flags.BoolVar(&overlayFlags.overwrite, "overwrite", false, "replace the output file if it exists")
	_ = overlayCmd.MarkFlagRequired("out")
	overlayCmd.MarkFlagsMutuallyExclusive("pdf", "image-dir")
}

func overlayPDF(pdfPath, hocrPath string, cfg pdfocr.Config) ([]byte, error) {
	if hocrPath == "" {
		return nil, fmt.Errorf("--pdf requires --hocr")
	}
	doc, err := readHOCR(hocrPath)
	if err != nil {
		return nil, err
	}
	input, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input PDF: %w", err)
	}
	return pdfocr.ApplyOCR(input, doc, cfg)
}

func overlayImages(cmd *cobra.Command, args []string, imageDir, hocrPath string, cfg pdfocr.Config) ([]byte, error) {
	if cfg.Force {
		app.logger.Warn("--force only applies with --pdf, ignoring it")
	}

	paths := args
	if imageDir != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("give either --image-dir or image arguments")
		}
		var err error
		if paths, err = listImages(imageDir); err != nil {
			return nil, err
		}
		app.logger.Info("found page images", "count", len(paths), "dir", imageDir)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no page images given")
	}
	if slices.Contains(paths, "-") {
		return nil, fmt.Errorf("page images must be files")
	}

	var doc hocr.HOCR
	if hocrPath != "" {
		var err error
		if doc, err = readHOCR(hocrPath); err != nil {
			return nil, err
		}
	} else {
		docs, err := forEachImage(cmd, paths, (*tesseract.Client).ImageToHOCRDocument)
		if err != nil {
			return nil, err
		}
		doc = hocr.Merge(docs...)
		cfg.DPI = float64(app.settings.Options.DPI)
	}

	images := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", p, err)
		}
		images[i] = data
	}
	return pdfocr.AssembleWithOCR(doc, images, cfg)
}

func readHOCR(path string) (hocr.HOCR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hocr.HOCR{}, fmt.Errorf("failed to read hOCR file: %w", err)
	}
	doc, err := hocr.ParseHOCR(data)
	if err != nil {
		return hocr.HOCR{}, fmt.Errorf("failed to parse hOCR file %s: %w", path, err)
	}
	return doc, nil
}

// listImages returns the image files of dir sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing image directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && isImageFile(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}
