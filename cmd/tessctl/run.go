package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/tessexec/pkg/tesseract"
)

var (
	runFormats string
	runOutDir  string
	runName    string
)

var runCmd = &cobra.Command{
	Use:   "run --formats LIST IMAGE...",
	Short: "Write several output formats with one tesseract run per image",
	Long: `Run tesseract once per image and write every requested format to --out-dir.
Files are named after the image (or --name for a single image) with the format's
extension: .txt, .hocr, .pdf, .tsv, .xml (ALTO).`,
	Example: "  tessctl run --formats txt,hocr,pdf --out-dir out/ scan.png",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formats, err := tesseract.ParseFileFormats(runFormats)
		if err != nil {
			return err
		}
		names, err := outputNames(args, runName)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(runOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		images, err := openImages(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		written := make([][]string, len(images))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(app.settings.Jobs)
		for i, img := range images {
			g.Go(func() error {
				data, err := imageBytes(img)
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				err = app.client.RunFunc(ctx, data, names[i], formats, app.settings.Options, func(files []string) error {
					for _, f := range files {
						dst := filepath.Join(runOutDir, filepath.Base(f))
						if err := copyFile(f, dst); err != nil {
							return err
						}
						written[i] = append(written[i], dst)
					}
					return nil
				})
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var files []string
		for _, w := range written {
			files = append(files, w...)
		}
		return printTo(cmd.OutOrStdout(), app.settings.Output, files)
	},
}

func init() {
	runCmd.Flags().StringVar(&runFormats, "formats", "txt", "output formats, comma or space separated: "+formatList())
	runCmd.Flags().StringVar(&runOutDir, "out-dir", ".", "directory for the output files")
	runCmd.Flags().StringVar(&runName, "name", "", "output base name (default: image file name)")
}

// outputNames returns the output base name of every image argument. Two images that
// would write to the same files are rejected.
func outputNames(args []string, name string) ([]string, error) {
	if name != "" && len(args) > 1 {
		return nil, fmt.Errorf("--name applies to a single image")
	}
	names := make([]string, len(args))
	seen := make(map[string]string, len(args))
	for i, arg := range args {
		names[i] = cmp.Or(name, baseName(arg))
		if prev, ok := seen[names[i]]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s.*, use separate runs", prev, arg, names[i])
		}
		seen[names[i]] = arg
	}
	return names, nil
}

// imageBytes loads a Path into memory, since multi-format runs stream the image.
func imageBytes(img tesseract.Image) (tesseract.Bytes, error) {
	switch v := img.(type) {
	case tesseract.Bytes:
		return v, nil
	case tesseract.Path:
		data, err := os.ReadFile(string(v))
		if err != nil {
			return nil, err
		}
		return tesseract.Bytes(data), nil
	default:
		return nil, fmt.Errorf("unsupported image %T", img)
	}
}

// baseName is the output name for an image argument: its file name without extension.
func baseName(arg string) string {
	if arg == "-" {
		return "stdin"
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatList() string {
	var names []string
	for _, f := range tesseract.Formats() {
		if f.WritesFile() {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, ", ")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
