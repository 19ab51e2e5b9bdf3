package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/tessexec/pkg/tesseract"
)

// imageExts are the file extensions tessctl treats as page images (lowercase, without '.').
var imageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tif":  {},
	"tiff": {},
	"bmp":  {},
	"gif":  {},
	"webp": {},
	"pnm":  {},
}

func isImageFile(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := imageExts[ext]
	return ok
}

var watchFlags struct {
	outDir   string
	initial  bool
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Recognize every image written to a directory",
	Long: `Watch DIR and write the plain text of every image created or rewritten in it
to --out-dir as <name>.txt. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(watchFlags.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		opts := watchOptions{
			Debounce: watchFlags.debounce,
			Jobs:     app.settings.Jobs,
			Initial:  watchFlags.initial,
			Logger:   app.logger,
		}
		return watchDir(cmd.Context(), args[0], opts, func(ctx context.Context, path string) error {
			return recognizeToFile(ctx, path, watchFlags.outDir)
		})
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.outDir, "out-dir", ".", "directory for the text files")
	watchCmd.Flags().BoolVar(&watchFlags.initial, "initial", false, "also recognize the images already in DIR")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 500*time.Millisecond, "quiet period before a changed file is read")
}

// watchOptions controls watchDir.
type watchOptions struct {
	Debounce time.Duration // quiet period before a changed file is handed on
	Jobs     int           // handlers running at once
	Initial  bool          // also handle the images already in the directory
	Logger   *slog.Logger
}

// pending is a debounced file. gen identifies the timer currently armed for it, so a
// timer that fired before being superseded is ignored.
type pending struct {
	timer *time.Timer
	gen   int
}

type fired struct {
	path string
	gen  int
}

// watchDir calls handle for every image file created or written in dir, once the file
// has been quiet for the debounce period. Handlers run on opts.Jobs workers and their
// errors are logged. It returns when ctx is done or the watcher closes.
func watchDir(ctx context.Context, dir string, opts watchOptions, handle func(context.Context, string) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log := opts.Logger.With("dir", dir)
	log.Info("watching for images")

	queue := make(chan string)
	var g errgroup.Group
	for range max(opts.Jobs, 1) {
		g.Go(func() error {
			for path := range queue {
				if err := handle(ctx, path); err != nil {
					log.Error("recognition failed", "path", path, "error", err)
				}
			}
			return nil
		})
	}

	// backlog holds files ready for a worker; the loop never blocks on a busy pool
	var backlog []string
	if opts.Initial {
		if backlog, err = listImages(dir); err != nil {
			close(queue)
			_ = g.Wait()
			return err
		}
	}

	done := make(chan struct{})
	ready := make(chan fired)
	timers := map[string]pending{}
	defer func() {
		close(done)
		for _, p := range timers {
			p.timer.Stop()
		}
		close(queue)
		_ = g.Wait()
	}()

	gen := 0
	for {
		var next chan<- string
		var head string
		if len(backlog) > 0 {
			next, head = queue, backlog[0]
		}

		select {
		case <-ctx.Done():
			log.Info("stopping watch, waiting for running recognitions")
			return nil
		case next <- head:
			backlog = backlog[1:]
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isImageFile(e.Name) || !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) {
				continue
			}
			if p, ok := timers[e.Name]; ok {
				p.timer.Stop()
			}
			gen++
			f := fired{path: e.Name, gen: gen}
			timers[e.Name] = pending{
				gen: gen,
				timer: time.AfterFunc(opts.Debounce, func() {
					select {
					case ready <- f:
					case <-done:
					}
				}),
			}
		case f := <-ready:
			if p, ok := timers[f.path]; !ok || p.gen != f.gen {
				continue
			}
			delete(timers, f.path)
			backlog = append(backlog, f.path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// recognizeToFile writes the plain text of the image at path to outDir/<name>.txt.
func recognizeToFile(ctx context.Context, path, outDir string) error {
	text, err := app.client.ImageToString(ctx, tesseract.Path(path), app.settings.Options)
	if err != nil {
		return err
	}
	dst := filepath.Join(outDir, baseName(path)+tesseract.FormatText.Extension())
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return err
	}
	app.logger.Info("recognized", "image", path, "text", dst)
	return nil
}
