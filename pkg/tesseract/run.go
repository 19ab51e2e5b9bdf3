package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RunResult is the set of files produced by one multi-format run. The files live in a
// scratch directory owned by the result; Close removes it together with every file.
type RunResult struct {
	Dir   string   // Scratch directory holding the files
	Base  string   // Output base shared by all files (Dir joined with the name)
	Files []string // One path per requested format, in request order
}

// Close removes the scratch directory. It is safe to call more than once.
func (r *RunResult) Close() error {
	if r == nil || r.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(r.Dir); err != nil {
		return fmt.Errorf("failed to remove scratch directory %s: %w", r.Dir, err)
	}
	return nil
}

// Run executes tesseract once and has it write every requested format to
// <scratch>/<name><extension>. Only in-memory images are accepted. The caller owns the
// returned result and must Close it; on error nothing is left on disk. An empty name
// is replaced with a random one.
func (c *Client) Run(ctx context.Context, img Image, name string, formats []FileFormat, opts Options) (*RunResult, error) {
	data, ok := img.(Bytes)
	if !ok || data == nil {
		return nil, fmt.Errorf("%w: multi-format runs take tesseract.Bytes, got %T", ErrUnsupportedInput, img)
	}
	if err := validateRunFormats(formats); err != nil {
		return nil, err
	}
	name, err := outputName(name)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "tessexec-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	res := &RunResult{Dir: dir, Base: filepath.Join(dir, name)}

	if err := c.runInto(ctx, data, res, formats, opts); err != nil {
		if cerr := res.Close(); cerr != nil {
			c.logger.Warn("scratch directory left behind", "dir", dir, "error", cerr)
		}
		return nil, err
	}
	return res, nil
}

// RunFunc is the scoped form of Run: fn receives the produced file paths and the scratch
// directory is removed when fn returns, whatever the outcome.
func (c *Client) RunFunc(ctx context.Context, img Image, name string, formats []FileFormat, opts Options, fn func(files []string) error) (err error) {
	res, err := c.Run(ctx, img, name, formats, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, res.Close())
	}()
	return fn(res.Files)
}

func (c *Client) runInto(ctx context.Context, data Bytes, res *RunResult, formats []FileFormat, opts Options) error {
	opts = c.withDefaults(opts)
	if _, err := lookupEncoding(opts.Encoding); err != nil {
		return err
	}
	args, err := BuildArgs(StdinSentinel, res.Base, opts, formats...)
	if err != nil {
		return err
	}
	if _, err := c.execute(ctx, args, data, opts); err != nil {
		return err
	}

	res.Files = make([]string, len(formats))
	for i, f := range formats {
		res.Files[i] = res.Base + f.Extension()
	}
	return nil
}

func validateRunFormats(formats []FileFormat) error {
	if len(formats) == 0 {
		return fmt.Errorf("%w: at least one output format is required", ErrInvalidFormat)
	}
	seen := make(map[FileFormat]bool, len(formats))
	for _, f := range formats {
		if !f.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidFormat, int(f))
		}
		if !f.WritesFile() {
			return fmt.Errorf("%w: %s output is only printed to stdout", ErrInvalidFormat, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: %s requested more than once", ErrInvalidFormat, f)
		}
		seen[f] = true
	}
	return nil
}

// outputName returns a usable output base name, generating one when name is empty.
func outputName(name string) (string, error) {
	if name == "" {
		return uuid.NewString(), nil
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("output name %q must be a plain file name", name)
	}
	return name, nil
}
