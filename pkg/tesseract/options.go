package tesseract

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Defaults applied by DefaultOptions.
const (
	DefaultDPI      = 300
	DefaultPSM      = 3
	DefaultOEM      = 3
	DefaultLanguage = "eng"
)

// ConfigVar is one tesseract control parameter, passed as "-c Name=Value".
type ConfigVar struct {
	Name  string
	Value string
}

// Options controls a single tesseract invocation.
//
// PSM 0 is a real mode (OSD only), so the zero value is not a useful default:
// start from DefaultOptions and change what you need.
type Options struct {
	DPI          int           // Image resolution passed as --dpi, must be positive
	PSM          int           // Page segmentation mode, 0-13
	OEM          int           // OCR engine mode, 0-3
	Language     string        // Language tag such as "eng" or "eng+deu" (empty = tesseract default)
	UserWords    string        // Optional --user-words file
	UserPatterns string        // Optional --user-patterns file
	TessdataDir  string        // Optional --tessdata-dir directory
	Config       []ConfigVar   // Extra control parameters, in order
	Timeout      time.Duration // Deadline for this call (0 = Client default)
	Encoding     string        // Encoding of tesseract output (empty = Client default)
}

// DefaultOptions returns options for English text at 300 DPI with fully automatic
// page segmentation and the default engine.
func DefaultOptions() Options {
	return Options{
		DPI:      DefaultDPI,
		PSM:      DefaultPSM,
		OEM:      DefaultOEM,
		Language: DefaultLanguage,
	}
}

// Validate checks the discrete option domains and that every configured path exists.
// The checks run concurrently; the first failure is returned.
func (o Options) Validate() error {
	var g errgroup.Group
	g.Go(func() error { return ValidatePageSegMode(o.PSM) })
	g.Go(func() error { return ValidateEngineMode(o.OEM) })
	g.Go(func() error { return validateDPI(o.DPI) })
	if o.Language != "" {
		g.Go(func() error { return ValidateLanguage(o.Language) })
	}
	for _, path := range []string{o.TessdataDir, o.UserWords, o.UserPatterns} {
		if path != "" {
			g.Go(func() error { return ValidateFileExists(path) })
		}
	}
	for _, cv := range o.Config {
		g.Go(func() error { return validateConfigVar(cv) })
	}
	return g.Wait()
}

// ValidatePageSegMode fails with ErrInvalidPageSegMode unless v is in [0-13].
func ValidatePageSegMode(v int) error {
	if _, ok := PageSegModes[v]; !ok {
		return fmt.Errorf("%w: PSM value must be in the range [0-13], got: %d", ErrInvalidPageSegMode, v)
	}
	return nil
}

// ValidateEngineMode fails with ErrInvalidEngineMode unless v is in [0-3].
func ValidateEngineMode(v int) error {
	if _, ok := EngineModes[v]; !ok {
		return fmt.Errorf("%w: OEM value must be in the range [0-3], got: %d", ErrInvalidEngineMode, v)
	}
	return nil
}

// ValidateLanguage splits tag on "+" and fails with ErrInvalidLanguage naming the first
// component that is not a known language.
func ValidateLanguage(tag string) error {
	for _, code := range strings.Split(tag, "+") {
		if !knownLanguages[code] {
			return fmt.Errorf("%w: '%s' language is not among the supported by Tesseract", ErrInvalidLanguage, code)
		}
	}
	return nil
}

// ValidateFileExists fails with ErrFileNotFound if path does not name an existing
// filesystem entry.
func ValidateFileExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) || path == "" {
			return fmt.Errorf("%w: '%s'", ErrFileNotFound, path)
		}
		return fmt.Errorf("cannot access '%s': %w", path, err)
	}
	return nil
}

func validateDPI(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: DPI must be positive, got: %d", ErrInvalidDPI, v)
	}
	return nil
}

func validateConfigVar(cv ConfigVar) error {
	if cv.Name == "" || strings.ContainsAny(cv.Name, "= \t\n") {
		return fmt.Errorf("invalid config variable name %q", cv.Name)
	}
	return nil
}
