package tesseract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrInvalidPageSegMode = errors.New("invalid page segmentation mode")
	ErrInvalidEngineMode  = errors.New("invalid OCR engine mode")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidDPI         = errors.New("invalid DPI")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrFileNotFound       = errors.New("no such file")
	ErrUnsupportedInput   = errors.New("unsupported image input")

	ErrSpawn   = errors.New("tesseract could not be started")
	ErrRuntime = errors.New("tesseract process failed")
	ErrTimeout = errors.New("tesseract process timeout")
	ErrParse   = errors.New("unexpected tesseract output")
)

// SpawnError reports that the tesseract binary could not be found or started.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("tesseract binary %q could not be started: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() []error { return []error{ErrSpawn, e.Err} }

// RuntimeError reports a tesseract process that exited with a nonzero status.
// Stderr holds the decoded diagnostic output.
type RuntimeError struct {
	ExitCode int
	Stderr   string
}

func (e *RuntimeError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("tesseract process failed (exit status %d)", e.ExitCode)
	}
	return fmt.Sprintf("tesseract process failed (exit status %d): %s", e.ExitCode, msg)
}

func (e *RuntimeError) Is(target error) bool { return target == ErrRuntime }

// TimeoutError reports a tesseract process that was killed because its deadline expired.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Timeout <= 0 {
		return "tesseract process timeout"
	}
	return fmt.Sprintf("tesseract process timeout after %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout || target == context.DeadlineExceeded
}

// ParseError reports tesseract output that does not have the shape a parser expects.
// Line is 1-based and zero when the error is not tied to a single line.
type ParseError struct {
	Parser string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse %s output", e.Parser)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " (%q)", e.Text)
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
