package tesseract

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvBinary   = "TESSERACT_CMD"
	EnvTimeout  = "TESSEXEC_TIMEOUT"
	EnvEncoding = "TESSEXEC_ENCODING"
)

// Config holds the process-wide settings of a Client.
// It is read once when the Client is created and never changed afterwards.
type Config struct {
	Binary   string        // Name or path of the tesseract executable
	Timeout  time.Duration // Deadline for calls whose Options carry no Timeout
	Encoding string        // Encoding of tesseract output for calls whose Options carry none
	Logger   *slog.Logger  // Logger for command lines and failures (nil = slog.Default())
}

// DefaultConfig returns a config that runs "tesseract" from PATH with a 30 second
// deadline and UTF-8 output.
func DefaultConfig() Config {
	return Config{
		Binary:   "tesseract",
		Timeout:  30 * time.Second,
		Encoding: "utf-8",
		Logger:   nil, // slog.Default()
	}
}

// ConfigFromEnv returns DefaultConfig overridden by TESSERACT_CMD, TESSEXEC_TIMEOUT and
// TESSEXEC_ENCODING. The timeout accepts a Go duration ("45s") or a number of seconds ("45").
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvBinary); v != "" {
		cfg.Binary = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		timeout, err := ParseTimeout(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		if _, err := lookupEncoding(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvEncoding, err)
		}
		cfg.Encoding = v
	}
	return cfg, nil
}

// ParseTimeout parses a positive timeout given either as a Go duration or as seconds.
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid timeout %q", s)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", s)
	}
	return d, nil
}
