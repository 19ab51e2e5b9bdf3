package tesseract

import (
	"log/slog"
	"time"
)

// Client runs tesseract with a fixed binary, default timeout and output encoding.
// It holds no mutable state and may be shared between goroutines.
type Client struct {
	binary   string
	timeout  time.Duration
	encoding string
	logger   *slog.Logger
}

// New creates a Client from cfg. Zero fields fall back to DefaultConfig.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Encoding == "" {
		cfg.Encoding = def.Encoding
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		binary:   cfg.Binary,
		timeout:  cfg.Timeout,
		encoding: cfg.Encoding,
		logger:   cfg.Logger,
	}
}

// Binary returns the executable this client runs.
func (c *Client) Binary() string { return c.binary }

// withDefaults fills the per-call Timeout and Encoding from the client configuration.
func (c *Client) withDefaults(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = c.timeout
	}
	if opts.Encoding == "" {
		opts.Encoding = c.encoding
	}
	return opts
}
