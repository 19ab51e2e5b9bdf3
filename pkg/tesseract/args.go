package tesseract

import (
	"fmt"
	"strconv"
)

// Sentinels tesseract understands in place of the input file and the output base.
const (
	StdinSentinel  = "stdin"
	StdoutSentinel = "stdout"
)

// BuildArgs returns the argument vector for one tesseract invocation, without the
// binary name. The layout is always
//
//	<input> <output> [--tessdata-dir D] [--user-words W] [--user-patterns P]
//	--dpi N --psm N --oem N [-l LANG] [-c key=value]... <format>...
//
// input is StdinSentinel or an image path, output is StdoutSentinel or an output base.
// Every flag-style option precedes the trailing format tokens: tesseract reads anything
// after the first configfile token as another configfile, so the order is load-bearing.
// Options are validated first; no tokens are produced for invalid options.
func BuildArgs(input, output string, opts Options, formats ...FileFormat) ([]string, error) {
	trailing := make([]string, 0, len(formats))
	for _, f := range formats {
		if !f.valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(f))
		}
		trailing = append(trailing, f.String())
	}
	return buildArgs(input, output, opts, trailing...)
}

// buildArgs is BuildArgs with raw trailing configfile tokens, for invocations such as
// "batch.nochop makebox" that have no FileFormat.
func buildArgs(input, output string, opts Options, configFiles ...string) ([]string, error) {
	if input == "" || output == "" {
		return nil, fmt.Errorf("tesseract needs both an input and an output argument")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	args := make([]string, 0, 12+2*len(opts.Config)+len(configFiles))
	args = append(args, input, output)

	// Optional path flags sit between the positional pair and the global options block
	if opts.TessdataDir != "" {
		args = append(args, "--tessdata-dir", opts.TessdataDir)
	}
	if opts.UserWords != "" {
		args = append(args, "--user-words", opts.UserWords)
	}
	if opts.UserPatterns != "" {
		args = append(args, "--user-patterns", opts.UserPatterns)
	}

	args = append(args,
		"--dpi", strconv.Itoa(opts.DPI),
		"--psm", strconv.Itoa(opts.PSM),
		"--oem", strconv.Itoa(opts.OEM),
	)

	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	for _, cv := range opts.Config {
		args = append(args, "-c", cv.Name+"="+cv.Value)
	}

	return append(args, configFiles...), nil
}
