package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gardar/tessexec/pkg/tesseract"
)

// settings is the merged configuration of one tessctl invocation.
type settings struct {
	Binary       string
	Timeout      time.Duration
	Encoding     string
	Output       string
	Verbose      bool
	Jobs         int
	Options      tesseract.Options
	configSource string
}

// loadSettings merges, from lowest to highest precedence, the library defaults and
// TESSERACT_CMD, the YAML config file, TESSEXEC_* variables (including those from a
// .env file) and the command-line flags.
func loadSettings(flags *pflag.FlagSet, cfgFile string) (*settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	base, err := tesseract.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("binary", base.Binary)
	v.SetDefault("timeout", base.Timeout.String())
	v.SetDefault("encoding", base.Encoding)

	v.SetEnvPrefix("TESSEXEC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("tessexec")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tessexec")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	timeout, err := tesseract.ParseTimeout(v.GetString("timeout"))
	if err != nil {
		return nil, err
	}
	pairs := v.GetStringSlice("var")
	if f := flags.Lookup("var"); f != nil && f.Changed {
		// viper re-splits flag arrays on commas, which values may contain
		if pairs, err = flags.GetStringArray("var"); err != nil {
			return nil, err
		}
	}
	vars, err := parseConfigVars(pairs)
	if err != nil {
		return nil, err
	}

	s := &settings{
		Binary:       v.GetString("binary"),
		Timeout:      timeout,
		Encoding:     v.GetString("encoding"),
		Output:       v.GetString("output"),
		Verbose:      v.GetBool("verbose"),
		Jobs:         max(v.GetInt("jobs"), 1),
		configSource: v.ConfigFileUsed(),
		Options: tesseract.Options{
			DPI:          v.GetInt("dpi"),
			PSM:          v.GetInt("psm"),
			OEM:          v.GetInt("oem"),
			Language:     v.GetString("lang"),
			TessdataDir:  v.GetString("tessdata-dir"),
			UserWords:    v.GetString("user-words"),
			UserPatterns: v.GetString("user-patterns"),
			Config:       vars,
		},
	}
	if s.Output != "yaml" && s.Output != "json" {
		return nil, fmt.Errorf("unknown output format %q, use yaml or json", s.Output)
	}
	return s, nil
}

// parseConfigVars parses "name=value" pairs given with --var.
func parseConfigVars(pairs []string) ([]tesseract.ConfigVar, error) {
	vars := make([]tesseract.ConfigVar, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", pair)
		}
		vars = append(vars, tesseract.ConfigVar{Name: name, Value: value})
	}
	return vars, nil
}

func (s *settings) logger() *slog.Logger {
	level := slog.LevelInfo
	if s.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (s *settings) client(logger *slog.Logger) *tesseract.Client {
	return tesseract.New(tesseract.Config{
		Binary:   s.Binary,
		Timeout:  s.Timeout,
		Encoding: s.Encoding,
		Logger:   logger,
	})
}
