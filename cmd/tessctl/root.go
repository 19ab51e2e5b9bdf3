package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gardar/tessexec/pkg/tesseract"
)

var cfgFile string

// app is the state shared by all commands, built before any command runs.
var app struct {
	settings *settings
	client   *tesseract.Client
	logger   *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "tessctl",
	Short: "Run tesseract OCR with validated options and structured output",
	Long: `tessctl runs the tesseract OCR engine on images and prints the result as
text, hOCR, ALTO, TSV or PDF, or as parsed YAML/JSON records.

Every tesseract process runs under a deadline and is killed when it expires or
when tessctl is interrupted.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd.Flags(), cfgFile)
		if err != nil {
			return err
		}
		app.settings = s
		app.logger = s.logger()
		app.client = s.client(app.logger)
		if s.configSource != "" {
			app.logger.Debug("using config file", "path", s.configSource)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tessexec.yaml or ~/.config/tessexec/tessexec.yaml)")
	registerFlags(rootCmd.PersistentFlags())

	rootCmd.SetVersionTemplate("tessctl {{.Version}}\n")

	rootCmd.AddCommand(
		textCmd, hocrCmd, altoCmd, tsvCmd, pdfCmd,
		boxesCmd, dataCmd, osdCmd, confidenceCmd, deskewCmd,
		runCmd, langsCmd, versionCmd, paramsCmd, overlayCmd, watchCmd,
	)
}

// registerFlags adds the settings flags shared by all commands.
func registerFlags(flags *pflag.FlagSet) {
	defaults := tesseract.DefaultOptions()

	flags.StringP("output", "o", "yaml", "output format for structured results: yaml or json")
	flags.BoolP("verbose", "v", false, "log tesseract command lines and timings")
	flags.String("binary", "", "tesseract executable (default: $TESSERACT_CMD or tesseract)")
	flags.String("timeout", "", "deadline per tesseract process, e.g. 45s or 45 (default 30s)")
	flags.String("encoding", "", "encoding of tesseract output (default utf-8)")
	flags.Int("jobs", 4, "images processed concurrently")

	flags.StringP("lang", "l", defaults.Language, "language tag, e.g. eng or eng+deu")
	flags.Int("psm", defaults.PSM, "page segmentation mode (0-13)")
	flags.Int("oem", defaults.OEM, "OCR engine mode (0-3)")
	flags.Int("dpi", defaults.DPI, "image resolution")
	flags.String("tessdata-dir", "", "directory holding traineddata files")
	flags.String("user-words", "", "user words file")
	flags.String("user-patterns", "", "user patterns file")
	flags.StringArrayP("var", "c", nil, "tesseract control parameter as name=value (repeatable)")
}
