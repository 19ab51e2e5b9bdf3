package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the languages tesseract has installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		langs, err := app.client.Languages(cmd.Context(), app.settings.Options.TessdataDir)
		if err != nil {
			return err
		}
		return printTo(cmd.OutOrStdout(), app.settings.Output, langs)
	},
}

type versionInfo struct {
	Tesseract string `json:"tesseract" yaml:"tesseract"`
	Tessctl   string `json:"tessctl" yaml:"tessctl"`
	Go        string `json:"go" yaml:"go"`
	Binary    string `json:"binary" yaml:"binary"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tesseract and tessctl versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := app.client.Version(cmd.Context())
		if err != nil {
			return err
		}
		return printTo(cmd.OutOrStdout(), app.settings.Output, versionInfo{
			Tesseract: v,
			Tessctl:   version,
			Go:        runtime.Version(),
			Binary:    app.client.Binary(),
		})
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List tesseract control parameters with their current values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := app.client.Parameters(cmd.Context())
		if err != nil {
			return err
		}
		return printTo(cmd.OutOrStdout(), app.settings.Output, params)
	},
}
