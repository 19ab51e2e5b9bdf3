package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printTo writes data to w as YAML or JSON.
func printTo(w io.Writer, format string, data any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// imageResult pairs a result with the image it came from when a command was given
// several images.
type imageResult struct {
	Image  string `json:"image" yaml:"image"`
	Result any    `json:"result" yaml:"result"`
}

// printResults prints a single result as is and several results as a list of
// imageResult.
func printResults(w io.Writer, format string, names []string, results []any) error {
	if len(results) == 1 {
		return printTo(w, format, results[0])
	}
	out := make([]imageResult, len(results))
	for i, r := range results {
		out[i] = imageResult{Image: names[i], Result: r}
	}
	return printTo(w, format, out)
}
