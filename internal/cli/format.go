package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	return f == formatText || f == formatJSON || f == formatYAML
}

// renderAs writes v as JSON or YAML for machine consumption.
func renderAs(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}
	return usageErrorf("invalid output format %q (expected text, json or yaml)", format)
}
