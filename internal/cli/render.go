package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/soyeahso/workflow-agents/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatJSON, formatYAML)
}

// render writes v in the requested format followed by a newline.
func render(w io.Writer, v any, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// printValue outputs a single field value: scalars as plain text, null as
// "null", collections in the requested format.
func printValue(w io.Writer, v any, format string) error {
	switch val := v.(type) {
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	case string:
		_, err := fmt.Fprintln(w, val)
		return err
	case map[string]any, domain.Env:
		return render(w, val, format)
	default:
		_, err := fmt.Fprintln(w, val)
		return err
	}
}
