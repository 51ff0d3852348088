package abi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format selects the ABI encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats returns the supported encodings
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMsgpack}
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", name)
}

// Encode writes a in the given format. The msgpack form is the binary "wrap.info" layout
// and shares the JSON field names.
func Encode(w io.Writer, a *Abi, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode msgpack: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unsupported format: %s", format)
}
