package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/okra-platform/abiparse/internal/schema"
)

// Parse extracts the ABI of a schema file and writes it to the configured output, or stdout
func (c *Controller) Parse(ctx context.Context, schemaPath string) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	if schemaPath == "" {
		schemaPath = p.config.Schema
	}

	format, err := abi.ParseFormat(p.config.Format)
	if err != nil {
		return err
	}

	result, err := parseFile(schemaPath)
	if err != nil {
		return err
	}

	return c.writeAbi(result, format, p.config.Output)
}

func parseFile(path string) (*abi.Abi, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	result, err := schema.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return result, nil
}

func (c *Controller) writeAbi(result *abi.Abi, format abi.Format, output string) error {
	if output == "" {
		return abi.Encode(c.stdout(), result, format)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := abi.Encode(f, result, format); err != nil {
		return err
	}

	c.Logger.Info().
		Str("output", output).
		Str("format", string(format)).
		Int("objects", len(result.Objects)).
		Int("enums", len(result.Enums)).
		Int("functions", len(result.Functions)).
		Msg("abi written")

	return f.Close()
}
