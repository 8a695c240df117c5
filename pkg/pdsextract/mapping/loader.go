package mapping

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSheetName is used when a mapping does not name a default sheet.
const DefaultSheetName = "C1"

//go:embed pds212.yaml
var defaultMapping []byte

// LoadFile loads and compiles a YAML mapping file from the given path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses and compiles YAML mapping data.
func Parse(data []byte) (*Schema, error) {
	var raw rawSchema

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&raw)

	return compile(&raw)
}

// Default returns the embedded CS Form 212 (2017 revision) mapping.
func Default() (*Schema, error) {
	return Parse(defaultMapping)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(raw *rawSchema) {
	if raw.DefaultSheet == "" {
		raw.DefaultSheet = DefaultSheetName
	}
}
