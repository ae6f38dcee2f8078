package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/problemreg/internal/model"
)

//go:embed data/problems.yaml
var embeddedCatalog []byte

// document is the on-disk shape of a catalog file.
type document struct {
	Problems []model.Problem `yaml:"problems"`
}

// Load builds a Registry from the embedded catalog.
func Load() (*Registry, error) {
	problems, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return NewRegistry(problems, model.DefaultTaskTypes())
}

// LoadFile builds a Registry from a catalog file with the same layout as
// the embedded one.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided catalog path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	problems, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return NewRegistry(problems, model.DefaultTaskTypes())
}

// Parse decodes catalog YAML into problems in declaration order.
// Unknown keys are rejected so that typos in field names do not silently
// produce empty values.
func Parse(data []byte) ([]model.Problem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc.Problems, nil
}

// Embedded returns a copy of the raw embedded catalog.
func Embedded() []byte {
	return bytes.Clone(embeddedCatalog)
}
