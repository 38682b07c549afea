// Package flagyaml persists flag state as a YAML document.
//
// The registry core produces and consumes a flat argument-list form
// (alternating "-name", value tokens); this package is the document
// encoding around it, used to save effective flag values or propagate them
// to child processes.
package flagyaml

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/flagreg"
)

// Marshal serializes all of the registry's flags as a YAML sequence of
// argument-list tokens.
func Marshal(r *flagreg.Registry) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(r.ToArgumentList()); err != nil {
		return nil, fmt.Errorf("encoding flags: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding flags: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a YAML sequence of argument-list tokens and applies the
// values to the registry's flags. Tokens that match no defined flag are an
// error: a saved document should describe exactly the flags the loading
// process defines.
func Unmarshal(data []byte, r *flagreg.Registry) error {
	var tokens []string
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("parsing flag document: %w", err)
	}

	rest, err := r.Parse(tokens)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("flag document contains unrecognized tokens: %v", rest)
	}
	return nil
}

// Save writes the registry's flags to a YAML file.
func Save(path string, r *flagreg.Registry) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing flag file: %w", err)
	}
	return nil
}

// Load reads a YAML flag file and applies it to the registry.
func Load(path string, r *flagreg.Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading flag file: %w", err)
	}
	return Unmarshal(data, r)
}
