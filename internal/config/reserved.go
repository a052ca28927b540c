package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// namesDocument is the on-disk shape of an overlay for ReservedConstants
// and RawInstructions, so the compiler and downstream code generation
// can be kept in sync from one YAML file instead of two hard-coded
// Go tables drifting apart.
type namesDocument struct {
	ReservedConstants []string          `yaml:"reserved_constants"`
	RawInstructions   map[string]string `yaml:"raw_instructions"`
}

// LoadNameOverlay reads a YAML document at path and merges its entries
// into ReservedConstants and RawInstructions. Entries in the file
// extend the built-in tables; they never remove an existing entry.
func LoadNameOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading name overlay: %w", err)
	}
	var doc namesDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: parsing name overlay: %w", err)
	}
	for _, name := range doc.ReservedConstants {
		ReservedConstants[name] = true
	}
	for opcode, prototype := range doc.RawInstructions {
		RawInstructions[opcode] = prototype
	}
	return nil
}
