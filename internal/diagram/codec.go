package diagram

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes d as YAML
func Encode(w io.Writer, d *Diagram) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML diagram and validates it
func Decode(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}
	if d.DatabaseType == "" {
		d.DatabaseType = Generic
	}
	if !d.DatabaseType.Valid() {
		return nil, fmt.Errorf("decode diagram: unknown database type %q", d.DatabaseType)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Marshal is Encode into a byte slice
func Marshal(d *Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
