package grammar

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML definition. Unknown fields are rejected so typos
// in rule attributes fail loudly instead of silently producing a different
// grammar.
func ParseYAML(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Definition
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return nil, &CompileError{Message: "empty definition"}
		}
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	return &d, nil
}
