package grammar

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// CompileError reports a problem in a definition file. Pos is set when the
// source format can attribute the error to a position (CUE can, YAML
// reports the field path only).
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
