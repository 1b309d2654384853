// Package interpret translates a finished L-system generation into an
// ordered list of turtle drawing instructions.
//
// Interpretation is a stateless per-symbol lookup against the generation's
// rule table tags: tagged symbols emit their command, untagged symbols and
// symbols tagged with the no-op command emit nothing. Suppressing no-ops
// keeps the output proportional to the drawable content rather than the
// full state.
package interpret

import (
	"github.com/hmoreau/lindel/internal/lsystem"
	"github.com/hmoreau/lindel/internal/turtle"
)

// Interpreter translates a generation into drawing instructions.
type Interpreter[S comparable] interface {
	Interpret(sys *lsystem.System[S]) ([]turtle.Command, error)
}

// Simple is the single-threaded interpreter. Like the sequential rewriter
// it can occupy its calling goroutine for a while on large states.
type Simple[S comparable] struct{}

// NewSimple creates a simple interpreter.
func NewSimple[S comparable]() Simple[S] {
	return Simple[S]{}
}

// Interpret walks the state in order and collects the tagged commands.
func (Simple[S]) Interpret(sys *lsystem.System[S]) ([]turtle.Command, error) {
	table := sys.Rules()
	commands := make([]turtle.Command, 0, sys.Len())
	for _, s := range sys.State() {
		cmd, ok := table.Tag(s)
		if !ok || cmd.Op == turtle.OpNone {
			continue
		}
		commands = append(commands, cmd)
	}
	// Release the slack from sizing to the full state length.
	if cap(commands)-len(commands) > cap(commands)/4 {
		trimmed := make([]turtle.Command, len(commands))
		copy(trimmed, commands)
		commands = trimmed
	}
	return commands, nil
}
