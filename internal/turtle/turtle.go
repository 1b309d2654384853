// Package turtle defines the drawing instructions an interpreted L-system
// state is translated into. Only 2D turtle graphics are modeled.
package turtle

import (
	"fmt"
	"strconv"
)

// Op identifies the kind of a turtle instruction.
type Op uint8

const (
	// OpNone is the do-nothing instruction. Symbols tagged with it are
	// suppressed entirely during interpretation to bound output size.
	OpNone Op = iota
	// OpAdvance moves the turtle by a distance (forward if positive,
	// backward otherwise).
	OpAdvance
	// OpRotate turns the turtle by an angle in degrees.
	OpRotate
	// OpPush saves the current turtle state (position and heading).
	OpPush
	// OpPop restores the most recently saved turtle state.
	OpPop
)

// Command is a single turtle instruction. Amount carries the distance for
// OpAdvance and the angle for OpRotate; it is zero for the other ops.
//
// Command is a small value type, copied freely and compared with ==.
type Command struct {
	Op     Op
	Amount float64
}

// None is the suppressed do-nothing command (useful for text-only systems
// where some symbols carry no drawing meaning).
var None = Command{Op: OpNone}

// PushState saves the turtle state to the stack.
var PushState = Command{Op: OpPush}

// PopState restores the last saved turtle state.
var PopState = Command{Op: OpPop}

// Advance builds an advance-by-distance command.
func Advance(distance float64) Command {
	return Command{Op: OpAdvance, Amount: distance}
}

// Rotate builds a rotate-by-angle command, in degrees.
func Rotate(angle float64) Command {
	return Command{Op: OpRotate, Amount: angle}
}

// String renders the command for logs and test output.
func (c Command) String() string {
	switch c.Op {
	case OpNone:
		return "None"
	case OpAdvance:
		return "Advance(" + strconv.FormatFloat(c.Amount, 'g', -1, 64) + ")"
	case OpRotate:
		return "Rotate(" + strconv.FormatFloat(c.Amount, 'g', -1, 64) + ")"
	case OpPush:
		return "PushState"
	case OpPop:
		return "PopState"
	default:
		return fmt.Sprintf("Command(op=%d)", c.Op)
	}
}
