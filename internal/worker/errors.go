package worker

import (
	"errors"
	"fmt"
)

// ProtocolError reports a command issued in an invalid actor state, such as
// iterating before any generation was loaded.
type ProtocolError struct {
	// Command is the offending command.
	Command CommandType

	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// IsProtocolError reports whether err is a protocol violation.
// Uses errors.As to handle wrapped errors.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

func newNothingLoadedError(cmd CommandType) *ProtocolError {
	return &ProtocolError{Command: cmd, Message: "nothing loaded"}
}
