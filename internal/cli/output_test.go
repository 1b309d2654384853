package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmoreau/lindel/internal/turtle"
)

func TestFormatLength_GroupsDigits(t *testing.T) {
	assert.Equal(t, "34", formatLength(34))
	assert.Equal(t, "1,234,567", formatLength(1_234_567))
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	err := WrapExitError(ExitFailure, "step failed", inner)
	assert.Equal(t, "step failed: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	plain := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, "bad flag", plain.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(plain))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("untyped")),
		"non-exit errors default to general failure")
}

func TestFormatInstructions(t *testing.T) {
	var buf bytes.Buffer
	formatInstructions(&buf, []turtle.Command{turtle.Advance(10), turtle.PushState})
	assert.Equal(t, "Advance(10)\nPushState\n", buf.String())
}

func TestOutputFormatter_JSONError(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Error("bad definition", []string{"axiom is required"}))
	assert.Contains(t, buf.String(), `"status":"error"`)
	assert.Contains(t, buf.String(), "axiom is required")
}
