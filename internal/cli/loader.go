package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hmoreau/lindel/internal/grammar"
	"github.com/hmoreau/lindel/internal/lsystem"
)

// loadSystem loads a definition file, validates it fail-fast, and builds
// its generation-0 system. The returned name falls back to the file name
// when the definition does not set one.
func loadSystem(path string) (*lsystem.System[rune], string, error) {
	def, err := grammar.Load(path)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
	}

	sys, err := def.System()
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, fmt.Sprintf("invalid definition %s", path), err)
	}

	name := def.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sys, name, nil
}
