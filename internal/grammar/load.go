package grammar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads and parses a definition file, dispatching on its extension:
// .yaml/.yml or .cue. The result is parsed but not yet validated; callers
// decide between fail-fast (Table/System) and collect-all (Validate).
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q (want .yaml, .yml, or .cue)", filepath.Ext(path))
	}
}
