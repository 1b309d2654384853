package rules

import "github.com/hmoreau/lindel/internal/turtle"

// SetString sets a rune production rule directly from a string.
// Convenience for character-based L-systems.
func SetString(b *Builder[rune], symbol rune, production string, tag turtle.Command) bool {
	return b.Set(symbol, []rune(production), tag)
}

// SetBytes sets a byte production rule from a byte slice.
// Convenience for ASCII-only L-systems.
func SetBytes(b *Builder[byte], symbol byte, production []byte, tag turtle.Command) bool {
	return b.Set(symbol, production, tag)
}
