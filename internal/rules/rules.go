// Package rules implements the production rule table of an L-system.
//
// A Table maps each symbol to the sequence that replaces it in the next
// generation, plus an optional turtle command used during interpretation.
// Tables are built once through a Builder and frozen: after Freeze there is
// no writer, so a Table is safe for unsynchronized concurrent reads and is
// shared by reference across every generation derived from it.
package rules

import "github.com/hmoreau/lindel/internal/turtle"

// UnmappedPolicy controls what a rewriter does with a symbol that has no
// production rule.
type UnmappedPolicy uint8

const (
	// KeepUnmapped rewrites an unmapped symbol to itself (identity).
	// This is the default and preserves unknown symbols across generations.
	KeepUnmapped UnmappedPolicy = iota
	// DropUnmapped removes unmapped symbols from the output entirely,
	// shrinking the grammar instead of preserving it. The two policies
	// produce materially different grammars; the choice is explicit and
	// fixed per table, never mixed.
	DropUnmapped
)

// Table is a frozen, read-only production rule table.
//
// INVARIANT: biggestExpansion == max(1, max production length over all
// rules). It is maintained incrementally on every Builder.Set and never
// recomputed by rescanning.
type Table[S comparable] struct {
	productions map[S][]S
	tags        map[S]turtle.Command
	unmapped    UnmappedPolicy

	// Monotone maximum: replacing a rule with a shorter production keeps
	// the old bound. The bound stays a safe (merely looser) allocation
	// estimate either way.
	biggestExpansion int
}

// Production returns the replacement sequence for symbol, or ok=false if no
// rule exists. Callers must not modify the returned slice.
func (t *Table[S]) Production(symbol S) (production []S, ok bool) {
	production, ok = t.productions[symbol]
	return production, ok
}

// Tag returns the turtle command associated with symbol, or ok=false if the
// symbol carries no interpretation. Tags and productions are independent: a
// symbol may have either, both, or neither.
func (t *Table[S]) Tag(symbol S) (tag turtle.Command, ok bool) {
	tag, ok = t.tags[symbol]
	return tag, ok
}

// BiggestExpansion returns the worst-case per-symbol growth factor, used by
// rewriters to bound output allocation. It is at least 1: a symbol without a
// rule rewrites to at most itself.
func (t *Table[S]) BiggestExpansion() int {
	return t.biggestExpansion
}

// Unmapped returns the policy applied to symbols without a production rule.
func (t *Table[S]) Unmapped() UnmappedPolicy {
	return t.unmapped
}

// Len returns the number of production rules in the table.
func (t *Table[S]) Len() int {
	return len(t.productions)
}

// Builder accumulates production rules and tags, then freezes them into an
// immutable Table. A Builder is not safe for concurrent use; the Table it
// produces is.
type Builder[S comparable] struct {
	productions map[S][]S
	tags        map[S]turtle.Command
	unmapped    UnmappedPolicy
	biggest     int
	frozen      bool
}

// NewBuilder creates an empty Builder with the identity policy for
// unmapped symbols.
func NewBuilder[S comparable]() *Builder[S] {
	return &Builder[S]{
		productions: make(map[S][]S),
		tags:        make(map[S]turtle.Command),
	}
}

// WithUnmapped sets the unmapped-symbol policy and returns the builder.
func (b *Builder[S]) WithUnmapped(policy UnmappedPolicy) *Builder[S] {
	b.unmapped = policy
	return b
}

// Set adds or replaces the production rule for symbol and records its tag.
// The production is copied so later mutation of the argument cannot reach
// the frozen table. An empty (non-nil) production is legal and erases the
// symbol from the next generation.
//
// Reports whether an existing rule was replaced.
func (b *Builder[S]) Set(symbol S, production []S, tag turtle.Command) bool {
	p := make([]S, len(production))
	copy(p, production)

	_, replaced := b.productions[symbol]
	b.productions[symbol] = p
	if tag != turtle.None {
		b.tags[symbol] = tag
	}
	if len(p) > b.biggest {
		b.biggest = len(p)
	}
	return replaced
}

// Tag records an interpretation for symbol without giving it a production
// rule. Under the identity policy such a symbol survives rewriting unchanged
// while still emitting its command during interpretation.
func (b *Builder[S]) Tag(symbol S, tag turtle.Command) {
	if tag != turtle.None {
		b.tags[symbol] = tag
	}
}

// Freeze returns the immutable Table and invalidates the builder. Further
// Set calls after Freeze panic: construction-then-freeze is the invariant
// that makes lock-free concurrent reads sound.
func (b *Builder[S]) Freeze() *Table[S] {
	if b.frozen {
		panic("rules: Freeze called twice")
	}
	b.frozen = true

	expansion := b.biggest
	if expansion < 1 {
		expansion = 1
	}
	t := &Table[S]{
		productions:      b.productions,
		tags:             b.tags,
		unmapped:         b.unmapped,
		biggestExpansion: expansion,
	}
	// Drop the builder's references so the table's maps have no writer.
	b.productions = nil
	b.tags = nil
	return t
}
