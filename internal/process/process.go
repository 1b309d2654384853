// Package process implements the rewrite engines that evolve an L-system
// from one generation to the next.
//
// Two engines exist: Sequential, a single-threaded rewriter, and Chunked,
// which partitions the state into ordered chunks and rewrites them across a
// bounded worker pool. For any rule table, state, and valid configuration
// the two produce identical output; that equivalence is the central
// correctness property of the package.
//
// Allocation under combinatorial growth is bounded up front: every rewrite
// pre-sizes its output to len(state) * BiggestExpansion, computed with
// explicit overflow detection. A computation that cannot be represented in
// the platform int fails with a SIZE_OVERFLOW error instead of wrapping.
package process

import (
	"math"
	"math/bits"

	"github.com/hmoreau/lindel/internal/lsystem"
	"github.com/hmoreau/lindel/internal/rules"
)

// Rewriter evolves a generation into its successor. Implementations must
// not mutate the input; they return a brand-new generation sharing the
// input's rule table.
type Rewriter[S comparable] interface {
	Rewrite(sys *lsystem.System[S]) (*lsystem.System[S], error)
}

// rewriteSlice applies one substitution pass to a slice of symbols. It is
// the single algorithm both engines run: Sequential over the whole state,
// Chunked over each chunk independently.
func rewriteSlice[S comparable](state []S, table *rules.Table[S]) ([]S, error) {
	size, ok := checkedMul(len(state), table.BiggestExpansion())
	if !ok {
		return nil, newOverflowError("worst-case allocation estimate")
	}

	out := make([]S, 0, size)
	drop := table.Unmapped() == rules.DropUnmapped
	for _, s := range state {
		if production, ok := table.Production(s); ok {
			out = append(out, production...)
		} else if !drop {
			out = append(out, s)
		}
	}
	return shrinkToFit(out), nil
}

// shrinkToFit releases the excess capacity left over from the worst-case
// pre-allocation so it is not retained for the returned generation's
// lifetime. The copy is only paid when more than a quarter of the backing
// array is unused; below that the waste is cheaper than the copy.
func shrinkToFit[S comparable](s []S) []S {
	if cap(s)-len(s) <= cap(s)/4 {
		return s
	}
	out := make([]S, len(s))
	copy(out, s)
	return out
}

// checkedMul multiplies two non-negative ints, reporting ok=false when the
// product does not fit in an int.
func checkedMul(a, b int) (int, bool) {
	hi, lo := bits.Mul(uint(a), uint(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// checkedAdd adds two non-negative ints, reporting ok=false on overflow.
func checkedAdd(a, b int) (int, bool) {
	sum, carry := bits.Add(uint(a), uint(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, false
	}
	return int(sum), true
}
