package process

import "github.com/hmoreau/lindel/internal/lsystem"

// Sequential is the single-threaded rewrite engine. It can occupy its
// calling goroutine for a long time on large states; use Chunked, or run it
// behind a worker actor, when that matters.
type Sequential[S comparable] struct{}

// NewSequential creates a sequential rewriter.
func NewSequential[S comparable]() Sequential[S] {
	return Sequential[S]{}
}

// Rewrite produces the next generation by replacing every symbol with its
// production, in order. Unmapped symbols follow the table's policy
// (identity by default).
func (Sequential[S]) Rewrite(sys *lsystem.System[S]) (*lsystem.System[S], error) {
	state, err := rewriteSlice(sys.State(), sys.Rules())
	if err != nil {
		return nil, err
	}
	return sys.Next(state), nil
}
