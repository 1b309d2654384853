package process

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hmoreau/lindel/internal/lsystem"
	"github.com/hmoreau/lindel/internal/rules"
)

// Chunked is the parallel rewrite engine. It partitions the state into
// contiguous, order-preserving chunks, rewrites each chunk independently on
// a bounded worker pool, and reassembles the results in chunk-index order.
//
// Each task writes exclusively to its own result slot, so the fan-out phase
// has no shared mutable state and no lock contention; only the fan-in step
// touches all slots, after every task has completed. Chunk completion order
// is unconstrained; assembly order is what makes Chunked's output identical
// to Sequential's for any chunkSize and maxTasks.
//
// Typical values: maxTasks = number of logical cores, chunkSize between
// 100_000 and 1_000_000 symbols.
type Chunked[S comparable] struct {
	maxTasks  int
	chunkSize int

	// rewriteChunk is the per-chunk substitution. Tests swap it to inject
	// failures and to force out-of-order chunk completion.
	rewriteChunk func(index int, chunk []S, table *rules.Table[S]) ([]S, error)
}

// NewChunked creates a chunked rewriter. Both parameters must be nonzero.
func NewChunked[S comparable](maxTasks, chunkSize int) (*Chunked[S], error) {
	if maxTasks <= 0 {
		return nil, newConfigError("invalid maximum tasks number (%d)", maxTasks)
	}
	if chunkSize <= 0 {
		return nil, newConfigError("invalid chunk size (%d)", chunkSize)
	}
	c := &Chunked[S]{maxTasks: maxTasks, chunkSize: chunkSize}
	c.rewriteChunk = func(_ int, chunk []S, table *rules.Table[S]) ([]S, error) {
		return rewriteSlice(chunk, table)
	}
	return c, nil
}

// Rewrite produces the next generation in parallel. An empty input state is
// rejected with an EMPTY_STATE error. If any chunk task fails, every failure
// is aggregated into a single CHUNK_FAILURES error and no partial generation
// is returned.
func (c *Chunked[S]) Rewrite(sys *lsystem.System[S]) (*lsystem.System[S], error) {
	state := sys.State()
	if len(state) == 0 {
		return nil, newEmptyStateError()
	}

	numChunks := len(state) / c.chunkSize
	if len(state)%c.chunkSize != 0 {
		numChunks++
	}

	// One slot and one error cell per chunk index; each task owns its own
	// exclusively during fan-out.
	slots := make([][]S, numChunks)
	errs := make([]error, numChunks)

	table := sys.Rules()
	var g errgroup.Group
	g.SetLimit(c.maxTasks)
	for i := 0; i < numChunks; i++ {
		start := i * c.chunkSize
		end := start + c.chunkSize
		if end > len(state) {
			end = len(state)
		}
		chunk := state[start:end]
		g.Go(func() error {
			out, err := c.rewriteChunk(i, chunk, table)
			if err != nil {
				errs[i] = fmt.Errorf("chunk %d: %w", i, err)
				return nil
			}
			slots[i] = out
			return nil
		})
	}
	// Fan-in barrier. Task errors are collected in errs, never returned
	// through the group, so every failure is observed rather than only the
	// first.
	_ = g.Wait()

	var chunkErrs []error
	for _, err := range errs {
		if err != nil {
			chunkErrs = append(chunkErrs, err)
		}
	}
	if len(chunkErrs) > 0 {
		return nil, newChunkError(chunkErrs)
	}

	total := 0
	for i := 0; i < numChunks; i++ {
		var ok bool
		total, ok = checkedAdd(total, len(slots[i]))
		if !ok {
			return nil, newOverflowError("assembled state length")
		}
	}

	newState := make([]S, 0, total)
	for i := 0; i < numChunks; i++ {
		newState = append(newState, slots[i]...)
	}
	return sys.Next(newState), nil
}

// MaxTasks returns the worker pool bound.
func (c *Chunked[S]) MaxTasks() int {
	return c.maxTasks
}

// ChunkSize returns the number of symbols per full chunk.
func (c *Chunked[S]) ChunkSize() int {
	return c.chunkSize
}
