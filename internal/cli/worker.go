package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmoreau/lindel/internal/grammar"
	"github.com/hmoreau/lindel/internal/interpret"
	"github.com/hmoreau/lindel/internal/worker"
)

// WorkerOptions holds flags for the worker command.
type WorkerOptions struct {
	*RootOptions
	Iterations int
	Parallel   bool
	Tasks      int
	ChunkSize  int
	Interpret  bool
}

// NewWorkerCommand creates the worker command. It drives a full actor
// session (load the definition, iterate, optionally interpret, terminate),
// exercising the asynchronous path end to end instead of calling the
// rewriter directly.
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorkerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "worker <definition-file>",
		Short: "Derive an L-system through the background worker",
		Long: `Run a derivation through the background worker actor instead of direct
rewriter calls. Commands are sent over the actor's inbound channel and the
matching events are awaited in FIFO order, with per-command timing logged.

Example:
  lindel worker examples/arrowhead.yaml -n 16 --parallel`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 16, "number of iterate commands to send")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "give the worker the chunked parallel rewriter")
	cmd.Flags().IntVar(&opts.Tasks, "tasks", 4, "parallel worker pool size (with --parallel)")
	cmd.Flags().IntVar(&opts.ChunkSize, "chunk-size", 100_000, "symbols per chunk (with --parallel)")
	cmd.Flags().BoolVar(&opts.Interpret, "interpret", false, "interpret the final generation before terminating")

	return cmd
}

func runWorker(opts *WorkerOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	def, err := grammar.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
	}
	table, err := def.Table()
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid definition %s", path), err)
	}

	rewriter, err := buildRewriter(opts.Parallel, opts.Tasks, opts.ChunkSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid rewriter configuration", err)
	}

	actor := worker.Start[rune](rewriter, interpret.NewSimple[rune]())

	if _, err := commandAndWait(actor, worker.Load([]rune(def.Axiom), table)); err != nil {
		return WrapExitError(ExitFailure, "load failed", err)
	}

	lastIteration := uint64(0)
	for i := 0; i < opts.Iterations; i++ {
		ev, err := commandAndWait(actor, worker.Command[rune]{Type: worker.CmdIterate})
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("iterate %d failed", i+1), err)
		}
		lastIteration = ev.Iteration
	}

	result := map[string]any{
		"name":       def.Name,
		"iterations": lastIteration,
	}
	if opts.Interpret {
		ev, err := commandAndWait(actor, worker.Command[rune]{Type: worker.CmdInterpret})
		if err != nil {
			return WrapExitError(ExitFailure, "interpret failed", err)
		}
		result["instructions"] = instructionStrings(ev.Instructions)
	}

	if _, err := commandAndWait(actor, worker.Command[rune]{Type: worker.CmdTerminate}); err != nil {
		return WrapExitError(ExitFailure, "terminate failed", err)
	}

	return formatter.Success(result)
}

// commandAndWait sends one command and blocks for its reply. FIFO ordering
// means the next event on the channel is this command's reply.
func commandAndWait(actor *worker.Actor[rune], cmd worker.Command[rune]) (worker.Event, error) {
	start := time.Now()
	actor.Send(cmd)

	ev, ok := <-actor.Events()
	if !ok {
		return worker.Event{}, fmt.Errorf("worker stopped before replying to %s", cmd.Type)
	}
	slog.Info("worker replied",
		"command", cmd.Type,
		"elapsed", time.Since(start),
	)
	if ev.Type == worker.EventError {
		return ev, ev.Err
	}
	return ev, nil
}
