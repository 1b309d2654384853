package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmoreau/lindel/internal/interpret"
)

// InterpretOptions holds flags for the interpret command.
type InterpretOptions struct {
	*RootOptions
	Iterations int
	Parallel   bool
	Tasks      int
	ChunkSize  int
}

// NewInterpretCommand creates the interpret command.
func NewInterpretCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InterpretOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "interpret <definition-file>",
		Short: "Derive an L-system and emit its turtle instructions",
		Long: `Evolve an L-system definition for a number of iterations, then translate
the final generation into turtle drawing instructions, one per line (or a
JSON array with --format json).

Example:
  lindel interpret examples/arrowhead.yaml -n 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpret(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 1, "number of rewrite steps before interpreting")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "use the chunked parallel rewriter")
	cmd.Flags().IntVar(&opts.Tasks, "tasks", 4, "parallel worker pool size (with --parallel)")
	cmd.Flags().IntVar(&opts.ChunkSize, "chunk-size", 100_000, "symbols per chunk (with --parallel)")

	return cmd
}

func runInterpret(opts *InterpretOptions, path string, cmd *cobra.Command) error {
	sys, name, err := loadSystem(path)
	if err != nil {
		return err
	}

	rewriter, err := buildRewriter(opts.Parallel, opts.Tasks, opts.ChunkSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid rewriter configuration", err)
	}

	for i := 0; i < opts.Iterations; i++ {
		next, err := rewriter.Rewrite(sys)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("rewrite step %d failed", i+1), err)
		}
		sys = next
	}

	start := time.Now()
	commands, err := interpret.NewSimple[rune]().Interpret(sys)
	if err != nil {
		return WrapExitError(ExitFailure, "interpretation failed", err)
	}
	slog.Info("generation interpreted",
		"name", name,
		"iteration", sys.Iteration(),
		"instructions", len(commands),
		"elapsed", time.Since(start),
	)

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(map[string]any{
			"name":         name,
			"iterations":   sys.Iteration(),
			"instructions": instructionStrings(commands),
		})
	}
	formatInstructions(cmd.OutOrStdout(), commands)
	return nil
}
