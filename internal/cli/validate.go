package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmoreau/lindel/internal/grammar"
)

// ValidationResult holds validation results for one definition file.
type ValidationResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition-file>...",
		Short: "Validate definition files without deriving",
		Long: `Validate L-system definition files (YAML or CUE) without running any
derivation. All problems in a file are collected and reported together.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	results := make([]ValidationResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		result := validateFile(path)
		if !result.Valid {
			failed++
		}
		results = append(results, result)
	}

	if opts.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", r.File)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d error(s)\n", r.File, len(r.Errors))
			for _, e := range r.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d of %d file(s)", failed, len(paths)))
	}
	return nil
}

// validateFile loads one definition and collects every validation error.
func validateFile(path string) ValidationResult {
	result := ValidationResult{File: path}

	def, err := grammar.Load(path)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}

	for _, err := range def.Validate() {
		result.Errors = append(result.Errors, err.Error())
	}
	result.Valid = len(result.Errors) == 0
	return result
}
