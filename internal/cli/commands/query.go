package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wwise-tools/waql/internal/executor"
	"github.com/wwise-tools/waql/internal/resultset"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
	Out    string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [WAQL]",
		Short: "Run a WAQL query against the local Wwise instance",
		Long: `Run a WAQL query through WAAPI and display the results.

A query may be followed by "|" and a space-separated list of properties to
request from Wwise, e.g.:

  $ from type Sound | name id

The part before the pipe is forwarded to Wwise verbatim; the tokens after
it become the "return" option of ak.wwise.core.object.get.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Run a query directly
  waql query "$ from type Sound"

  # Request specific properties
  waql query "$ from type Event | name id notes"

  # Output as JSON or CSV
  waql query "$ from type Bus" --format json
  waql query "$ from type Bus" --format csv

  # Export to a CSV file
  waql query "$ from type Sound | name volume" --out sounds.csv

  # Interactive mode
  waql query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read the query from file")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Export results to a CSV file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	deps := DepsFrom(cmd.Context())

	format := opts.Format
	if format == "" {
		format = deps.Cfg.Output
	}

	// Determine the query source
	var queryText string

	switch {
	case len(args) > 0:
		queryText = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		queryText = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		queryText = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, deps, format)
	}

	out, err := deps.newExecutor().Execute(cmd.Context(), queryText)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := exportCSVFile(out.Table, opts.Out); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", out.Count, opts.Out)
		return nil
	}

	return renderOutcome(cmd.OutOrStdout(), out, format)
}

// exportCSVFile writes the normalized table to path. The in-memory table is
// untouched by a failed write.
func exportCSVFile(tbl *resultset.Table, path string) error {
	if tbl == nil {
		return fmt.Errorf("no tabular data to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := tbl.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	return nil
}

// exportOutcome is the REPL-facing variant; it reports rows written.
func exportOutcome(out *executor.Outcome, path string) (int, error) {
	if out == nil {
		return 0, fmt.Errorf("no query has been run yet")
	}
	if err := exportCSVFile(out.Table, path); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
