package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/wwise-tools/waql/internal/executor"
)

// historyFilePath returns the REPL history location under the user config
// dir, or "" when no usable directory exists (readline then keeps history
// in memory only).
func historyFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "waql")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func runQueryREPL(cmd *cobra.Command, deps *Deps, format string) error {
	exec := deps.newExecutor()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "waql> ",
		HistoryFile:     historyFilePath(),
		AutoComplete:    newDotCommandCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "waql REPL (endpoint: %s)\n", deps.Cfg.URL)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// The last successful outcome backs .export and .raw.
	var last *executor.Outcome

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			quit := handleDotCommand(cmd, deps, line, &format, last)
			if quit {
				break
			}
			continue
		}

		out, err := exec.Execute(cmd.Context(), line)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		last = out

		if err := renderOutcome(cmd.OutOrStdout(), out, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// handleDotCommand processes a REPL dot-command and reports whether the
// loop should exit.
func handleDotCommand(cmd *cobra.Command, deps *Deps, line string, format *string, last *executor.Outcome) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current format: %s\n", *format)
			return false
		}
		switch parts[1] {
		case "table", "json", "csv", "md", "markdown":
			*format = parts[1]
		default:
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown format: %s (expected table, json, csv, or md)\n", parts[1])
		}

	case ".export":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .export <path>")
			return false
		}
		rows, err := exportOutcome(last, parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", rows, parts[1])

	case ".raw":
		if last == nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No query has been run yet")
			return false
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), last.RawJSON)

	case ".info":
		if err := printServerInfo(cmd, deps); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .format [fmt]    Show or set the output format (table, json, csv, md)
  .export <path>   Export the last results to a CSV file
  .raw             Print the last raw JSON response
  .info            Show the connected Wwise session info
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - End a query with "| name id" to pick the returned properties
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newDotCommandCompleter completes REPL dot-commands only; WAQL itself is
// deliberately not completed.
func newDotCommandCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".format",
			readline.PcItem("table"),
			readline.PcItem("json"),
			readline.PcItem("csv"),
			readline.PcItem("md"),
		),
		readline.PcItem(".export"),
		readline.PcItem(".raw"),
		readline.PcItem(".info"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
