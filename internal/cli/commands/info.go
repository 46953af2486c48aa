package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valyala/fastjson"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the connected Wwise session info",
		Long: `Call ak.wwise.core.getInfo on the configured WAAPI endpoint and print
the response. Useful as a connectivity check before running queries.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printServerInfo(cmd, DepsFrom(cmd.Context()))
		},
	}
}

func printServerInfo(cmd *cobra.Command, deps *Deps) error {
	v, err := deps.newClient().GetInfo(cmd.Context())
	if err != nil {
		return fmt.Errorf("getInfo: %w", err)
	}

	name := string(v.GetStringBytes("displayName"))
	version := string(v.GetStringBytes("version", "displayName"))
	if name != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s %s\n\n", name, version)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), prettyValue(v))
	return nil
}

func prettyValue(v *fastjson.Value) string {
	compact := v.MarshalTo(nil)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return string(compact)
	}
	return buf.String()
}
