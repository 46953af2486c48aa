// Command waql is a WAQL workbench for the Wwise Authoring API.
package main

import (
	"os"

	"github.com/wwise-tools/waql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
