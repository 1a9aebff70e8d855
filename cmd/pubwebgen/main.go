// Command pubwebgen generates evolving spatial graphs and replays their event streams.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pubweb/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
