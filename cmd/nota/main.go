package main

import (
	"fmt"
	"os"

	"github.com/sangkips/nota-perusahaan/internal/cli"
	"github.com/sangkips/nota-perusahaan/internal/config"
)

func main() {
	cmd := cli.NewRootCommand(config.Load())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
