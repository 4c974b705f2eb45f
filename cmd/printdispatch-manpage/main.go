package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/printdispatch/internal/cli"
	"github.com/arthur-debert/printdispatch/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd(cli.Deps{})

	header := &doc.GenManHeader{
		Title:   "PRINTDISPATCH",
		Section: "1",
		Source:  "printdispatch " + version.Version,
		Manual:  "printdispatch manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
