package main

import (
	"os"

	"github.com/arthur-debert/printdispatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd(cli.Deps{}), os.Args[1:]))
}
