// cmd/coder is the command-line interface to Coder, an assembler and
// virtual machine for a small teaching computer.
package main

import (
	"context"
	"os"

	"github.com/smoynes/coder/internal/cli"
	"github.com/smoynes/coder/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Compile(),
	cmd.Run(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
