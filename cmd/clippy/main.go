package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/clippyd/clippy/internal/cli"
)

func main() {
	var args cli.Args
	parser := arg.MustParse(&args)

	cliHandler, err := cli.New()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println()
		parser.WriteUsage(os.Stderr)
		os.Exit(1)
	}
}
