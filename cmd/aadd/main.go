// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command aadd evaluates scripts over Affine Arithmetic Decision Diagrams.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dalzilio/aadd/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// errors from commands have already been reported
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
