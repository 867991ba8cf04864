package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usage = "Usage: contract-testgen <path_to_solidity_file>"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stdout, usage)
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
