// Package main provides the reusesim command line tool.
// reusesim replays instruction traces through a timing core with an
// instruction reuse buffer and reports how much work the buffer saves.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
