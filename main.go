// Package main provides the entry point for reusesim.
// reusesim is a trace-driven timing model of an instruction reuse buffer,
// built on the Akita hook framework.
//
// For the full CLI, use: go run ./cmd/reusesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("reusesim - Instruction Reuse Buffer Simulator")
	fmt.Println("")
	fmt.Println("Usage: reusesim <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run <trace.jsonl>     Replay a trace through one reuse buffer")
	fmt.Println("  sweep <trace.jsonl>   Compare several buffer capacities")
	fmt.Println("  gen <workload>        Write a synthetic workload trace")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/reusesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/reusesim' instead.")
	}
}
