package main

import (
	"fmt"
	"os"

	"github.com/Sidoine1991/agent-position-sub003/cmd"
)

func main() {
	if err := cmd.RunAgent(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
