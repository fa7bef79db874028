package main

import (
	"os"

	"github.com/Sidoine1991/agent-position-sub003/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
