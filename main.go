package main

import (
	"os"

	"github.com/abhisek/ideaboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
