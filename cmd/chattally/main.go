package main

import (
	"os"

	"github.com/mfern/chattally/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
