package main

import (
	"os"

	"github.com/substance/expression/cmd/mini/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
