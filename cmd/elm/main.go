package main

import (
	"os"

	"github.com/msto63/elm/cmd/elm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
