package main

import (
	"os"

	"github.com/msto63/dtparse/cmd/dtparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
