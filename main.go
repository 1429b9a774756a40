package main

import (
	"os"

	"github.com/offdeck/offdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
