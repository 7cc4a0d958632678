package main

import (
	"os"

	"github.com/mulanstring/mls/cmd/mls/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
