package main

import (
	"os"

	"github.com/deppfellow/go-profile/cmd/profile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
