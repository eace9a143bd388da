// Package main is the entry point for the bookkeeper CLI.
package main

import (
	"os"

	"github.com/nekorytaylor666/infobuh-sub000/cmd/bookkeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
