// Package main is the entry point for the coursekit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/coursekit/coursekit/cmd/coursekit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
