// Package main provides the dotq binary, which reads and edits YAML and JSON
// documents through dot paths.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
