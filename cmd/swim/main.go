// ABOUTME: Entry point for swim CLI.
// ABOUTME: Invokes the root Cobra command and releases the store on exit.
package main

import (
	"fmt"
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	err := rootCmd.Execute()
	closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
