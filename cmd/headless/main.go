// Command headless runs the component gallery and placement tools.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/headless/cmd/headless/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
