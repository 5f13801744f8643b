// Command timeline inspects and plays animation documents from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/timeline/cmd/timeline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
