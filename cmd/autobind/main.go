// Command autobind replays scripted interactions against bound views.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/autobind/cmd/autobind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
