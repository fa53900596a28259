// main is the command-line entrypoint for the capaimpact CLI.
package main

import (
	"fmt"
	"os"

	"github.com/plantops/capaimpact/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
