// Command tock is a personal task tracker driven by short text commands.
package main

import (
	"os"

	"github.com/Iron-Ham/tock/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
