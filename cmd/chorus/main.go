// Command chorus plays the client's sound effects and music from a sound archive.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
