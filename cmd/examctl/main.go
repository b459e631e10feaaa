// Command examctl works with AIKEN exams offline: it parses and assembles
// exam files, grades submission files and renders result reports.
package main

import (
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
