// Command regdfa compiles regular expressions into DFA-based matcher
// programs.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
