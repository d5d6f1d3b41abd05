// Command modelgen is the ModelGen CLI front end (§6): it reads one or more
// .mg source files (or stdin), runs them against a shared Instance, and
// optionally dumps tokens/AST or exports accumulated geometry.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
