// Command routectl checks route tables and exercises them from the shell.
//
//	routectl check -f routes.yaml
//	routectl match -f routes.yaml /blog/show/42
//	routectl url -f routes.yaml --base /app controller=blog action=show id=42
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
