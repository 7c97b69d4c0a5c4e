// Command purityflow runs the whole-program side-effect analysis over one or more JavaScript
// source files and prints the resolved purity summary for each function/short name, plus the
// resolved side-effect flags of every call site.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "purityflow",
	Short: "Whole-program purity and side-effect analysis for JavaScript",
	Long: `purityflow infers, for every function reachable by short name in a JavaScript program,
whether it can throw, mutate global state, mutate its arguments, mutate its receiver, or leak its
return value — then reports the final resolved side-effect flags for every call site.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
