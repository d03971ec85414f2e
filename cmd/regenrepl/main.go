// Command regenrepl is a demonstration CLI for the regen pattern compiler:
// it compiles a small built-in numeric-literal pattern set and lets you
// drive the incremental matcher one byte at a time, either interactively or
// over piped input.
package main

import (
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regenrepl",
		Short: "Interact with a compiled regen Automaton",
	}
	root.AddCommand(newCompileCmd())
	root.AddCommand(newReplCmd())
	return root
}
