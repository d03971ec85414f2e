package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile the built-in numeric-literal pattern set and print its identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(0)
			start := time.Now()
			auto, err := compileNumberAutomaton()
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			elapsed := time.Since(start)
			log.Printf("compiled %d states in %g ms", auto.StateCount(), 1000.0*float64(elapsed)/1.0e9)
			fmt.Fprintf(cmd.OutOrStdout(), "compiled automaton %s\n", auto.ID())
			if _, ok := auto.PrefixHint(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), "literal prefilter: available")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "literal prefilter: none (some variant has no mandatory literal prefix, or the prefilter could not be built)")
			}
			return nil
		},
	}
}
