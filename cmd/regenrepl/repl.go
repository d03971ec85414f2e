package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/lmorg/readline/v4"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/regenlang/regen/match"
)

// REPL drives a compiled numeric-literal Automaton one byte at a time over
// each input line, printing the Advance outcome after every byte and, on a
// Match, the value current() rebuilds.
type REPL struct {
	automaton interface {
		NewMatcher() *match.Matcher[byte, Number]
	}
	input  io.Reader
	output io.Writer
	prompt string
}

func newREPL(output io.Writer) (*REPL, error) {
	start := time.Now()
	auto, err := compileNumberAutomaton()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	log.Printf("compiled %d states in %g ms", auto.StateCount(), 1000.0*float64(elapsed)/1.0e9)
	return &REPL{
		automaton: auto,
		input:     os.Stdin,
		output:    output,
		prompt:    "regen> ",
	}, nil
}

func (r *REPL) isInteractive() bool {
	if r.input == os.Stdin {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	return false
}

// Run starts the REPL loop, dispatching to interactive or piped mode.
func (r *REPL) Run() error {
	if r.isInteractive() {
		return r.runInteractive()
	}
	return r.runPiped()
}

func (r *REPL) runInteractive() error {
	rl := readline.NewInstance()
	rl.SetPrompt(r.prompt)
	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		r.processLine(line)
	}
}

func (r *REPL) runPiped() error {
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		r.processLine(scanner.Text())
	}
	return scanner.Err()
}

// processLine feeds one line's bytes through a fresh matcher, reporting the
// Advance outcome at each step and the Complete outcome at the end.
func (r *REPL) processLine(line string) {
	if line == "quit" || line == "exit" {
		os.Exit(0)
	}

	m := r.automaton.NewMatcher()
	for i, b := range []byte(line) {
		res := m.Advance(b)
		fmt.Fprintf(r.output, "  [%d] %q -> %s", i, b, res.Outcome)
		if res.Outcome == match.Match {
			if v, err := m.Current(); err == nil {
				fmt.Fprintf(r.output, " current=%+v", v)
			}
		}
		fmt.Fprintln(r.output)
		if res.Outcome == match.AdvanceError {
			break
		}
	}

	final := m.Complete()
	fmt.Fprintf(r.output, "complete -> %s\n", final.Outcome)
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Feed lines of input to the numeric-literal matcher byte by byte",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(0)
			r, err := newREPL(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			return r.Run()
		},
	}
}
