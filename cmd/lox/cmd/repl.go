package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/lox/internal/evaluator"
	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Read a line, scan+parse+execute it against a persistent global
environment, and print its result. An empty line exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl() error {
	prompt := isatty.IsTerminal(os.Stdout.Fd())
	return replLoop(os.Stdin, os.Stdout, os.Stderr, prompt)
}

// replLoop implements the loop of spec §6.2: each line is scanned, parsed,
// and executed independently against one persistent interpreter. Scanner,
// parser, and runtime errors are printed and do not end the session; only
// an empty line or the end of input does. prompt controls whether "> " is written before each
// read, so a piped stdin (prompt=false) doesn't pollute captured output.
func replLoop(in io.Reader, out, errOut io.Writer, prompt bool) error {
	interp := evaluator.New(out)
	scanner := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}

		tokens, scanErrs := lexer.Scan(line)
		if len(scanErrs) > 0 {
			fmt.Fprintln(errOut, lexer.JoinErrors(scanErrs))
			continue
		}

		program, err := parser.Parse(tokens)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}

		interp.SetTokens(tokens)
		if err := interp.Interpret(program, true); err != nil {
			fmt.Fprintf(errOut, "Runtime error: %s\n", err)
			continue
		}
	}
}
