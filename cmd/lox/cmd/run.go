package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/lox/internal/diagnostics"
	"github.com/cwbudde/lox/internal/evaluator"
	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
	"github.com/cwbudde/lox/internal/runtime"
	"github.com/cwbudde/lox/internal/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	traceRun bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a source file or expression",
	Long: `Execute a program from a file or inline expression.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate an inline expression
  lox run -e "print 1 + 1;"

  # Run with AST dump (for debugging)
  lox run --dump-ast script.lox

  # Run with execution trace
  lox run --trace script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "trace statement execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source string
	var filename string

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	tokens, scanErrs := lexer.Scan(source)
	if len(scanErrs) > 0 {
		fmt.Fprintln(os.Stderr, lexer.JoinErrors(scanErrs))
		return fmt.Errorf("scanning failed with %d error(s)", len(scanErrs))
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed: %w", err)
	}

	if dumpAST {
		for _, stmt := range program {
			fmt.Println(stmt.String())
		}
	}

	interp := evaluator.New(os.Stdout)
	interp.SetTokens(tokens)
	if traceRun {
		interp.SetTrace(os.Stderr)
	}

	if err := interp.Interpret(program, false); err != nil {
		reportRuntimeError(err, interp.LastTrace(), tokens, source, filename)
		return fmt.Errorf("execution failed")
	}

	return nil
}

// reportRuntimeError renders a runtime.Error against the source it came
// from, falling back to the bare error message for anything else (a
// returnSignal never escapes the evaluator, so in practice this branch
// only sees genuine runtime.Error values). When the error was raised
// inside one or more user-function calls, the active call stack is
// rendered beneath the snippet.
func reportRuntimeError(err error, trace []runtime.Frame, tokens []token.Token, source, filename string) {
	rtErr, ok := err.(runtime.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "Runtime error: %s\n", err)
		return
	}
	compilerErr := diagnostics.NewCompilerError(rtErr.Span(), tokens, rtErr.Error(), source, filename)
	fmt.Fprintln(os.Stderr, compilerErr.Format(true))

	if len(trace) == 0 {
		return
	}
	stackTrace := make(diagnostics.StackTrace, len(trace))
	for idx, frame := range trace {
		stackTrace[idx] = diagnostics.NewStackFrame(frame.Name, frame.Line)
	}
	fmt.Fprintln(os.Stderr, stackTrace.String())
}
