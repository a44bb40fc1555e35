package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cwbudde/lox/internal/evaluator"
	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// runSource exercises the same scan/parse/interpret pipeline run.go drives,
// without going through cobra or os.Stdout, so output can be captured.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, scanErrs := lexer.Scan(src)
	if len(scanErrs) > 0 {
		return "", fmt.Errorf("%s", lexer.JoinErrors(scanErrs))
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	interp := evaluator.New(&buf)
	if err := interp.Interpret(program, false); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}

func TestRunFibonacciProgram(t *testing.T) {
	src := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}

for (var i = 0; i < 8; i = i + 1) {
  print fib(i);
}
`
	out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRunClosureCounterProgram(t *testing.T) {
	src := `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}

var counter = makeCounter();
print counter();
print counter();
print counter();
`
	out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRunUndefinedVariableReportsError(t *testing.T) {
	_, err := runSource(t, "print missing;")
	if err == nil {
		t.Fatal("expected an error")
	}
	snaps.MatchSnapshot(t, err.Error())
}
