package diagnostics

import (
	"strings"
	"testing"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/lexer"
)

func TestFormatEndsInDashDashDashHere(t *testing.T) {
	src := "var x = 1 + ;"
	tokens, _ := lexer.Scan(src)
	span := ast.Span{First: 4, Last: 4} // the '+' token
	err := NewCompilerError(span, tokens, "Expect expression.", src, "")

	out := err.Format(false)
	if !strings.HasSuffix(strings.Split(out, "\n")[2], " --- Here") {
		t.Fatalf("expected underline line to end in ' --- Here', got:\n%s", out)
	}
}

func TestFormatIncludesLineNumberAndSourceLine(t *testing.T) {
	src := "1 + 2;"
	tokens, _ := lexer.Scan(src)
	span := ast.Span{First: 0, Last: 0}
	err := NewCompilerError(span, tokens, "boom", src, "")

	out := err.Format(false)
	if !strings.Contains(out, "1 + 2;") {
		t.Fatalf("expected source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Error at line 1") {
		t.Fatalf("expected line header, got:\n%s", out)
	}
}

func TestFormatErrorsNumbersMultiple(t *testing.T) {
	src := "1 2"
	tokens, _ := lexer.Scan(src)
	errs := []*CompilerError{
		NewCompilerError(ast.Span{First: 0, Last: 0}, tokens, "first", src, ""),
		NewCompilerError(ast.Span{First: 1, Last: 1}, tokens, "second", src, ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected error count header, got:\n%s", out)
	}
}

func TestStackTraceStringNewestFirst(t *testing.T) {
	st := NewStackTrace()
	st = append(st, NewStackFrame("main", 1), NewStackFrame("helper", 5))
	out := st.String()
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "helper") {
		t.Fatalf("expected newest frame first, got:\n%s", out)
	}
}
