package parser

import (
	"testing"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/lexer"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, errs := lexer.Scan(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	stmts, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return stmts
}

func TestParseExpressionStmt(t *testing.T) {
	stmts := mustParse(t, "1 + 2 * 3;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	expr := stmts[0].(*ast.ExpressionStmt).Expr
	want := "(+ 1 (* 2 3))"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"1 < 2 == 3 < 4;", "(== (< 1 2) (< 3 4))"},
		{"-1 * 2;", "(* (- 1) 2)"},
		{"!true == false;", "(== (! true) false)"},
		{"1 + 2 == 3;", "(== (+ 1 2) 3)"},
	}
	for _, c := range cases {
		stmts := mustParse(t, c.src)
		got := stmts[0].(*ast.ExpressionStmt).Expr.String()
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestParseGrouping(t *testing.T) {
	stmts := mustParse(t, "(1 + 2) * 3;")
	got := stmts[0].(*ast.ExpressionStmt).Expr.String()
	want := "(* (group (+ 1 2)) 3)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseLogicalShortCircuitOperators(t *testing.T) {
	stmts := mustParse(t, "true and false or true;")
	got := stmts[0].(*ast.ExpressionStmt).Expr.String()
	want := "(or (and true false) true)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseVarDeclWithAndWithoutInitializer(t *testing.T) {
	stmts := mustParse(t, "var a = 1; var b;")
	a := stmts[0].(*ast.VarStmt)
	if a.Name != "a" || a.Initializer == nil {
		t.Fatalf("got %+v", a)
	}
	b := stmts[1].(*ast.VarStmt)
	if b.Name != "b" || b.Initializer != nil {
		t.Fatalf("got %+v", b)
	}
}

func TestParseAssignment(t *testing.T) {
	stmts := mustParse(t, "a = 1;")
	expr := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Assign)
	if expr.Name != "a" {
		t.Fatalf("got %+v", expr)
	}
}

func TestParseAssignmentToNonVariableFails(t *testing.T) {
	tokens, _ := lexer.Scan("1 = 2;")
	_, err := Parse(tokens)
	if _, ok := err.(*InvalidAssignmentTargetError); !ok {
		t.Fatalf("got %T (%v), want InvalidAssignmentTargetError", err, err)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	stmts := mustParse(t, "a = b = 1;")
	outer := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Assign)
	if outer.Name != "a" {
		t.Fatalf("got %+v", outer)
	}
	if _, ok := outer.Value.(*ast.Assign); !ok {
		t.Fatalf("expected nested assignment, got %T", outer.Value)
	}
}

func TestParseBlock(t *testing.T) {
	stmts := mustParse(t, "{ var a = 1; print a; }")
	block := stmts[0].(*ast.BlockStmt)
	if len(block.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(block.Statements))
	}
}

func TestParseIfElse(t *testing.T) {
	stmts := mustParse(t, "if (true) print 1; else print 2;")
	ifStmt := stmts[0].(*ast.IfStmt)
	if ifStmt.Then == nil || ifStmt.Else == nil {
		t.Fatalf("got %+v", ifStmt)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	stmts := mustParse(t, "if (true) print 1;")
	ifStmt := stmts[0].(*ast.IfStmt)
	if ifStmt.Else != nil {
		t.Fatalf("expected nil else, got %+v", ifStmt.Else)
	}
}

func TestParseWhile(t *testing.T) {
	stmts := mustParse(t, "while (a < 10) a = a + 1;")
	while := stmts[0].(*ast.WhileStmt)
	if while.Condition == nil || while.Body == nil {
		t.Fatalf("got %+v", while)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer := stmts[0].(*ast.BlockStmt)
	if len(outer.Statements) != 2 {
		t.Fatalf("got %d outer statements, want 2 (init + while)", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected initializer VarStmt, got %T", outer.Statements[0])
	}
	while, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", outer.Statements[1])
	}
	body := while.Body.(*ast.BlockStmt)
	if len(body.Statements) != 2 {
		t.Fatalf("expected body + increment, got %d statements", len(body.Statements))
	}
}

func TestParseForWithoutConditionDefaultsToTrue(t *testing.T) {
	stmts := mustParse(t, "for (;;) print 1;")
	outer := stmts[0].(*ast.WhileStmt)
	lit, ok := outer.Condition.(*ast.BoolLiteral)
	if !ok || !lit.Value {
		t.Fatalf("expected true literal condition, got %+v", outer.Condition)
	}
}

func TestParseForWithoutInitializer(t *testing.T) {
	stmts := mustParse(t, "for (; a < 3;) print a;")
	if _, ok := stmts[0].(*ast.WhileStmt); !ok {
		t.Fatalf("expected a bare WhileStmt with no wrapping init block, got %T", stmts[0])
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts := mustParse(t, "fun add(a, b) { return a + b; }")
	fn := stmts[0].(*ast.FunctionStmt)
	if fn.Name != "add" || len(fn.Params) != 2 || len(fn.Body) != 1 {
		t.Fatalf("got %+v", fn)
	}
	ret := fn.Body[0].(*ast.ReturnStmt)
	if ret.Value == nil {
		t.Fatalf("expected return value, got %+v", ret)
	}
}

func TestParseBareReturn(t *testing.T) {
	stmts := mustParse(t, "fun f() { return; }")
	fn := stmts[0].(*ast.FunctionStmt)
	ret := fn.Body[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("expected nil return value, got %+v", ret.Value)
	}
}

func TestParseCallWithArguments(t *testing.T) {
	stmts := mustParse(t, "add(1, 2, 3);")
	call := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Call)
	if len(call.Arguments) != 3 {
		t.Fatalf("got %d arguments, want 3", len(call.Arguments))
	}
}

func TestParseChainedCalls(t *testing.T) {
	stmts := mustParse(t, "f()();")
	outer := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Call)
	if _, ok := outer.Callee.(*ast.Call); !ok {
		t.Fatalf("expected callee to itself be a call, got %T", outer.Callee)
	}
}

func TestParseTooManyParameters(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "p"
	}
	src += ") {}"
	tokens, _ := lexer.Scan(src)
	_, err := Parse(tokens)
	if _, ok := err.(*TooManyParametersError); !ok {
		t.Fatalf("got %T (%v), want TooManyParametersError", err, err)
	}
}

func TestParseTooManyArguments(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	tokens, _ := lexer.Scan(src)
	_, err := Parse(tokens)
	if _, ok := err.(*TooManyArgumentsError); !ok {
		t.Fatalf("got %T (%v), want TooManyArgumentsError", err, err)
	}
}

func TestParseMissingSemicolonFails(t *testing.T) {
	tokens, _ := lexer.Scan("print 1")
	_, err := Parse(tokens)
	if _, ok := err.(*ExpectTokenError); !ok {
		t.Fatalf("got %T (%v), want ExpectTokenError", err, err)
	}
}

func TestParseUnclosedBlockFails(t *testing.T) {
	tokens, _ := lexer.Scan("{ print 1;")
	if _, err := Parse(tokens); err == nil {
		t.Fatal("expected an error for an unclosed block")
	}
}

func TestParseFailsFastOnFirstError(t *testing.T) {
	// A second, independent error later in the stream must never be
	// reported: the parser stops at the first one (no resynchronization).
	tokens, _ := lexer.Scan("1 = 2; 3 = 4;")
	_, err := Parse(tokens)
	target, ok := err.(*InvalidAssignmentTargetError)
	if !ok {
		t.Fatalf("got %T (%v), want InvalidAssignmentTargetError", err, err)
	}
	if target.Line != 1 {
		t.Fatalf("got line %d, want 1 (the first offending '=')", target.Line)
	}
}
