// Package parser implements the recursive-descent parser: token stream to
// AST (spec §4.2).
package parser

import (
	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/token"
)

const maxArity = 255

// Parser consumes a flat token slice and produces a list of top-level
// statements. It performs no backtracking beyond one-token lookahead and
// fails fast on the first error (spec §4.2).
type Parser struct {
	tokens  []token.Token
	current int
}

// New creates a Parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens into a program's statement list, or returns the
// first parse error encountered.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	return New(tokens).Parse()
}

// Parse runs the parser to completion (grammar: program = declaration* EOF).
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ---- token stream helpers ----

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return t == token.EOF
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token kind or returns errFn's error
// anchored at the current (offending) token.
func (p *Parser) consume(t token.Type, errFn func(line int, lexeme string) error) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, errFn(p.peek().Line, p.peek().Lexeme)
}

func expectToken(message string) func(line int, lexeme string) error {
	return func(line int, lexeme string) error {
		return &ExpectTokenError{baseError{line}, lexeme, message}
	}
}

func (p *Parser) span(start int) ast.Span {
	return ast.Span{First: start, Last: p.current - 1}
}

// ---- declarations ----

// declaration = funDecl | varDecl | statement
func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.FUN) {
		return p.funDecl()
	}
	if p.match(token.VAR) {
		return p.varDecl()
	}
	return p.statement()
}

// funDecl = "fun" IDENT "(" params? ")" block
func (p *Parser) funDecl() (ast.Stmt, error) {
	start := p.current - 1 // the 'fun' token already consumed
	name, err := p.consume(token.IDENT, expectToken("Expect function name."))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_PAREN, expectToken("Expect '(' after function name.")); err != nil {
		return nil, err
	}

	var params []string
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArity {
				return nil, &TooManyParametersError{baseError{p.peek().Line}}
			}
			param, err := p.consume(token.IDENT, expectToken("Expect parameter name."))
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, expectToken("Expect ')' after parameters.")); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_BRACE, expectToken("Expect '{' before function body.")); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionStmt(p.span(start), name.Lexeme, params, body), nil
}

// varDecl = "var" IDENT ("=" expression)? ";"
func (p *Parser) varDecl() (ast.Stmt, error) {
	start := p.current - 1 // the 'var' token already consumed
	name, err := p.consume(token.IDENT, expectToken("Expect variable name."))
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		if p.check(token.SEMICOLON) || p.isAtEnd() {
			return nil, &VarMissingExprError{baseError{p.previous().Line}}
		}
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, expectToken("Expect ';' after variable declaration.")); err != nil {
		return nil, err
	}
	return ast.NewVarStmt(p.span(start), name.Lexeme, initializer), nil
}

// ---- statements ----

// statement = exprStmt | printStmt | block | ifStmt | whileStmt | forStmt | returnStmt
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.LEFT_BRACE):
		return p.blockStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

// printStmt = "print" expression ";"
func (p *Parser) printStmt() (ast.Stmt, error) {
	start := p.current - 1
	if p.check(token.SEMICOLON) || p.isAtEnd() {
		return nil, &PrintNoExpressionError{baseError{p.previous().Line}}
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, expectToken("Expect ';' after value.")); err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(p.span(start), value), nil
}

// exprStmt = expression ";"
func (p *Parser) exprStmt() (ast.Stmt, error) {
	start := p.current
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, expectToken("Expect ';' after expression.")); err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(p.span(start), expr), nil
}

// block = "{" declaration* "}" — the opening '{' has already been consumed.
func (p *Parser) blockStmt() (ast.Stmt, error) {
	start := p.current - 1
	stmts, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewBlockStmt(p.span(start), stmts), nil
}

// blockBody parses declaration* "}", assuming the opening '{' was consumed
// by the caller. Shared by block statements and function bodies.
func (p *Parser) blockBody() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RIGHT_BRACE, expectToken("Expect '}' after block.")); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ifStmt = "if" "(" expression ")" statement ("else" statement)?
func (p *Parser) ifStmt() (ast.Stmt, error) {
	start := p.current - 1
	if _, err := p.consume(token.LEFT_PAREN, func(line int, _ string) error {
		return &MissingIfConditionError{baseError{line}}
	}); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, func(line int, _ string) error {
		return &MissingThenBranchError{baseError{line}}
	}); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(p.span(start), condition, thenBranch, elseBranch), nil
}

// whileStmt = "while" "(" expression ")" statement
func (p *Parser) whileStmt() (ast.Stmt, error) {
	start := p.current - 1
	if _, err := p.consume(token.LEFT_PAREN, func(line int, _ string) error {
		return &WhileMissingConditionError{baseError{line}}
	}); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, func(line int, _ string) error {
		return &WhileMissingBodyError{baseError{line}}
	}); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(p.span(start), condition, body), nil
}

// forStmt = "for" "(" (varDecl | exprStmt | ";") expression? ";" expression? ")" statement
//
// Desugared at parse time into:
//
//	{ init?; while (cond ?? true) { body; incr?; } }
//
// (spec §4.2 Desugaring).
func (p *Parser) forStmt() (ast.Stmt, error) {
	start := p.current - 1
	if _, err := p.consume(token.LEFT_PAREN, expectToken("Expect '(' after 'for'.")); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		initializer, err = p.varDecl()
	default:
		initializer, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, expectToken("Expect ';' after loop condition.")); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, expectToken("Expect ')' after for clauses.")); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = ast.NewBlockStmt(body.Span(), []ast.Stmt{
			body,
			ast.NewExpressionStmt(increment.Span(), increment),
		})
	}
	if condition == nil {
		condition = ast.NewBoolLiteral(body.Span(), true)
	}
	body = ast.NewWhileStmt(p.span(start), condition, body)
	if initializer != nil {
		body = ast.NewBlockStmt(p.span(start), []ast.Stmt{initializer, body})
	}
	return body, nil
}

// returnStmt = "return" expression? ";"
func (p *Parser) returnStmt() (ast.Stmt, error) {
	start := p.current - 1
	keyword := p.previous()

	var value ast.Expr
	var err error
	if !p.check(token.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, expectToken("Expect ';' after return value.")); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(p.span(start), keyword, value), nil
}

// ---- expressions, by ascending precedence ----

// expression = assignment
func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment = IDENT "=" assignment | logic_or
func (p *Parser) assignment() (ast.Expr, error) {
	start := p.current
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQUAL) {
		equalsLine := p.previous().Line
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		variable, ok := expr.(*ast.Variable)
		if !ok {
			return nil, &InvalidAssignmentTargetError{baseError{equalsLine}}
		}
		return ast.NewAssign(p.span(start), variable.Name, value), nil
	}
	return expr, nil
}

// logic_or = logic_and ("or" logic_and)*
func (p *Parser) logicOr() (ast.Expr, error) {
	start := p.current
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		op := p.previous()
		if p.check(token.SEMICOLON) || p.isAtEnd() {
			return nil, &LogicOrMissingRightError{baseError{op.Line}}
		}
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(p.span(start), expr, op.Type, op.Lexeme, right)
	}
	return expr, nil
}

// logic_and = equality ("and" equality)*
func (p *Parser) logicAnd() (ast.Expr, error) {
	start := p.current
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		op := p.previous()
		if p.check(token.SEMICOLON) || p.isAtEnd() {
			return nil, &LogicAndMissingRightError{baseError{op.Line}}
		}
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(p.span(start), expr, op.Type, op.Lexeme, right)
	}
	return expr, nil
}

// equality = comparison (("!="|"==") comparison)*
func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssocBinary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

// comparison = term ((">"|">="|"<"|"<=") term)*
func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssocBinary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

// term = factor (("-"|"+") factor)*
func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssocBinary(p.factor, token.MINUS, token.PLUS)
}

// factor = unary (("/"|"*") unary)*
func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssocBinary(p.unary, token.SLASH, token.STAR)
}

// leftAssocBinary implements a single level of left-associative binary
// operator precedence shared by equality/comparison/term/factor.
func (p *Parser) leftAssocBinary(operand func() (ast.Expr, error), types ...token.Type) (ast.Expr, error) {
	start := p.current
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(p.span(start), expr, op.Type, op.Lexeme, right)
	}
	return expr, nil
}

// unary = ("!"|"-") unary | call
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		start := p.current - 1
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(p.span(start), op.Type, op.Lexeme, operand), nil
	}
	return p.call()
}

// call = primary ("(" args? ")")*
func (p *Parser) call() (ast.Expr, error) {
	start := p.current
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LEFT_PAREN) {
		expr, err = p.finishCall(start, expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// args = expression ("," expression)*       ; max 255
func (p *Parser) finishCall(start int, callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArity {
				return nil, &TooManyArgumentsError{baseError{p.peek().Line}}
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	closingParen, err := p.consume(token.RIGHT_PAREN, expectToken("Expect ')' after arguments."))
	if err != nil {
		return nil, err
	}
	return ast.NewCall(p.span(start), callee, closingParen, args), nil
}

// primary = NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")" | IDENT
func (p *Parser) primary() (ast.Expr, error) {
	start := p.current
	switch {
	case p.match(token.FALSE):
		return ast.NewBoolLiteral(p.span(start), false), nil
	case p.match(token.TRUE):
		return ast.NewBoolLiteral(p.span(start), true), nil
	case p.match(token.NIL):
		return ast.NewNilLiteral(p.span(start)), nil
	case p.match(token.NUMBER):
		return ast.NewNumberLiteral(p.span(start), p.previous().Literal.(float32)), nil
	case p.match(token.STRING):
		return ast.NewStringLiteral(p.span(start), p.previous().Literal.(string)), nil
	case p.match(token.IDENT):
		return ast.NewVariable(p.span(start), p.previous().Lexeme), nil
	case p.match(token.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, expectToken("Expect ')' after expression.")); err != nil {
			return nil, err
		}
		return ast.NewGrouping(p.span(start), expr), nil
	default:
		return nil, &ExpectTokenError{baseError{p.peek().Line}, p.peek().Lexeme, "Expect expression."}
	}
}
