// Package diagnostics renders scanner, parser, and runtime errors against
// the original source text (spec §4.6). Every AST node's Span identifies a
// token range; rendering walks back to that token's source line and
// underlines the offending tokens, ending the snippet in "--- Here"
// (grounded in original_source/rlok_lib/src/span.rs).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/token"
)

// CompilerError pairs a message with the source span it applies to,
// carrying enough context (the full token stream and source text) to
// render a line-numbered, underlined snippet.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Span    ast.Span
	Tokens  []token.Token
}

// NewCompilerError creates a CompilerError ready for Format.
func NewCompilerError(span ast.Span, tokens []token.Token, message, source, file string) *CompilerError {
	return &CompilerError{Message: message, Source: source, File: file, Span: span, Tokens: tokens}
}

// Error implements the error interface using uncolored Format.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error: a header naming the file and line, the source
// line on which the span starts, and an underline ending in "--- Here".
// Tokens of the span that fall on later lines are not shown or underlined.
// If color is true, ANSI codes highlight the underline and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	line := e.firstLine()
	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d\n", e.File, line)
	} else {
		fmt.Fprintf(&sb, "Error at line %d\n", line)
	}

	if snippet := e.renderSnippet(color); snippet != "" {
		sb.WriteString(snippet)
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) firstLine() int {
	if e.Span.First >= 0 && e.Span.First < len(e.Tokens) {
		return e.Tokens[e.Span.First].Line
	}
	return 0
}

// renderSnippet reproduces the source line containing the span and an
// underline of the spanned tokens' combined width, closed with
// "--- Here" in place of the reference renderer's bare caret run.
func (e *CompilerError) renderSnippet(color bool) string {
	if e.Source == "" || e.Span.First < 0 || e.Span.First >= len(e.Tokens) {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	lineNum := e.firstLine()
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	lineText := lines[lineNum-1]

	first := e.Tokens[e.Span.First]
	col := strings.Index(lineText, first.Lexeme)
	if col < 0 {
		col = 0
	}

	underlineLen := 0
	last := e.Span.Last
	if last >= len(e.Tokens) {
		last = len(e.Tokens) - 1
	}
	for idx := e.Span.First; idx <= last; idx++ {
		if e.Tokens[idx].Line != lineNum {
			break
		}
		underlineLen += len(e.Tokens[idx].Lexeme)
	}
	if underlineLen == 0 {
		underlineLen = 1
	}

	prefix := fmt.Sprintf("%4d | ", lineNum)
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(lineText)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(prefix)+col))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(strings.Repeat("^", underlineLen))
	sb.WriteString(" --- Here")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// FormatErrors renders a batch of errors, numbering them when there is
// more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
