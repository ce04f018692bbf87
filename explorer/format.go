package explorer

import (
	"fmt"
	"strings"

	"github.com/hydrogen-lang/hydrogen-compiler/lexer"
	"github.com/hydrogen-lang/hydrogen-compiler/parser"
)

// FormatTokens renders a token stream one token per line, grouped by
// source line
func FormatTokens(tokens []lexer.Token) string {
	var sb strings.Builder
	lastLine := 0
	for _, tok := range tokens {
		if tok.Line != lastLine {
			sb.WriteString(fmt.Sprintf("line %d:\n", tok.Line))
			lastLine = tok.Line
		}
		switch tok.Type {
		case lexer.TokenIdent, lexer.TokenIntLit, lexer.TokenBoolLit, lexer.TokenLitType:
			sb.WriteString(fmt.Sprintf("  %s %q\n", tok.Type, tok.Literal))
		default:
			sb.WriteString(fmt.Sprintf("  %s\n", tok.Type))
		}
	}
	return sb.String()
}

// FormatAST renders a program as an indented tree
func FormatAST(prog *parser.Program, indentWidth int) string {
	if indentWidth <= 0 {
		indentWidth = 2
	}
	f := &astFormatter{indent: strings.Repeat(" ", indentWidth)}
	for _, fn := range prog.Functions {
		f.line(0, "fn %s -> %s", fn.Name, fn.ReturnType)
		f.statements(1, fn.Body)
	}
	return f.sb.String()
}

type astFormatter struct {
	sb     strings.Builder
	indent string
}

func (f *astFormatter) line(depth int, format string, args ...any) {
	f.sb.WriteString(strings.Repeat(f.indent, depth))
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteByte('\n')
}

func (f *astFormatter) statements(depth int, stmts []parser.Statement) {
	for _, stmt := range stmts {
		f.statement(depth, stmt)
	}
}

func (f *astFormatter) statement(depth int, stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.LetStatement:
		f.line(depth, "let %s =", s.Name.Literal)
		f.expression(depth+1, s.Expr)
	case *parser.ReAssignStatement:
		f.line(depth, "assign %s =", s.Name.Literal)
		f.expression(depth+1, s.Expr)
	case *parser.ReturnStatement:
		f.line(depth, "return")
		f.expression(depth+1, s.Expr)
	case *parser.BlockStatement:
		f.line(depth, "block")
		f.statements(depth+1, s.Statements)
	case *parser.IfStatement:
		f.line(depth, "if")
		f.expression(depth+1, s.Cond)
		f.line(depth, "then")
		f.statements(depth+1, s.Then.Statements)
		f.elseChain(depth, s.Chain)
	default:
		f.line(depth, "%T", stmt)
	}
}

func (f *astFormatter) elseChain(depth int, chain parser.ElseNode) {
	switch c := chain.(type) {
	case nil:
	case *parser.ElseIfClause:
		f.line(depth, "else if")
		f.expression(depth+1, c.Cond)
		f.line(depth, "then")
		f.statements(depth+1, c.Block.Statements)
		f.elseChain(depth, c.Chain)
	case *parser.ElseClause:
		f.line(depth, "else")
		f.statements(depth+1, c.Block.Statements)
	}
}

func (f *astFormatter) expression(depth int, expr parser.Expression) {
	switch e := expr.(type) {
	case *parser.IntLiteral:
		f.line(depth, "int %s", e.Digits)
	case *parser.BoolLiteral:
		f.line(depth, "bool %t", e.Value)
	case *parser.Identifier:
		f.line(depth, "ident %s", e.Name)
	case *parser.GroupedExpr:
		f.line(depth, "group")
		f.expression(depth+1, e.Expr)
	case *parser.CallExpr:
		f.line(depth, "call %s()", e.Name)
	case *parser.BinaryExpr:
		f.line(depth, "binary %s", e.Op)
		f.expression(depth+1, e.LHS)
		f.expression(depth+1, e.RHS)
	default:
		f.line(depth, "%T", expr)
	}
}
