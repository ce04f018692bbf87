package codegen

import (
	"fmt"

	"github.com/hydrogen-lang/hydrogen-compiler/parser"
)

// genExpression emits an expression in post-order. Every expression leaves
// its result pushed on top of the simulated stack.
func (g *Generator) genExpression(expr parser.Expression) error {
	switch e := expr.(type) {
	case *parser.IntLiteral:
		g.emitf("MOV X1, #%s", e.Digits)
		g.push("X1")
		return nil

	case *parser.BoolLiteral:
		value := 0
		if e.Value {
			value = 1
		}
		g.emitf("MOV X1, #%d", value)
		g.push("X1")
		return nil

	case *parser.Identifier:
		v := g.locals.lookup(e.Name)
		if v == nil {
			return fmt.Errorf("undefined variable %q at line %d", e.Name, e.Line)
		}
		offset := (g.locals.depth - v.SlotIndex) * 16
		g.emitf("LDP X1, X2, [SP, #%d]", offset)
		g.push("X1")
		return nil

	case *parser.GroupedExpr:
		return g.genExpression(e.Expr)

	case *parser.CallExpr:
		// X29 carries the link register across the call
		g.emit("MOV X29, X30")
		g.emitf("BL _%s", e.Name)
		g.emit("MOV X30, X29")
		g.push("X0")
		return nil

	case *parser.BinaryExpr:
		return g.genBinary(e)

	default:
		return fmt.Errorf("unsupported expression %T", expr)
	}
}

// genBinary evaluates both operands, pops RHS into X2 and LHS into X1, and
// applies the operator. The And/Or sequences use CMN as a zero test and
// assume 0/1 operands.
func (g *Generator) genBinary(e *parser.BinaryExpr) error {
	if err := g.genExpression(e.LHS); err != nil {
		return err
	}
	if err := g.genExpression(e.RHS); err != nil {
		return err
	}
	g.pop("X2")
	g.pop("X1")

	switch e.Op {
	case parser.OpAdd:
		g.emit("ADD X1, X1, X2")
		g.push("X1")

	case parser.OpSubtract:
		g.emit("SUBS X1, X1, X2")
		g.push("X1")

	case parser.OpMultiply:
		g.emit("MUL X1, X1, X2")
		g.push("X1")

	case parser.OpDivision:
		g.emit("SDIV X1, X1, X2")
		g.push("X1")

	case parser.OpEquality:
		// CSET eq reads the zero flag set by the subtraction
		g.emit("SUBS X1, X1, X2")
		g.emit("CSET X1, eq")
		g.push("X1")

	case parser.OpGreaterThan:
		g.emit("CMP X1, X2")
		g.emit("CSET X1, gt")
		g.push("X1")

	case parser.OpLessThan:
		g.emit("CMP X1, X2")
		g.emit("CSET X1, lt")
		g.push("X1")

	case parser.OpGreaterThanEqual:
		g.emit("CMP X1, X2")
		g.emit("CSET X1, ge")
		g.push("X1")

	case parser.OpLessThanEqual:
		g.emit("CMP X1, X2")
		g.emit("CSET X1, le")
		g.push("X1")

	case parser.OpOr:
		g.emit("MOV X0, #0")
		g.emit("CMN X1, X2")
		g.emit("CSET X0, NE")
		g.emit("ORR X0, X0, X2")
		g.push("X0")

	case parser.OpAnd:
		g.emit("MOV X3, #0")
		g.emit("MOV X4, #0")
		g.emit("CMN X1, X2")
		g.emit("CSET X3, NE")
		g.emit("CMN X1, X1")
		g.emit("CSET X4, NE")
		g.emit("AND X3, X3, X4")
		g.push("X3")

	default:
		return fmt.Errorf("unsupported operator %s", e.Op)
	}

	return nil
}
