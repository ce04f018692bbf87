package codegen

import (
	"fmt"
	"strings"

	"github.com/hydrogen-lang/hydrogen-compiler/parser"
)

// Generator walks the AST and emits AArch64 (Darwin) assembly text. All
// stack traffic happens in 16-byte slots to keep SP aligned; the tracked
// depth in locals mirrors how many slots the emitted code will have pushed
// at runtime.
type Generator struct {
	buffer     strings.Builder
	labelIndex int
	locals     *FunctionLocals
	funcName   string
	comments   bool
}

// New creates a new generator
func New() *Generator {
	return &Generator{comments: true}
}

// SetComments controls whether ; commentary is interleaved in the output
func (g *Generator) SetComments(enabled bool) {
	g.comments = enabled
}

// Generate emits the assembly for a whole program
func (g *Generator) Generate(prog *parser.Program) (string, error) {
	g.emit(".global _start")
	g.emit(".align 2")

	for _, fn := range prog.Functions {
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}

	return g.buffer.String(), nil
}

// emit appends one line of assembly
func (g *Generator) emit(line string) {
	g.buffer.WriteString(line)
	g.buffer.WriteByte('\n')
}

// emitf appends one formatted line of assembly
func (g *Generator) emitf(format string, args ...any) {
	g.emit(fmt.Sprintf(format, args...))
}

// comment appends a ; comment line when commentary is enabled
func (g *Generator) comment(format string, args ...any) {
	if g.comments {
		g.emitf("; "+format, args...)
	}
}

// newLabel allocates a label name unique within the output file
func (g *Generator) newLabel() string {
	label := fmt.Sprintf("label%d", g.labelIndex)
	g.labelIndex++
	return label
}

// push stores a register into a fresh 16-byte slot. X9 fills the unused
// half of the pair.
func (g *Generator) push(reg string) {
	g.emitf("STP %s, X9, [SP, #-16]!", reg)
	g.locals.depth++
	g.comment("stack depth %d", g.locals.depth)
}

// pop loads the top slot into a register and releases it
func (g *Generator) pop(reg string) {
	g.emitf("LDP %s, X9, [SP], #16", reg)
	g.locals.depth--
	g.comment("stack depth %d", g.locals.depth)
}

// clearStack releases the given number of slots in one SP adjustment
func (g *Generator) clearStack(slots int) {
	g.emitf("ADD SP, SP, #%d", slots*16)
	g.locals.depth -= slots
}

// genFunction emits one function. main becomes the _start entry point and
// exits through a syscall; every other function gets a _name label and a
// trailing RET.
func (g *Generator) genFunction(fn *parser.Function) error {
	g.funcName = fn.Name
	g.locals = newFunctionLocals()

	if fn.Name == "main" {
		g.emit("_start:")
	} else {
		g.emitf("_%s:", fn.Name)
	}

	for _, stmt := range fn.Body {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}

	// Coarse teardown: release every slot the function still holds
	g.emitf("ADD SP, SP, #%d", g.locals.depth*16)
	if fn.Name != "main" {
		g.emit("RET")
	}
	return nil
}

// genStatement emits one statement
func (g *Generator) genStatement(stmt parser.Statement) error {
	switch s := stmt.(type) {
	case *parser.LetStatement:
		return g.genLet(s)
	case *parser.ReAssignStatement:
		return g.genReAssign(s)
	case *parser.ReturnStatement:
		return g.genReturn(s)
	case *parser.BlockStatement:
		return g.genBlock(s)
	case *parser.IfStatement:
		return g.genIf(s)
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

// genLet evaluates the initializer, leaving its value as the variable's
// slot, then records the binding
func (g *Generator) genLet(s *parser.LetStatement) error {
	name := s.Name.Literal
	g.comment("let %s", name)

	if prev := g.locals.lookupCurrent(name); prev != nil {
		return fmt.Errorf("%q already defined at line %d", name, prev.Line)
	}
	if err := g.genExpression(s.Expr); err != nil {
		return err
	}
	g.locals.declare(name, s.Name.Line)
	return nil
}

// genReAssign evaluates the new value and stores it into the variable's
// existing slot
func (g *Generator) genReAssign(s *parser.ReAssignStatement) error {
	name := s.Name.Literal
	g.comment("reassign %s", name)

	v := g.locals.lookup(name)
	if v == nil {
		return fmt.Errorf("undefined variable %q at line %d", name, s.Name.Line)
	}
	offset := (g.locals.depth - v.SlotIndex) * 16
	if err := g.genExpression(s.Expr); err != nil {
		return err
	}
	g.pop("X1")
	g.emitf("STP X1, X2, [SP, #%d]", offset)
	return nil
}

// genReturn loads the return value into X0. In main the process exits
// right here; elsewhere execution falls through to the function teardown
// and RET.
func (g *Generator) genReturn(s *parser.ReturnStatement) error {
	g.comment("return")
	if err := g.genExpression(s.Expr); err != nil {
		return err
	}
	g.pop("X0")
	if g.funcName == "main" {
		g.emit("mov X16, #1")
		g.emit("svc #0x80")
	}
	return nil
}

// genBlock emits a nested scope, releasing its slots on exit
func (g *Generator) genBlock(s *parser.BlockStatement) error {
	g.locals.pushScope()
	begin := g.locals.depth

	for _, stmt := range s.Statements {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}

	g.clearStack(g.locals.depth - begin)
	g.locals.popScope()
	return nil
}

// genIf emits a conditional chain. normalLabel is the code after the whole
// chain; each branch that runs jumps there when it finishes.
func (g *Generator) genIf(s *parser.IfStatement) error {
	g.comment("if")
	normalLabel := g.newLabel()
	nextLabel := g.newLabel()

	if err := g.genExpression(s.Cond); err != nil {
		return err
	}
	g.pop("X1")
	g.emit("cmp X1, 0")
	g.emitf("b.eq %s", nextLabel)
	if err := g.genBlock(s.Then); err != nil {
		return err
	}
	g.branchTo(normalLabel)
	g.emitf("%s:", nextLabel)
	if err := g.genElse(s.Chain, normalLabel); err != nil {
		return err
	}
	g.emitf("%s:", normalLabel)
	return nil
}

// genElse emits the else-if/else chain of a conditional
func (g *Generator) genElse(chain parser.ElseNode, normalLabel string) error {
	switch c := chain.(type) {
	case nil:
		return nil

	case *parser.ElseIfClause:
		g.comment("else if")
		if err := g.genExpression(c.Cond); err != nil {
			return err
		}
		g.pop("X1")
		nextLabel := g.newLabel()
		g.emit("cmp X1, 0")
		g.emitf("b.eq %s", nextLabel)
		if err := g.genBlock(c.Block); err != nil {
			return err
		}
		g.branchTo(normalLabel)
		g.emitf("%s:", nextLabel)
		return g.genElse(c.Chain, normalLabel)

	case *parser.ElseClause:
		g.comment("else")
		return g.genBlock(c.Block)

	default:
		return fmt.Errorf("unsupported else node %T", chain)
	}
}

// branchTo emits an unconditional branch encoded as an always-true b.eq
func (g *Generator) branchTo(label string) {
	g.emit("MOV X2, 0")
	g.emit("cmp X2, 0")
	g.emitf("b.eq %s", label)
}
