package types

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/splc-lang/splc/internal/ast"
	"github.com/splc-lang/splc/internal/symtab"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// The three binary-operator families named in §4.5's typing rules, held
// as fixed small slices rather than a map since membership (not lookup)
// is all a typing rule needs.
var (
	arithBinops = []string{"plus", "minus", "mult", "div"}
	boolBinops  = []string{"and", "or"}
	relBinops   = []string{"eq", ">"}
)

// Checker walks a PROGRAM tree carrying a stack of scopes, checking
// every rule in §4.5 and accumulating diagnostics into a Report.
type Checker struct {
	table  *symtab.Table
	scopes []*symtab.Scope
	report *Report
}

// NewChecker creates a Checker bound to a previously built symbol
// table.
func NewChecker(table *symtab.Table) *Checker {
	return &Checker{table: table}
}

// Check type-checks every PROC, FUNC and MAIN's algorithm in program,
// returning the accumulated Report. Compilation should proceed to code
// generation only if Report.Empty().
func (c *Checker) Check(program *ast.Node) *Report {
	c.report = &Report{}
	for _, p := range program.Child(1).Children {
		c.checkProc(p)
	}
	for _, f := range program.Child(2).Children {
		c.checkFunc(f)
	}
	c.checkMain(program.Child(3))
	return c.report
}

func (c *Checker) push(s *symtab.Scope) {
	c.scopes = append(c.scopes, s)
	tracer().Debugf("type checker entering scope %s", s.Path())
}

func (c *Checker) pop() {
	s := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	tracer().Debugf("type checker leaving scope %s", s.Path())
}

func (c *Checker) current() *symtab.Scope {
	return c.scopes[len(c.scopes)-1]
}

func (c *Checker) errorAt(n *ast.Node, format string, args ...interface{}) {
	c.report.add(&TypeError{Message: fmt.Sprintf(format, args...), Position: n.Position})
}

func (c *Checker) checkProc(p *ast.Node) {
	name := p.Value
	if _, _, ok := c.table.Global.Lookup(name); ok {
		c.errorAt(p, "procedure name %q must be typeless", name)
	}
	procScope := c.table.Procs[name]
	body := p.Children[len(p.Children)-1]
	c.push(procScope)
	c.push(procScope.Children[0]) // body scope
	c.checkAlgo(body.Child(1))
	c.pop()
	c.pop()
}

func (c *Checker) checkFunc(f *ast.Node) {
	name := f.Value
	if _, _, ok := c.table.Global.Lookup(name); ok {
		c.errorAt(f, "function name %q must be typeless", name)
	}
	funcScope := c.table.Funcs[name]
	n := len(f.Children)
	body, returnAtom := f.Children[n-2], f.Children[n-1]

	c.push(funcScope)
	c.push(funcScope.Children[0]) // body scope
	c.checkAlgo(body.Child(1))
	if t := c.typeOfAtom(returnAtom); t != Numeric {
		c.errorAt(returnAtom, "function %q's return value must be numeric", name)
	}
	c.pop()
	c.pop()
}

func (c *Checker) checkMain(main *ast.Node) {
	c.push(c.table.Main)
	c.checkAlgo(main.Child(1))
	c.pop()
}

func (c *Checker) checkAlgo(algo *ast.Node) {
	for _, instr := range algo.Children {
		c.checkInstr(instr)
	}
}

func (c *Checker) checkInstr(instr *ast.Node) {
	switch instr.Kind {
	case ast.Halt:
		// nothing to check
	case ast.Print:
		arg := instr.Child(0)
		if arg.Kind != ast.StringLit {
			if t := c.typeOfAtom(arg); t != Numeric {
				c.errorAt(arg, "print argument must be a string or a numeric atom")
			}
		}
	case ast.Assign:
		c.checkAssign(instr.Child(0), instr.Child(1))
	case ast.Call:
		c.checkCall(instr, instr.Value, instr.Child(0))
	case ast.AssignCall:
		c.checkAssignTarget(instr.Child(0))
		c.checkCall(instr, instr.Value, instr.Child(1))
	case ast.Loop:
		c.checkLoop(instr.Child(0))
	case ast.Branch:
		c.checkBranch(instr.Child(0))
	case ast.Return:
		// only ever the synthetic trailing instruction a FDEF's
		// "return ATOM" suffix produces; checkFunc re-verifies the
		// paired FUNC-level atom separately.
		c.typeOfAtom(instr.Child(0))
	default:
		c.errorAt(instr, "unexpected node %s in instruction position", instr.Kind)
	}
}

func (c *Checker) checkAssignTarget(v *ast.Node) {
	if _, _, ok := c.current().Lookup(v.Value); !ok {
		c.errorAt(v, "assignment target %q is not a declared variable", v.Value)
	}
}

func (c *Checker) checkAssign(v, rhs *ast.Node) {
	c.checkAssignTarget(v)
	if t := c.typeOfTerm(rhs); t != Numeric {
		c.errorAt(rhs, "assignment right-hand side must be numeric")
	}
}

func (c *Checker) checkCall(at *ast.Node, name string, input *ast.Node) {
	if _, _, ok := c.current().Lookup(name); ok {
		c.errorAt(at, "callee %q must be typeless", name)
	}
	for _, a := range input.Children {
		if t := c.typeOfAtom(a); t != Numeric {
			c.errorAt(a, "call argument must be numeric")
		}
	}
}

func (c *Checker) checkLoop(loop *ast.Node) {
	switch loop.Kind {
	case ast.While:
		cond, body := loop.Child(0), loop.Child(1)
		if t := c.typeOfTerm(cond); t != Boolean {
			c.errorAt(cond, "while condition must be boolean")
		}
		c.push(symtab.NewAnonymousScope(c.current(), "while body"))
		c.checkAlgo(body)
		c.pop()
	case ast.DoUntil:
		body, cond := loop.Child(0), loop.Child(1)
		c.push(symtab.NewAnonymousScope(c.current(), "do body"))
		c.checkAlgo(body)
		c.pop()
		if t := c.typeOfTerm(cond); t != Boolean {
			c.errorAt(cond, "until condition must be boolean")
		}
	}
}

func (c *Checker) checkBranch(ifNode *ast.Node) {
	cond := ifNode.Child(0)
	if t := c.typeOfTerm(cond); t != Boolean {
		c.errorAt(cond, "if condition must be boolean")
	}
	c.push(symtab.NewAnonymousScope(c.current(), "then"))
	c.checkAlgo(ifNode.Child(1))
	c.pop()
	if len(ifNode.Children) == 3 {
		c.push(symtab.NewAnonymousScope(c.current(), "else"))
		c.checkAlgo(ifNode.Child(2))
		c.pop()
	}
}

func (c *Checker) typeOfAtom(n *ast.Node) Type {
	switch n.Kind {
	case ast.Var:
		if _, _, ok := c.current().Lookup(n.Value); !ok {
			c.errorAt(n, "undeclared variable %q", n.Value)
		}
		return Numeric
	case ast.Number:
		return Numeric
	default:
		c.errorAt(n, "expected an atom, got %s", n.Kind)
		return Numeric
	}
}

func (c *Checker) typeOfTerm(n *ast.Node) Type {
	switch n.Kind {
	case ast.Var, ast.Number:
		return c.typeOfAtom(n)
	case ast.Unop:
		operand := c.typeOfTerm(n.Child(0))
		switch n.Value {
		case "neg":
			if operand != Numeric {
				c.errorAt(n, "neg requires a numeric operand")
			}
			return Numeric
		case "not":
			if operand != Boolean {
				c.errorAt(n, "not requires a boolean operand")
			}
			return Boolean
		}
		return Numeric
	case ast.Binop:
		left, right := c.typeOfTerm(n.Child(0)), c.typeOfTerm(n.Child(1))
		switch {
		case slices.Contains(arithBinops, n.Value):
			if left != Numeric || right != Numeric {
				c.errorAt(n, "%s requires numeric operands", n.Value)
			}
			return Numeric
		case slices.Contains(boolBinops, n.Value):
			if left != Boolean || right != Boolean {
				c.errorAt(n, "%s requires boolean operands", n.Value)
			}
			return Boolean
		case slices.Contains(relBinops, n.Value):
			if left != Numeric || right != Numeric {
				c.errorAt(n, "%s requires numeric operands", n.Value)
			}
			return Boolean
		}
		return Numeric
	default:
		c.errorAt(n, "expected a term, got %s", n.Kind)
		return Numeric
	}
}
