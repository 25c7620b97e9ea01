package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splc-lang/splc/internal/ast"
	"github.com/splc-lang/splc/internal/token"
)

func build(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks, err := token.New(src).All()
	require.NoError(t, err)
	toks = append(toks, token.Token{Kind: token.EOF})
	n, err := ast.New(toks).Build()
	require.NoError(t, err)
	return n
}

func TestBuilder_MinimalProgram(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { } halt }`)
	require.Equal(t, ast.Program, n.Kind)
	require.Len(t, n.Children, 4)

	globals, procs, funcs, main := n.Child(0), n.Child(1), n.Child(2), n.Child(3)
	assert.Equal(t, ast.Globals, globals.Kind)
	assert.Empty(t, globals.Children)
	assert.Equal(t, ast.Procs, procs.Kind)
	assert.Empty(t, procs.Children)
	assert.Equal(t, ast.Funcs, funcs.Kind)
	assert.Empty(t, funcs.Children)
	require.Equal(t, ast.Main, main.Kind)

	vars, algo := main.Child(0), main.Child(1)
	assert.Equal(t, ast.Vars, vars.Kind)
	require.Equal(t, ast.Algo, algo.Kind)
	require.Len(t, algo.Children, 1)
	assert.Equal(t, ast.Halt, algo.Child(0).Kind)
}

func TestBuilder_AssignAndPrint(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { x } x = 42 ; print x }`)
	algo := n.Child(3).Child(1)
	require.Len(t, algo.Children, 2)

	assign := algo.Child(0)
	require.Equal(t, ast.Assign, assign.Kind)
	require.Len(t, assign.Children, 2)
	assert.Equal(t, ast.Var, assign.Child(0).Kind)
	assert.Equal(t, "x", assign.Child(0).Value)
	assert.Equal(t, ast.Number, assign.Child(1).Kind)
	assert.Equal(t, "42", assign.Child(1).Value)

	print := algo.Child(1)
	require.Equal(t, ast.Print, print.Kind)
	require.Len(t, print.Children, 1)
	assert.Equal(t, ast.Var, print.Child(0).Kind)
}

func TestBuilder_IfElse(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { x } x = 0 ; if (x > 0) { print 1 } else { print 0 } }`)
	algo := n.Child(3).Child(1)
	branch := algo.Child(1)
	require.Equal(t, ast.Branch, branch.Kind)
	ifNode := branch.Child(0)
	require.Equal(t, ast.If, ifNode.Kind)
	require.Len(t, ifNode.Children, 3)

	cond := ifNode.Child(0)
	require.Equal(t, ast.Binop, cond.Kind)
	assert.Equal(t, ">", cond.Value)
	assert.Equal(t, ast.Var, cond.Child(0).Kind)
	assert.Equal(t, ast.Number, cond.Child(1).Kind)

	thenAlgo, elseAlgo := ifNode.Child(1), ifNode.Child(2)
	assert.Equal(t, ast.Algo, thenAlgo.Kind)
	assert.Equal(t, ast.Algo, elseAlgo.Kind)
}

func TestBuilder_IfWithoutElse(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { } if (1 > 0) { halt } }`)
	algo := n.Child(3).Child(1)
	ifNode := algo.Child(0).Child(0)
	require.Len(t, ifNode.Children, 2)
}

func TestBuilder_WhileLoop(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { c } c = 6 ; while (c > 5) { print c ; c = (c plus 1) } }`)
	algo := n.Child(3).Child(1)
	loop := algo.Child(1)
	require.Equal(t, ast.Loop, loop.Kind)
	while := loop.Child(0)
	require.Equal(t, ast.While, while.Kind)
	require.Len(t, while.Children, 2)
	innerAlgo := while.Child(1)
	require.Len(t, innerAlgo.Children, 2)

	assignInstr := innerAlgo.Child(1)
	binop := assignInstr.Child(1)
	require.Equal(t, ast.Binop, binop.Kind)
	assert.Equal(t, "plus", binop.Value)
}

func TestBuilder_DoUntilLoop(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { c } c = 0 ; do { c = (c plus 1) } until (c eq 3) }`)
	algo := n.Child(3).Child(1)
	loop := algo.Child(1)
	doUntil := loop.Child(0)
	require.Equal(t, ast.DoUntil, doUntil.Kind)
	require.Len(t, doUntil.Children, 2)
	assert.Equal(t, ast.Algo, doUntil.Child(0).Kind)
	assert.Equal(t, ast.Binop, doUntil.Child(1).Kind)
}

func TestBuilder_UnopTerm(t *testing.T) {
	n := build(t, `glob { } proc { } func { } main { var { x } x = (neg 1) }`)
	algo := n.Child(3).Child(1)
	assign := algo.Child(0)
	unop := assign.Child(1)
	require.Equal(t, ast.Unop, unop.Kind)
	assert.Equal(t, "neg", unop.Value)
	require.Len(t, unop.Children, 1)
}

func TestBuilder_ProcAndCall(t *testing.T) {
	n := build(t, `glob { g } proc { p ( a b ) { local { t } halt } } func { } main { var { } p ( g g ) }`)
	procs := n.Child(1)
	require.Len(t, procs.Children, 1)
	proc := procs.Child(0)
	require.Equal(t, ast.Proc, proc.Kind)
	assert.Equal(t, "p", proc.Value)
	require.Len(t, proc.Children, 3) // a, b, BODY
	assert.Equal(t, ast.Var, proc.Child(0).Kind)
	assert.Equal(t, ast.Var, proc.Child(1).Kind)
	body := proc.Child(2)
	require.Equal(t, ast.Body, body.Kind)
	locals := body.Child(0)
	require.Equal(t, ast.LocalsBlock, locals.Kind)
	require.Len(t, locals.Children, 1)

	mainAlgo := n.Child(3).Child(1)
	call := mainAlgo.Child(0)
	require.Equal(t, ast.Call, call.Kind)
	assert.Equal(t, "p", call.Value)
	input := call.Child(0)
	require.Equal(t, ast.Input, input.Kind)
	require.Len(t, input.Children, 2)
}

func TestBuilder_FuncWithReturnAppearsTwice(t *testing.T) {
	n := build(t, `glob { } proc { } func { f ( x ) { local { } t = 1 ; return t } } main { var { r } r = f ( r ) }`)
	funcs := n.Child(2)
	require.Len(t, funcs.Children, 1)
	fn := funcs.Child(0)
	require.Equal(t, ast.Func, fn.Kind)
	require.Len(t, fn.Children, 3) // x (param), BODY, trailing return ATOM

	body := fn.Child(1)
	algo := body.Child(1)
	require.Len(t, algo.Children, 2) // t = 1 ; RETURN
	retInstr := algo.Child(1)
	require.Equal(t, ast.Return, retInstr.Kind)
	require.Len(t, retInstr.Children, 1)

	returnAtomInBody := retInstr.Child(0)
	returnAtomOnFunc := fn.Child(2)
	assert.Equal(t, returnAtomInBody.Kind, returnAtomOnFunc.Kind)
	assert.Equal(t, returnAtomInBody.Value, returnAtomOnFunc.Value)
	assert.NotEqual(t, returnAtomInBody.ID, returnAtomOnFunc.ID, "return atom must be two distinct owned nodes")

	mainAlgo := n.Child(3).Child(1)
	assignCall := mainAlgo.Child(0)
	require.Equal(t, ast.AssignCall, assignCall.Kind)
	assert.Equal(t, "f", assignCall.Value)
	assert.Equal(t, ast.Var, assignCall.Child(0).Kind)
	assert.Equal(t, "r", assignCall.Child(0).Value)
	input := assignCall.Child(1)
	require.Equal(t, ast.Input, input.Kind)
	require.Len(t, input.Children, 1)
}

func TestBuilder_NodeIDsAreUniqueAndFreshPerBuilder(t *testing.T) {
	toks, err := token.New(`glob { a } proc { } func { } main { var { } halt }`).All()
	require.NoError(t, err)
	toks = append(toks, token.Token{Kind: token.EOF})

	n1, err := ast.New(toks).Build()
	require.NoError(t, err)
	n2, err := ast.New(toks).Build()
	require.NoError(t, err)

	assert.Equal(t, n1.Child(0).Child(0).ID, n2.Child(0).Child(0).ID,
		"a fresh Builder restarts its id counter, so two independent builds over identical input assign identical ids")

	seen := map[int64]bool{}
	var walk func(*ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		assert.False(t, seen[n.ID], "node id %d reused within one tree", n.ID)
		seen[n.ID] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n1)
}

func TestBuilder_NodeSpanCoversWholeSubtree(t *testing.T) {
	toks, err := token.New(`glob { } proc { } func { } main { var { x } x = 1 }`).All()
	require.NoError(t, err)
	toks = append(toks, token.Token{Kind: token.EOF})

	program, err := ast.New(toks).Build()
	require.NoError(t, err)

	main := program.Child(3)
	algo := main.Child(1)
	assign := algo.Child(0)
	ident, term := assign.Child(0), assign.Child(1)

	assert.Equal(t, ident.Span.From, assign.Span.From, "assign's span starts at its own leading token")
	assert.Equal(t, term.Span.To, assign.Span.To, "assign's span must extend to cover its trailing term")
	assert.Greater(t, assign.Span.To, assign.Span.From, "a multi-token node's span must not be empty")
}

func TestBuilder_RejectsMismatchedInput(t *testing.T) {
	toks, err := token.New(`glob { } proc { } func { } main { var { } x = }`).All()
	require.NoError(t, err)
	toks = append(toks, token.Token{Kind: token.EOF})
	_, err = ast.New(toks).Build()
	require.Error(t, err)
	var astErr *ast.Error
	require.ErrorAs(t, err, &astErr)
}

func TestBuilder_RejectsTooManyParams(t *testing.T) {
	toks, err := token.New(`glob { } proc { p ( a b c d ) { local { } halt } } func { } main { var { } halt }`).All()
	require.NoError(t, err)
	toks = append(toks, token.Token{Kind: token.EOF})
	_, err = ast.New(toks).Build()
	require.Error(t, err)
}
