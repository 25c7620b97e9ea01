package symtab

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/splc-lang/splc/internal/ast"
)

// Table is the result of walking a PROGRAM tree: the "everywhere" root
// scope and convenient handles onto the fixed scopes beneath it (§4.4).
type Table struct {
	Root   *Scope
	Global *Scope
	Procs  map[string]*Scope
	Funcs  map[string]*Scope
	Main   *Scope

	// callables holds procedure/function names outside any scope's
	// lookup chain: a name here must stay absent from every Scope's
	// symbol map, or the "typeless callee" rule in the type checker
	// could never hold for a call to it.
	callables map[string]Category
}

// Build walks program top-down, creating the fixed "everywhere" /
// "global" / ("proc <name>" | "func <name>" | "main") nesting —
// proc/func/main scopes are children of "global", not siblings of it,
// so an unshadowed global name resolves from anywhere via the
// ordinary ancestor walk — and declaring every name in GLOBALS, each
// PDEF/FDEF's params and locals, and MAIN's VARS. It returns the first
// *DuplicateNameError it encounters, in tree order.
func Build(program *ast.Node) (*Table, error) {
	if program.Kind != ast.Program {
		return nil, fmt.Errorf("symtab: Build expects a PROGRAM node, got %s", program.Kind)
	}
	t := &Table{
		Procs:     make(map[string]*Scope),
		Funcs:     make(map[string]*Scope),
		callables: make(map[string]Category),
	}
	t.Root = newScope("everywhere", nil)

	globals := program.Child(0)
	t.Global = newScope("global", t.Root)
	for _, v := range globals.Children {
		if _, err := t.Global.Add(v.Value, CategoryVar, v.ID); err != nil {
			return nil, err
		}
	}

	procs := program.Child(1)
	for _, p := range procs.Children {
		scope, err := t.buildProc(p)
		if err != nil {
			return nil, err
		}
		t.Procs[p.Value] = scope
	}

	funcs := program.Child(2)
	for _, f := range funcs.Children {
		scope, err := t.buildFunc(f)
		if err != nil {
			return nil, err
		}
		t.Funcs[f.Value] = scope
	}

	main := program.Child(3)
	vars := main.Child(0)
	t.Main = newScope("main", t.Global)
	for _, v := range vars.Children {
		if _, err := t.Main.Add(v.Value, CategoryVar, v.ID); err != nil {
			return nil, err
		}
	}

	tracer().Debugf("symbol table built: %d procs, %d funcs", len(t.Procs), len(t.Funcs))
	return t, nil
}

func (t *Table) declareCallable(name string, cat Category) error {
	if _, exists := t.callables[name]; exists {
		return &DuplicateNameError{Name: name, Scope: "<procedures and functions>"}
	}
	t.callables[name] = cat
	return nil
}

// IsCallable reports whether name was declared as a PROC or FUNC.
func (t *Table) IsCallable(name string) bool {
	_, ok := t.callables[name]
	return ok
}

func (t *Table) buildProc(p *ast.Node) (*Scope, error) {
	if err := t.declareCallable(p.Value, CategoryProc); err != nil {
		return nil, err
	}
	scope := newScope("proc "+p.Value, t.Global)
	n := len(p.Children)
	params, body := p.Children[:n-1], p.Children[n-1]
	for _, param := range params {
		if _, err := scope.Add(param.Value, CategoryVar, param.ID); err != nil {
			return nil, err
		}
	}
	if err := t.buildBody(scope, body); err != nil {
		return nil, err
	}
	return scope, nil
}

func (t *Table) buildFunc(f *ast.Node) (*Scope, error) {
	if err := t.declareCallable(f.Value, CategoryFunc); err != nil {
		return nil, err
	}
	scope := newScope("func "+f.Value, t.Global)
	n := len(f.Children)
	// last child is the trailing return ATOM, second-to-last is BODY.
	params, body := f.Children[:n-2], f.Children[n-2]
	for _, param := range params {
		if _, err := scope.Add(param.Value, CategoryVar, param.ID); err != nil {
			return nil, err
		}
	}
	if err := t.buildBody(scope, body); err != nil {
		return nil, err
	}
	return scope, nil
}

func (t *Table) buildBody(parent *Scope, body *ast.Node) error {
	bodyScope := newScope("body", parent)
	locals := body.Child(0)
	for _, loc := range locals.Children {
		if _, err := bodyScope.Add(loc.Value, CategoryVar, loc.ID); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the scope tree with pterm, for CLI diagnostics.
func (t *Table) Dump() {
	pterm.DefaultTree.WithRoot(scopeTreeNode(t.Root)).Render()
}

func scopeTreeNode(s *Scope) pterm.TreeNode {
	node := pterm.TreeNode{Text: s.Name}
	for _, sym := range s.Symbols() {
		node.Children = append(node.Children, pterm.TreeNode{
			Text: fmt.Sprintf("%s (%s)", sym.Name, sym.Category),
		})
	}
	for _, c := range s.Children {
		node.Children = append(node.Children, scopeTreeNode(c))
	}
	return node
}

// String renders a deterministic, pterm-free textual dump, used where
// a plain string is wanted (tests, logs without a terminal).
func (t *Table) String() string {
	var b strings.Builder
	writeScope(&b, t.Root, 0)
	return b.String()
}

func writeScope(b *strings.Builder, s *Scope, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s\n", indent, s.Name)
	for _, sym := range s.Symbols() {
		fmt.Fprintf(b, "%s  %s (%s)\n", indent, sym.Name, sym.Category)
	}
	for _, c := range s.Children {
		writeScope(b, c, depth+1)
	}
}
