/*
Package ast implements the SPL abstract syntax tree: a closed
enumeration of node shapes (§4.3 of the specification) built by a
recursive-descent Builder over the same token sequence the SLR parser
in internal/slr has already validated.

Nodes form an owned tree — a parent's Children slice is the sole
reference to each child — and every node receives a fresh id at
construction, unique for the lifetime of one Builder (one
compilation). Builder never uses a package-level counter, per the
specification's concurrency model (§5): each Builder numbers its nodes
from 1, so two Builders over the same tokens assign the same ids.
*/
package ast

import (
	"fmt"

	"github.com/splc-lang/splc"
)

// Kind is the closed set of AST node shapes.
type Kind string

const (
	Program     Kind = "PROGRAM"
	Globals     Kind = "GLOBALS"
	Procs       Kind = "PROCS"
	Funcs       Kind = "FUNCS"
	Main        Kind = "MAIN"
	Vars        Kind = "VARS"
	Proc        Kind = "PROC"
	Func        Kind = "FUNC"
	Body        Kind = "BODY"
	LocalsBlock Kind = "LOCALS_BLOCK"
	Algo        Kind = "ALGO"

	Halt       Kind = "HALT"
	Print      Kind = "PRINT"
	Assign     Kind = "ASSIGN"
	AssignCall Kind = "ASSIGN_CALL"
	Call       Kind = "CALL"
	Loop       Kind = "LOOP"
	Branch     Kind = "BRANCH"
	Return     Kind = "RETURN"

	While   Kind = "WHILE"
	DoUntil Kind = "DO_UNTIL"
	If      Kind = "IF"
	Input   Kind = "INPUT"

	// Var is used both for declaration sites (GLOBALS/VARS/param and
	// local lists) and for ATOM ::= VAR references; tree position
	// disambiguates the two, not the kind.
	Var       Kind = "VAR"
	Number    Kind = "NUMBER"
	StringLit Kind = "STRINGLIT"
	Unop      Kind = "UNOP"
	Binop     Kind = "BINOP"
)

// Node is a single AST node: an id, a kind, an optional scalar value
// (a name or a literal), and an owned sequence of children. Span
// covers the node's own token plus every child's Span, so a diagnostic
// anchored on an inner node (say, a BINOP deep in a TERM) can still
// report the full range of source it was built from.
type Node struct {
	ID       int64
	Kind     Kind
	Value    string
	Children []*Node
	splc.Position
	Span splc.Span
}

func (n *Node) String() string {
	if n.Value != "" {
		return fmt.Sprintf("%s(%q)", n.Kind, n.Value)
	}
	return string(n.Kind)
}

// Child returns the i-th child, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}
