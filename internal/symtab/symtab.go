/*
Package symtab implements the SPL symbol table: a tree of lexically
nested scopes built top-down from an already-typed AST (internal/ast),
adapted from gorgo's runtime scope/symbol-table pair.

Build walks the program tree once, creating the fixed scope
nesting the specification demands — "everywhere" at the root, holding
"global", which in turn holds one "proc <name>"/"func <name>" scope
per definition (each with a nested "body" scope for its locals) and
"main" — and populates each scope's symbol map from its declaration
list. Nesting every other scope under "global", rather than beside it,
is what lets an unshadowed global variable resolve from main, a proc
or a func without being redeclared there. Building fails on the first
duplicate name within one scope.

Control-flow scopes (the ones IF/WHILE/DO_UNTIL push during type
checking) are not part of this tree; they are pushed and popped later,
directly on top of whichever declaration scope is current, by the type
checker's own scope stack.
*/
package symtab

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with the module's shared syntax tracer.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Category is the kind of thing a Symbol denotes.
type Category string

const (
	CategoryVar  Category = "var"
	CategoryProc Category = "proc"
	CategoryFunc Category = "func"
)

// Symbol is a single declared variable. Procedure and function names
// get no Symbol: Table.declareCallable records only their Category,
// outside every scope's lookup chain.
type Symbol struct {
	Name     string
	Category Category
	Scope    *Scope
	NodeID   int64
	Extras   map[string]string
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s:%s#%d", s.Category, s.Name, s.NodeID)
}

// DuplicateNameError is raised by Scope.Add when a name is declared
// twice within the same scope ("name rule violation", §4.4).
type DuplicateNameError struct {
	Name  string
	Scope string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name rule violation: %q already declared in scope %q", e.Name, e.Scope)
}
