/*
Package types implements the SPL type checker: a tree walker over an
AST (internal/ast) and its symbol table (internal/symtab) that assigns
each expression a type in {numeric, boolean}, checks every rule in the
specification's type system, and accumulates diagnostics into a
Report rather than failing on the first one.
*/
package types

import (
	"fmt"

	"github.com/splc-lang/splc"
)

// Type is one of the two expression types SPL recognizes.
type Type string

const (
	Numeric Type = "numeric"
	Boolean Type = "boolean"
)

// TypeError is a single accumulated diagnostic from the checker.
type TypeError struct {
	Message string
	splc.Position
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s: %s", e.Position, e.Message)
}

// Report collects every TypeError raised during one Check call. The
// walk never stops at the first error (§4.5): callers should inspect
// Empty() after Check returns to decide whether to proceed to code
// generation.
type Report struct {
	Errors []*TypeError
}

func (r *Report) add(e *TypeError) {
	r.Errors = append(r.Errors, e)
}

// Empty reports whether no errors were recorded.
func (r *Report) Empty() bool {
	return len(r.Errors) == 0
}

func (r *Report) String() string {
	if r.Empty() {
		return "<no type errors>"
	}
	s := ""
	for _, e := range r.Errors {
		s += e.Error() + "\n"
	}
	return s
}
