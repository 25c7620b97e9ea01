/*
Package splc is a compiler for SPL, a small imperative language with
global variables, procedures, functions, structured control flow and
bounded parameter/local lists. It translates SPL source text into
line-numbered BASIC.

The pipeline is a strict linear dataflow, one package per stage:

■ internal/token: a hand-written, stream-oriented lexer.

■ internal/grammar + internal/slr: a table-driven SLR(1) parser
generator and driver, used as an acceptance gate ahead of the AST
builder.

■ internal/ast: a recursive-descent builder producing a typed,
identified tree.

■ internal/symtab: a lexically-scoped symbol table built from the AST.

■ internal/types: a type checker enforcing SPL's numeric/boolean
discipline.

■ internal/codegen: a three-address-style code generator emitting
labeled pseudo-BASIC.

■ internal/resolve: a label-resolution backend assigning line numbers.

internal/compiler wires the stages together; cmd/splc is the CLI
driver.
*/
package splc
