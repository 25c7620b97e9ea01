/*
Package compiler wires the SPL pipeline stages together: lexer, SLR
acceptance gate, AST builder, symbol table builder, type checker, code
generator and label resolver (§3). Compile owns every per-compilation
counter — node ids, symbol ids, temporaries and labels are all rooted
in objects constructed fresh for this one call, never in a package
global (§5).
*/
package compiler

import (
	"fmt"

	"github.com/splc-lang/splc/internal/ast"
	"github.com/splc-lang/splc/internal/codegen"
	"github.com/splc-lang/splc/internal/grammar"
	"github.com/splc-lang/splc/internal/resolve"
	"github.com/splc-lang/splc/internal/slr"
	"github.com/splc-lang/splc/internal/symtab"
	"github.com/splc-lang/splc/internal/token"
	"github.com/splc-lang/splc/internal/types"
)

// Stage names one pipeline stage, for diagnostics.
type Stage string

const (
	StageLex       Stage = "lex"
	StageParse     Stage = "parse"
	StageAST       Stage = "ast"
	StageSymtab    Stage = "symtab"
	StageTypeCheck Stage = "typecheck"
)

// Error wraps a stage failure with the stage it occurred in, so a
// driver can print "stage: message" (and, for lex/parse errors, a
// position) per §6.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is everything a successful compilation produced, kept around
// for callers that want more than the final text (a --dump-ast flag,
// for instance).
type Result struct {
	Program *ast.Node
	Table   *symtab.Table
	Report  *types.Report
	IR      []string
	Output  string
}

// Compile runs the full pipeline over src and returns the final
// line-numbered BASIC text (and the intermediate artifacts), or the
// first stage failure. step is the label resolver's line-number
// increment; 0 selects resolve.DefaultStep.
func Compile(src string, step int) (*Result, error) {
	toks, err := token.New(src).All()
	if err != nil {
		return nil, &Error{Stage: StageLex, Err: err}
	}
	toks = append(toks, token.Token{Kind: token.EOF})

	g := grammar.SPL()
	cfsm := slr.BuildCFSM(g)
	tables, err := slr.BuildTables(g, cfsm, slr.NewSets(g))
	if err != nil {
		// the fixed SPL grammar is known free of reduce/reduce
		// conflicts (internal/slr/spl_grammar_test.go); a failure here
		// means the grammar definition itself regressed.
		return nil, &Error{Stage: StageParse, Err: err}
	}
	parser := slr.NewParser(tables, int(cfsm.S0.ID))
	accepted, _, err := parser.Parse(toks)
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	if !accepted {
		return nil, &Error{Stage: StageParse, Err: fmt.Errorf("input rejected")}
	}

	program, err := ast.New(toks).Build()
	if err != nil {
		return nil, &Error{Stage: StageAST, Err: err}
	}

	table, err := symtab.Build(program)
	if err != nil {
		return nil, &Error{Stage: StageSymtab, Err: err}
	}

	report := types.NewChecker(table).Check(program)
	if !report.Empty() {
		return nil, &Error{Stage: StageTypeCheck, Err: fmt.Errorf("%s", report.String())}
	}

	ir := codegen.NewGenerator(table).Generate(program)
	output := resolve.Resolve(ir, step)

	return &Result{Program: program, Table: table, Report: report, IR: ir, Output: output}, nil
}
