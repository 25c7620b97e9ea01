/*
Splc compiles an SPL source file into a line-numbered pseudo-BASIC
program.

Usage:

	splc compile <input-file> <output-bas> [flags]

The flags are:

	-step int
		Line-number increment for the resolved output (0 selects the
		default of 10).
	-dump-ast
		Print the built AST tree before compiling.
	-dump-symbols
		Print the symbol table tree before type checking.
	-trace string
		Trace level [Debug|Info|Error] (default "Error").

Exit code is 0 on success and non-zero on any stage failure; a
diagnostic naming the failing stage, its message, and (for lex/parse
failures) a source position is printed to stderr.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/splc-lang/splc/internal/ast"
	"github.com/splc-lang/splc/internal/compiler"
	"github.com/splc-lang/splc/internal/slr"
	"github.com/splc-lang/splc/internal/symtab"
	"github.com/splc-lang/splc/internal/token"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitFailure = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("splc", flag.ContinueOnError)
	step := fs.Int("step", 0, "line-number increment for the resolved output (0 selects the default of 10)")
	dumpAST := fs.Bool("dump-ast", false, "print the built AST tree before compiling")
	dumpSymbols := fs.Bool("dump-symbols", false, "print the symbol table tree before type checking")
	trace := fs.String("trace", "Error", "trace level [Debug|Info|Error]")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(*trace))

	rest := fs.Args()
	if len(rest) != 3 || rest[0] != "compile" {
		fmt.Fprintln(os.Stderr, "usage: splc compile <input-file> <output-bas>")
		return exitUsage
	}
	inputPath, outputPath := rest[1], rest[2]

	src, err := os.ReadFile(inputPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitFailure
	}

	if *dumpAST || *dumpSymbols {
		if code := dump(string(src), *dumpAST, *dumpSymbols); code != exitSuccess {
			return code
		}
	}

	res, err := compiler.Compile(string(src), *step)
	if err != nil {
		reportFailure(err)
		return exitFailure
	}

	if err := os.WriteFile(outputPath, []byte(res.Output), 0o644); err != nil {
		pterm.Error.Println(err.Error())
		return exitFailure
	}
	pterm.Success.Printf("compiled %s -> %s (%d lines)\n", inputPath, outputPath, len(res.IR))
	return exitSuccess
}

// dump compiles just far enough to satisfy the requested debug dumps,
// printing them as it goes; a failure part-way through is reported the
// same way a normal compile failure would be.
func dump(src string, dumpAST, dumpSymbols bool) int {
	toks, err := token.New(src).All()
	if err != nil {
		reportFailure(&compiler.Error{Stage: compiler.StageLex, Err: err})
		return exitFailure
	}
	toks = append(toks, token.Token{Kind: token.EOF})

	program, err := ast.New(toks).Build()
	if err != nil {
		reportFailure(&compiler.Error{Stage: compiler.StageAST, Err: err})
		return exitFailure
	}
	if dumpAST {
		pterm.DefaultTree.WithRoot(astTreeNode(program)).Render()
	}

	if dumpSymbols {
		table, err := symtab.Build(program)
		if err != nil {
			reportFailure(&compiler.Error{Stage: compiler.StageSymtab, Err: err})
			return exitFailure
		}
		table.Dump()
	}
	return exitSuccess
}

func astTreeNode(n *ast.Node) pterm.TreeNode {
	node := pterm.TreeNode{Text: n.String()}
	for _, c := range n.Children {
		node.Children = append(node.Children, astTreeNode(c))
	}
	return node
}

func reportFailure(err error) {
	var lexErr *token.LexError
	var synErr *slr.SyntaxError
	var astErr *ast.Error
	switch {
	case errors.As(err, &lexErr):
		pterm.Error.Printf("%d:%d: %s\n", lexErr.Line, lexErr.Column, err.Error())
	case errors.As(err, &synErr):
		pterm.Error.Printf("%d:%d: %s\n", synErr.Lookahead.Line, synErr.Lookahead.Column, err.Error())
	case errors.As(err, &astErr):
		pterm.Error.Printf("%d:%d: %s\n", astErr.Line, astErr.Column, err.Error())
	default:
		pterm.Error.Println(err.Error())
	}
}
