package slr

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splc-lang/splc/internal/grammar"
	"github.com/splc-lang/splc/internal/token"
)

func init() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelError)
}

// signedVarGrammar builds gorgo's own canonical example grammar:
//
//	S'   -> Var
//	Var  -> Sign a
//	Sign -> + | - | ε
func signedVarGrammar() *grammar.Grammar {
	b := grammar.NewBuilder("S'")
	b.Rule("S'").N("Var").End()
	b.Rule("Var").N("Sign").T("a").End()
	b.Rule("Sign").T("+").End()
	b.Rule("Sign").T("-").End()
	b.Rule("Sign").Epsilon()
	return b.Build()
}

func mustBuildTables(t *testing.T, g *grammar.Grammar) (*CFSM, *Tables) {
	t.Helper()
	cfsm := BuildCFSM(g)
	sets := NewSets(g)
	tables, err := BuildTables(g, cfsm, sets)
	require.NoError(t, err)
	return cfsm, tables
}

func toks(kinds ...string) []token.Token {
	out := make([]token.Token, len(kinds))
	for i, k := range kinds {
		out[i] = token.Token{Kind: token.Kind(k), Lexeme: k}
	}
	return out
}

func TestSLR_AcceptsPlainA(t *testing.T) {
	g := signedVarGrammar()
	cfsm, tables := mustBuildTables(t, g)
	p := NewParser(tables, int(cfsm.S0.ID))
	ok, _, err := p.Parse(toks("a", "$"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSLR_AcceptsSignedVariants(t *testing.T) {
	g := signedVarGrammar()
	cfsm, tables := mustBuildTables(t, g)
	for _, input := range [][]string{{"+", "a", "$"}, {"-", "a", "$"}, {"a", "$"}} {
		p := NewParser(tables, int(cfsm.S0.ID))
		ok, _, err := p.Parse(toks(input...))
		require.NoError(t, err)
		assert.True(t, ok, "input %v", input)
	}
}

func TestSLR_RejectsGarbage(t *testing.T) {
	g := signedVarGrammar()
	cfsm, tables := mustBuildTables(t, g)
	p := NewParser(tables, int(cfsm.S0.ID))
	_, _, err := p.Parse(toks("+", "+", "a", "$"))
	assert.Error(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestSLR_FirstAndFollow(t *testing.T) {
	g := signedVarGrammar()
	sets := NewSets(g)
	assert.ElementsMatch(t, []string{"+", "-", "a"}, withoutEpsilon(sets.First(g.Symbol("Var"))))
	sign := sets.First(g.Symbol("Sign"))
	assert.Contains(t, sign, epsilon)
	assert.Contains(t, sign, "+")
	assert.Contains(t, sign, "-")
	assert.ElementsMatch(t, []string{"a"}, sets.Follow(g.Symbol("Sign")))
}

func withoutEpsilon(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != epsilon {
			out = append(out, v)
		}
	}
	return out
}

func TestSLR_ReduceReduceConflictIsFatal(t *testing.T) {
	// Ambiguous grammar: S -> A | B ; A -> a ; B -> a, deliberately
	// constructed to force a reduce/reduce conflict at table-build time.
	b := grammar.NewBuilder("S'")
	b.Rule("S'").N("S").End()
	b.Rule("S").N("A").End()
	b.Rule("S").N("B").End()
	b.Rule("A").T("a").End()
	b.Rule("B").T("a").End()
	g := b.Build()

	cfsm := BuildCFSM(g)
	sets := NewSets(g)
	_, err := BuildTables(g, cfsm, sets)
	require.Error(t, err)
	var cerr *ConstructionError
	require.ErrorAs(t, err, &cerr)
}
