/*
Package grammar implements the data model for context-free grammars
used by the SLR(1) table generator in internal/slr: symbols, rules and
a grammar as a mapping from a start nonterminal to a set of productions.

Clients build a grammar with a Builder, in the style of gorgo's own
grammar builder (lr.NewGrammarBuilder):

	b := grammar.NewBuilder("S'")
	b.Rule("S'").N("SPL_PROG").End()
	b.Rule("SPL_PROG").T("glob").T("{").N("VARIABLES").T("}")...End()
	b.Rule("VARIABLES").Epsilon()
	b.Rule("VARIABLES").T(string(token.IDENT)).N("VARIABLES").End()
	g := b.Build()

SPL (spl.go) uses this builder to assemble the fixed SPL grammar;
internal/slr never hard-codes grammar shape.
*/
package grammar

import "fmt"

// Symbol is a terminal or nonterminal of a grammar. Terminals carry the
// token kind they correspond to (see internal/token); nonterminals
// carry a user-chosen name. Value is a dense ordinal assigned by the
// Builder, used by internal/slr to index parser tables.
type Symbol struct {
	Name     string
	Terminal bool
	Value    int
}

func (s *Symbol) String() string {
	if s.Terminal {
		return fmt.Sprintf("T(%s)", s.Name)
	}
	return fmt.Sprintf("N(%s)", s.Name)
}

// EOFSymbolName is the reserved terminal name for the end-of-input
// marker, used as lookahead for the augmented start rule's accept
// action.
const EOFSymbolName = "$"

// Rule is a single production `Head -> Body`. An empty Body denotes an
// epsilon production. Rules are numbered in declaration order
// (Serial), with rule 0 always the augmented start rule `S' -> S`.
type Rule struct {
	Serial int
	Head   *Symbol
	Body   []*Symbol
}

func (r *Rule) String() string {
	if len(r.Body) == 0 {
		return fmt.Sprintf("%d: %s -> ε", r.Serial, r.Head.Name)
	}
	s := fmt.Sprintf("%d: %s ->", r.Serial, r.Head.Name)
	for _, sym := range r.Body {
		s += " " + sym.Name
	}
	return s
}

// IsEpsilon reports whether r is an epsilon production.
func (r *Rule) IsEpsilon() bool {
	return len(r.Body) == 0
}

// Grammar is an augmented context-free grammar: Rules[0] is always
// `S' -> Start`, the unique single-alternative production required by
// the augmented-grammar construction in the specification.
type Grammar struct {
	Start        *Symbol // the augmented start symbol S'
	Rules        []*Rule
	Terminals    []*Symbol
	NonTerminals []*Symbol
	EOF          *Symbol

	bySymbolName map[string]*Symbol
	rulesForHead map[string][]*Rule
}

// Symbol looks up a grammar symbol (terminal or nonterminal) by name.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.bySymbolName[name]
}

// RulesFor returns every rule whose head is A, in declaration order.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	return g.rulesForHead[A.Name]
}

// Rule returns the rule with the given serial number.
func (g *Grammar) Rule(serial int) *Rule {
	return g.Rules[serial]
}

// EachSymbol calls fn for every terminal and nonterminal in the
// grammar, terminals first, each exactly once.
func (g *Grammar) EachSymbol(fn func(*Symbol)) {
	for _, t := range g.Terminals {
		fn(t)
	}
	for _, n := range g.NonTerminals {
		fn(n)
	}
}

func (g *Grammar) Dump() string {
	s := ""
	for _, r := range g.Rules {
		s += r.String() + "\n"
	}
	return s
}
