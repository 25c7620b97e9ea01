package slr

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/splc-lang/splc/internal/grammar"
)

// tracer traces with the module's shared syntax tracer.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// closure computes CLOSURE(I) for a seed collection of items: for
// every item [A -> α•Bβ] in the (growing) set and every rule B -> γ,
// add [B -> •γ]; repeat to a fixpoint. This is a worklist
// implementation of the textbook definition (Fisher & LeBlanc,
// "Crafting a Compiler", §6.2.1), used by gorgo's own lr.TableGenerator.
func closure(g *grammar.Grammar, seed []item) *itemSet {
	set := newItemSet(seed...)
	worklist := append([]item{}, seed...)
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]
		A := it.peekSymbol()
		if A == nil || A.Terminal {
			continue
		}
		for _, r := range g.RulesFor(A) {
			ni := startItem(r)
			if set.add(ni) {
				worklist = append(worklist, ni)
			}
		}
	}
	return set
}

// gotoSet computes GOTO(I, X): advance the dot in every item of I that
// has X immediately after the dot, then close the result. Returns nil
// if no item in I can advance over X.
func gotoSet(g *grammar.Grammar, I *itemSet, X *grammar.Symbol) *itemSet {
	var advanced []item
	for _, it := range I.values() {
		if it.peekSymbol() == X {
			advanced = append(advanced, it.advance())
		}
	}
	if len(advanced) == 0 {
		return nil
	}
	result := closure(g, advanced)
	tracer().Debugf("goto(%s) --> %d items", X.Name, result.size())
	return result
}
