package slr

import (
	"fmt"

	"github.com/splc-lang/splc/internal/token"
)

// SyntaxError reports that no ACTION table entry exists for the
// current state and lookahead.
type SyntaxError struct {
	Lookahead token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s", e.Lookahead)
}

// Parser is an SLR(1) acceptance driver. It is a prior gate ahead of
// the AST builder (internal/ast): it never builds a tree, it only
// confirms that a token sequence is a sentence of the grammar,
// matching terminal identity via Token.TerminalName().
type Parser struct {
	tables *Tables
	start  int
}

// stackitem pairs a CFSM state with the grammar symbol that caused the
// parser to enter it ("" for the initial, symbol-less state).
type stackitem struct {
	state int
	sym   string
}

// NewParser creates an SLR(1) parser driver from precomputed tables,
// starting in CFSM state `start` (ordinarily cfsm.S0.ID).
func NewParser(tables *Tables, start int) *Parser {
	return &Parser{tables: tables, start: start}
}

// Parse runs the canonical LR shift-reduce loop over toks (which must
// end in a token.EOF sentinel), reporting whether the input was
// accepted. On success it also returns the sequence of rule serials
// reduced, in reduction order — callers that want a derivation (tests
// verifying parser soundness) can use this without the driver building
// a tree itself.
func (p *Parser) Parse(toks []token.Token) (accepted bool, reductions []int, err error) {
	stack := []stackitem{{state: p.start}}
	pos := 0
	for {
		cur := stack[len(stack)-1]
		la := toks[pos]
		term := la.TerminalName()
		action, ok := p.tables.ActionOf(cur.state, term)
		if !ok {
			return false, reductions, &SyntaxError{Lookahead: la}
		}
		switch action.Kind {
		case Accept:
			return true, reductions, nil
		case Shift:
			stack = append(stack, stackitem{state: action.State, sym: term})
			pos++
		case Reduce:
			n := len(p.tables.g.Rule(action.Rule).Body)
			stack = stack[:len(stack)-n]
			top := stack[len(stack)-1]
			nt := p.tables.g.Rule(action.Rule).Head.Name
			next, ok := p.tables.GotoOf(top.state, nt)
			if !ok {
				return false, reductions, fmt.Errorf("slr: no GOTO(%d, %s) after reducing rule %d",
					top.state, nt, action.Rule)
			}
			stack = append(stack, stackitem{state: next, sym: nt})
			reductions = append(reductions, action.Rule)
		}
	}
}
