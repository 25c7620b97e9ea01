package slr

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/splc-lang/splc/internal/grammar"
)

// State is a state within the characteristic finite state machine
// (CFSM) for a grammar: an unordered set of LR(0) items, identified by
// its index in discovery order.
type State struct {
	ID    int
	items *itemSet
}

func (s *State) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, it := range s.items.values() {
		tracer().Debugf("  %s", it)
	}
}

// edge is a CFSM transition, directed and labeled with a grammar
// symbol (terminal or nonterminal).
type edge struct {
	from, to *State
	label    *grammar.Symbol
}

// stateComparator sorts states by their discovery-order ID, mirroring
// gorgo's lr.stateComparator — used to keep CFSM.states (a treeset.Set)
// iterable in deterministic order for table construction.
func stateComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*State).ID, b.(*State).ID)
}

// CFSM is the characteristic finite state machine for a grammar: the
// canonical collection of LR(0) item sets plus the GOTO transitions
// between them. States are held in a treeset.Set (ordered by ID) and
// edges in an arraylist.List, exactly as gorgo's lr.CFSM does.
type CFSM struct {
	g      *grammar.Grammar
	states *treeset.Set
	edges  *arraylist.List
	S0     *State

	byFingerprint map[string]*State
	nextID        int
}

func newCFSM(g *grammar.Grammar) *CFSM {
	return &CFSM{
		g:             g,
		states:        treeset.NewWith(stateComparator),
		edges:         arraylist.New(),
		byFingerprint: make(map[string]*State),
	}
}

// addState returns the existing state for this item set if one was
// already discovered (keyed by the item set's fingerprint, avoiding an
// O(n²) equality scan across all previously discovered states), or
// registers and returns a freshly numbered one.
func (c *CFSM) addState(items *itemSet) (st *State, isNew bool) {
	fp := items.fingerprint()
	if existing, ok := c.byFingerprint[fp]; ok {
		return existing, false
	}
	st = &State{ID: c.nextID, items: items}
	c.nextID++
	c.byFingerprint[fp] = st
	c.states.Add(st)
	return st, true
}

func (c *CFSM) addEdge(from, to *State, label *grammar.Symbol) {
	c.edges.Add(&edge{from: from, to: to, label: label})
}

func (c *CFSM) edgesFrom(s *State) []*edge {
	var out []*edge
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*edge)
		if e.from == s {
			out = append(out, e)
		}
	}
	return out
}

func (c *CFSM) allStates() []*State {
	vals := c.states.Values()
	out := make([]*State, len(vals))
	for i, v := range vals {
		out[i] = v.(*State)
	}
	return out
}

// BuildCFSM constructs the canonical LR(0) item collection for g:
// start from CLOSURE({[S' -> •S]}) and repeatedly compute GOTO(I, X)
// for every discovered state I and every grammar symbol X, until no
// new states appear.
func BuildCFSM(g *grammar.Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	c := newCFSM(g)
	startRule := g.Rule(0)
	closure0 := closure(g, []item{startItem(startRule)})
	c.S0, _ = c.addState(closure0)
	c.S0.Dump()

	worklist := treeset.NewWith(stateComparator)
	worklist.Add(c.S0)
	for worklist.Size() > 0 {
		s := worklist.Values()[0].(*State)
		worklist.Remove(s)
		g.EachSymbol(func(X *grammar.Symbol) {
			gset := gotoSet(g, s.items, X)
			if gset == nil {
				return
			}
			next, isNew := c.addState(gset)
			if isNew {
				worklist.Add(next)
				next.Dump()
			}
			c.addEdge(s, next, X)
		})
	}
	return c
}
