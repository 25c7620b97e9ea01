package slr

import (
	"fmt"

	"github.com/splc-lang/splc/internal/grammar"
)

// ActionKind distinguishes the three possible ACTION table entries.
type ActionKind int

const (
	// Shift moves to State.
	Shift ActionKind = iota
	// Reduce applies Rule.
	Reduce
	// Accept ends a successful parse.
	Accept
)

// Action is a single ACTION table entry.
type Action struct {
	Kind  ActionKind
	State int   // valid when Kind == Shift
	Rule  int   // valid when Kind == Reduce (rule serial)
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift(%d)", a.State)
	case Reduce:
		return fmt.Sprintf("reduce(%d)", a.Rule)
	default:
		return "accept"
	}
}

// ConstructionError reports a hard failure during table construction:
// a reduce/reduce conflict, which the specification defines as a fatal
// error (none arises for the fixed SPL grammar, but the generator must
// still detect one were it to occur).
type ConstructionError struct {
	State   int
	Lookahead string
	Rule1   int
	Rule2   int
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("reduce/reduce conflict in state %d on %q: rule %d vs rule %d",
		e.State, e.Lookahead, e.Rule1, e.Rule2)
}

// Tables holds the ACTION and GOTO tables built from a CFSM, plus a
// record of shift/reduce conflicts encountered (logged, never fatal,
// per §4.2: "if a shift is already present, keep the shift and record
// a conflict").
type Tables struct {
	g          *grammar.Grammar
	action     map[int]map[string]Action // state -> terminal name -> action
	gotoT      map[int]map[string]int    // state -> nonterminal name -> state
	Conflicts  []string
}

// ActionOf returns the ACTION table entry for (state, terminal), and
// whether one exists.
func (t *Tables) ActionOf(state int, terminal string) (Action, bool) {
	row, ok := t.action[state]
	if !ok {
		return Action{}, false
	}
	a, ok := row[terminal]
	return a, ok
}

// GotoOf returns the GOTO table entry for (state, nonterminal), and
// whether one exists.
func (t *Tables) GotoOf(state int, nonterminal string) (int, bool) {
	row, ok := t.gotoT[state]
	if !ok {
		return 0, false
	}
	s, ok := row[nonterminal]
	return s, ok
}

func (t *Tables) setAction(state int, terminal string, a Action) error {
	row, ok := t.action[state]
	if !ok {
		row = make(map[string]Action)
		t.action[state] = row
	}
	existing, present := row[terminal]
	if !present {
		row[terminal] = a
		return nil
	}
	switch {
	case existing.Kind == Shift && a.Kind == Reduce:
		t.Conflicts = append(t.Conflicts, fmt.Sprintf(
			"shift/reduce conflict in state %d on %q: keeping shift, discarding reduce(%d)",
			state, terminal, a.Rule))
		return nil // shift > reduce, silently keep the shift already stored
	case existing.Kind == Reduce && a.Kind == Shift:
		t.Conflicts = append(t.Conflicts, fmt.Sprintf(
			"shift/reduce conflict in state %d on %q: preferring shift over reduce(%d)",
			state, terminal, existing.Rule))
		row[terminal] = a // shift > reduce, even though reduce arrived first
		return nil
	case existing.Kind == Reduce && a.Kind == Reduce && existing.Rule != a.Rule:
		return &ConstructionError{State: state, Lookahead: terminal, Rule1: existing.Rule, Rule2: a.Rule}
	default:
		return nil // identical entry re-derived from a second item; not a conflict
	}
}

func (t *Tables) setGoto(state int, nonterminal string, target int) {
	row, ok := t.gotoT[state]
	if !ok {
		row = make(map[string]int)
		t.gotoT[state] = row
	}
	row[nonterminal] = target
}

// BuildTables constructs the SLR(1) ACTION and GOTO tables from a CFSM
// and its grammar's FIRST/FOLLOW sets, per the specification's §4.2
// table-construction algorithm:
//
//   - a transition on terminal a to state j becomes a shift(j);
//   - a complete item [A -> α•] (A != S') contributes reduce(A,α) for
//     every a in FOLLOW(A);
//   - the complete augmented item [S' -> S•] contributes accept on $;
//   - a transition on nonterminal X to state j becomes GOTO[i,X] = j.
func BuildTables(g *grammar.Grammar, cfsm *CFSM, sets *Sets) (*Tables, error) {
	t := &Tables{
		g:      g,
		action: make(map[int]map[string]Action),
		gotoT:  make(map[int]map[string]int),
	}
	for _, s := range cfsm.allStates() {
		tracer().Debugf("--- state %d --------------------------------", s.ID)
		for _, e := range cfsm.edgesFrom(s) {
			if e.label.Terminal {
				if err := t.setAction(s.ID, e.label.Name, Action{Kind: Shift, State: e.to.ID}); err != nil {
					return nil, err
				}
			} else {
				t.setGoto(s.ID, e.label.Name, e.to.ID)
			}
		}
		for _, it := range s.items.values() {
			if !it.complete() {
				continue
			}
			if it.rule.Serial == 0 { // [S' -> S•]
				if err := t.setAction(s.ID, grammar.EOFSymbolName, Action{Kind: Accept}); err != nil {
					return nil, err
				}
				continue
			}
			for _, la := range sets.Follow(it.rule.Head) {
				if err := t.setAction(s.ID, la, Action{Kind: Reduce, Rule: it.rule.Serial}); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}
