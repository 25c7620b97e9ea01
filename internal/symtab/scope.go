package symtab

import "fmt"

// Scope is a named container of symbol declarations, linked back to
// its parent (non-owning: the parent holds the owning reference via
// Children, the child only points upward for lookup) and forward to
// the children it owns.
type Scope struct {
	Name     string
	Parent   *Scope
	Children []*Scope
	symbols  map[string]*Symbol
	order    []string // insertion order, for a deterministic pretty-printer
}

func newScope(name string, parent *Scope) *Scope {
	sc := &Scope{
		Name:    name,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
	if parent != nil {
		parent.Children = append(parent.Children, sc)
	}
	tracer().Debugf("new scope %q", sc.Path())
	return sc
}

// NewAnonymousScope creates a transient child of parent for
// control-flow nesting during type checking (IF/WHILE/DO_UNTIL, §4.5).
// It links to parent for upward lookup but is never appended to
// parent.Children: only declaration scopes belong to the tree built by
// Build, and these hold no declarations of their own.
func NewAnonymousScope(parent *Scope, name string) *Scope {
	return &Scope{Name: name, Parent: parent, symbols: make(map[string]*Symbol)}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Path renders the chain of scope names from the root to this scope,
// e.g. "everywhere/proc p/body".
func (s *Scope) Path() string {
	if s.Parent == nil {
		return s.Name
	}
	return s.Parent.Path() + "/" + s.Name
}

// Add declares name in this scope. It fails with *DuplicateNameError
// if name is already present in this exact scope; shadowing an
// ancestor's declaration is allowed and not checked here.
func (s *Scope) Add(name string, category Category, nodeID int64) (*Symbol, error) {
	if _, exists := s.symbols[name]; exists {
		return nil, &DuplicateNameError{Name: name, Scope: s.Path()}
	}
	sym := &Symbol{Name: name, Category: category, Scope: s, NodeID: nodeID}
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return sym, nil
}

// Lookup finds name in this scope, or failing that in the nearest
// ancestor that declares it. Returns the symbol, the scope it was
// found in, and whether it was found at all.
func (s *Scope) Lookup(name string) (*Symbol, *Scope, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, sc, true
		}
	}
	return nil, nil, false
}

// LocalLookup finds name only within this exact scope, ignoring
// ancestors.
func (s *Scope) LocalLookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns the symbols declared directly in this scope, in
// declaration order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

// Size returns the number of symbols declared directly in this scope.
func (s *Scope) Size() int {
	return len(s.symbols)
}
