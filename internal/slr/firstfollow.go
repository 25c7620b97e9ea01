package slr

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/splc-lang/splc/internal/grammar"
)

// epsilon is a sentinel terminal name stored inside FIRST sets to mark
// that a nonterminal can derive the empty string.
const epsilon = ""

// Sets holds FIRST and FOLLOW, computed once per grammar by NewSets.
// Both map nonterminal names to sets of terminal names; FIRST may also
// contain the epsilon sentinel, FOLLOW may contain grammar.EOFSymbolName.
type Sets struct {
	g      *grammar.Grammar
	first  map[string]*hashset.Set
	follow map[string]*hashset.Set
}

// NewSets computes FIRST and FOLLOW for g by iterating both definitions
// to a fixpoint, per the specification's §4.2 algorithm.
func NewSets(g *grammar.Grammar) *Sets {
	s := &Sets{
		g:      g,
		first:  make(map[string]*hashset.Set),
		follow: make(map[string]*hashset.Set),
	}
	for _, nt := range g.NonTerminals {
		s.first[nt.Name] = hashset.New()
		s.follow[nt.Name] = hashset.New()
	}
	s.computeFirst()
	s.computeFollow()
	return s
}

func (s *Sets) firstOfSymbol(sym *grammar.Symbol) *hashset.Set {
	if sym.Terminal {
		set := hashset.New()
		set.Add(sym.Name)
		return set
	}
	return s.first[sym.Name]
}

func (s *Sets) computeFirst() {
	changed := true
	for changed {
		changed = false
		for _, r := range s.g.Rules {
			first := s.first[r.Head.Name]
			if r.IsEpsilon() {
				if !first.Contains(epsilon) {
					first.Add(epsilon)
					changed = true
				}
				continue
			}
			nullablePrefix := true
			for _, sym := range r.Body {
				fs := s.firstOfSymbol(sym)
				for _, v := range fs.Values() {
					if v == epsilon {
						continue
					}
					if !first.Contains(v) {
						first.Add(v)
						changed = true
					}
				}
				if !fs.Contains(epsilon) {
					nullablePrefix = false
					break
				}
			}
			if nullablePrefix {
				if !first.Contains(epsilon) {
					first.Add(epsilon)
					changed = true
				}
			}
		}
	}
}

func (s *Sets) computeFollow() {
	s.follow[s.g.Start.Name].Add(grammar.EOFSymbolName)
	changed := true
	for changed {
		changed = false
		for _, r := range s.g.Rules {
			for i, B := range r.Body {
				if B.Terminal {
					continue
				}
				beta := r.Body[i+1:]
				followB := s.follow[B.Name]
				betaNullable := true
				for _, sym := range beta {
					fs := s.firstOfSymbol(sym)
					for _, v := range fs.Values() {
						if v == epsilon {
							continue
						}
						if !followB.Contains(v) {
							followB.Add(v)
							changed = true
						}
					}
					if !fs.Contains(epsilon) {
						betaNullable = false
						break
					}
				}
				if betaNullable {
					for _, v := range s.follow[r.Head.Name].Values() {
						if !followB.Contains(v) {
							followB.Add(v)
							changed = true
						}
					}
				}
			}
		}
	}
}

// First returns FIRST(A) for nonterminal A as a slice of terminal
// names; it may contain the empty string to denote epsilon.
func (s *Sets) First(A *grammar.Symbol) []string {
	return stringValues(s.first[A.Name])
}

// Follow returns FOLLOW(A) for nonterminal A as a slice of terminal
// names; it may contain grammar.EOFSymbolName.
func (s *Sets) Follow(A *grammar.Symbol) []string {
	return stringValues(s.follow[A.Name])
}

func stringValues(set *hashset.Set) []string {
	raw := set.Values()
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(string))
	}
	return out
}
