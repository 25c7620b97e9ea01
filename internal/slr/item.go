package slr

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/splc-lang/splc/internal/grammar"
)

// item is an LR(0) item: a rule together with a dot position,
//0 <= dot <= len(rule.Body). Equality and hashing are by the pair
// (rule serial, dot) alone, which is exactly the triple the
// specification defines (head and body are implied by the rule).
type item struct {
	rule *grammar.Rule
	dot  int
}

func startItem(r *grammar.Rule) item {
	return item{rule: r, dot: 0}
}

// peekSymbol returns the symbol immediately after the dot, or nil if
// the item is complete.
func (it item) peekSymbol() *grammar.Symbol {
	if it.dot >= len(it.rule.Body) {
		return nil
	}
	return it.rule.Body[it.dot]
}

func (it item) complete() bool {
	return it.dot == len(it.rule.Body)
}

func (it item) advance() item {
	return item{rule: it.rule, dot: it.dot + 1}
}

// prefix returns the symbols of the rule's body consumed so far
// (before the dot) — the "handle" being recognized.
func (it item) prefix() []*grammar.Symbol {
	return it.rule.Body[:it.dot]
}

func (it item) String() string {
	s := fmt.Sprintf("[%s ->", it.rule.Head.Name)
	for i, sym := range it.rule.Body {
		if i == it.dot {
			s += " •"
		}
		s += " " + sym.Name
	}
	if it.dot == len(it.rule.Body) {
		s += " •"
	}
	return s + "]"
}

// --- Item sets --------------------------------------------------------

// itemSet is an unordered collection of items, as gods' hashset.Set:
// items are small comparable structs, so the set's built-in equality
// is exactly item identity (rule serial + dot).
type itemSet struct {
	set *hashset.Set
}

func newItemSet(items ...item) *itemSet {
	s := &itemSet{set: hashset.New()}
	for _, it := range items {
		s.set.Add(it)
	}
	return s
}

// add inserts it into the set, returning true if it was not already
// present.
func (s *itemSet) add(it item) bool {
	if s.set.Contains(it) {
		return false
	}
	s.set.Add(it)
	return true
}

func (s *itemSet) values() []item {
	raw := s.set.Values()
	items := make([]item, len(raw))
	for i, v := range raw {
		items[i] = v.(item)
	}
	return items
}

func (s *itemSet) size() int {
	return s.set.Size()
}

// fingerprint returns a stable hash of the item set's contents,
// independent of iteration order. CFSM state construction uses this
// to deduplicate newly-discovered item sets against previously
// discovered CFSM states without an O(n²) pairwise-equality scan —
// the same technique gorgo's lr/earley package uses to fingerprint
// Earley item collections for its chart.
func (s *itemSet) fingerprint() string {
	items := s.values()
	sort.Slice(items, func(i, j int) bool {
		if items[i].rule.Serial != items[j].rule.Serial {
			return items[i].rule.Serial < items[j].rule.Serial
		}
		return items[i].dot < items[j].dot
	})
	keys := make([][2]int, len(items))
	for i, it := range items {
		keys[i] = [2]int{it.rule.Serial, it.dot}
	}
	hash, err := structhash.Hash(keys, 1)
	if err != nil {
		// keys is a plain, hash-stable value; structhash only fails on
		// types it cannot reflect over.
		panic(fmt.Sprintf("slr: cannot fingerprint item set: %v", err))
	}
	return hash
}
