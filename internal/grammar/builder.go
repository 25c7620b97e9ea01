package grammar

// Builder assembles a Grammar rule by rule. The first rule added must
// be for the augmented start symbol and have exactly one alternative;
// Build() does not check this, it numbers rules in the order added.
type Builder struct {
	startName string
	rules     []*ruleSpec
	symbols   map[string]*Symbol
	nextTermV int
	nextNontV int
}

type ruleSpec struct {
	head string
	body []specSym
}

type specSym struct {
	name     string
	terminal bool
}

// NewBuilder creates a Builder for a grammar whose augmented start
// nonterminal is named startName (conventionally "S'").
func NewBuilder(startName string) *Builder {
	return &Builder{
		startName: startName,
		symbols:   make(map[string]*Symbol),
	}
}

// RuleBuilder accumulates the right-hand side of a single production.
type RuleBuilder struct {
	b    *Builder
	head string
	body []specSym
}

// Rule begins a new production with the given left-hand side.
func (b *Builder) Rule(head string) *RuleBuilder {
	return &RuleBuilder{b: b, head: head}
}

// T appends a terminal symbol (by token kind / lexeme name) to the
// right-hand side under construction.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.body = append(rb.body, specSym{name: name, terminal: true})
	return rb
}

// N appends a nonterminal symbol to the right-hand side under
// construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.body = append(rb.body, specSym{name: name, terminal: false})
	return rb
}

// End finishes the rule, registering it with the builder.
func (rb *RuleBuilder) End() {
	rb.b.rules = append(rb.b.rules, &ruleSpec{head: rb.head, body: rb.body})
}

// Epsilon finishes the rule as an epsilon production.
func (rb *RuleBuilder) Epsilon() {
	rb.b.rules = append(rb.b.rules, &ruleSpec{head: rb.head, body: nil})
}

func (b *Builder) symbolFor(name string, terminal bool) *Symbol {
	if s, ok := b.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name, Terminal: terminal}
	if terminal {
		s.Value = b.nextTermV
		b.nextTermV++
	} else {
		s.Value = b.nextNontV
		b.nextNontV++
	}
	b.symbols[name] = s
	return s
}

// Build finalizes the grammar: resolves every symbol reference,
// assigns rule serials in declaration order, and computes the
// terminal/nonterminal symbol lists.
func (b *Builder) Build() *Grammar {
	g := &Grammar{
		bySymbolName: make(map[string]*Symbol),
		rulesForHead: make(map[string][]*Rule),
	}
	// Every LHS is a nonterminal; body symbols carry their own terminal flag.
	for _, rs := range b.rules {
		b.symbolFor(rs.head, false)
	}
	for i, rs := range b.rules {
		head := b.symbolFor(rs.head, false)
		body := make([]*Symbol, len(rs.body))
		for j, s := range rs.body {
			body[j] = b.symbolFor(s.name, s.terminal)
		}
		r := &Rule{Serial: i, Head: head, Body: body}
		g.Rules = append(g.Rules, r)
		g.rulesForHead[head.Name] = append(g.rulesForHead[head.Name], r)
	}
	g.EOF = b.symbolFor(EOFSymbolName, true)
	for _, s := range b.symbols {
		if s.Terminal {
			g.Terminals = append(g.Terminals, s)
		} else {
			g.NonTerminals = append(g.NonTerminals, s)
		}
	}
	g.Start = b.symbolFor(b.startName, false)
	g.bySymbolName = b.symbols
	return g
}
