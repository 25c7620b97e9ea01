/*
Package token implements the SPL lexer: a hand-written, single-pass,
restartable scanner that turns source text into a finite token
sequence.

Token kinds are represented as plain strings. For punctuation and
keywords the kind equals the lexeme (e.g. the kind of "{" is "{", the
kind of "glob" is "glob"); for the three literal classes the kind is
the fixed name IDENT, NUMBER or STRING. This is the contract the SLR
parser driver in internal/slr relies on to identify terminals: the
grammar's terminal set is exactly this string space, plus the
end-marker EOF.
*/
package token

import (
	"fmt"

	"github.com/splc-lang/splc"
)

// Kind identifies the category of a token. See the package doc for the
// naming contract between the lexer and the parser driver.
type Kind string

// EOF is the synthetic end-of-input kind. Lexer.Next returns a token of
// this kind at end of input, and Lexer.All ends its slice with one.
const EOF Kind = "$"

// The three literal classes.
const (
	IDENT  Kind = "IDENT"
	NUMBER Kind = "NUMBER"
	STRING Kind = "STRING"
)

// Punctuation kinds. Each is a single character, and the kind equals
// the lexeme.
const (
	LParen Kind = "("
	RParen Kind = ")"
	LBrace Kind = "{"
	RBrace Kind = "}"
	Semi   Kind = ";"
	Assign Kind = "="
	GT     Kind = ">"
)

// Keywords holds the fixed word-keyword table. A scanned identifier
// lexeme is looked up here; a hit yields the keyword kind (equal to the
// lexeme), a miss yields IDENT.
var Keywords = map[string]Kind{
	"glob":  "glob",
	"proc":  "proc",
	"func":  "func",
	"main":  "main",
	"local": "local",
	"var":   "var",
	"halt":  "halt",
	"print": "print",
	"do":    "do",
	"until": "until",
	"while": "while",
	"if":    "if",
	"else":  "else",
	"return": "return",
	"neg":   "neg",
	"not":   "not",
	"eq":    "eq",
	"or":    "or",
	"and":   "and",
	"plus":  "plus",
	"minus": "minus",
	"mult":  "mult",
	"div":   "div",
}

// Token is a single, immutable lexical unit of SPL source.
type Token struct {
	Kind   Kind
	Lexeme string
	splc.Position
	Span splc.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Position)
}

// TerminalName returns the string a parser driver should match this
// token against: the kind name for IDENT/NUMBER/STRING, the lexeme
// (which equals the kind) for everything else.
func (t Token) TerminalName() string {
	return string(t.Kind)
}
