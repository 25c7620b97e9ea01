package token

import (
	"fmt"

	"github.com/splc-lang/splc"
)

// LexError is a position-bearing, fatal lexical error. Lexing stops at
// the first one encountered.
type LexError struct {
	Message string
	splc.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Position, e.Message)
}
