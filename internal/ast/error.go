package ast

import (
	"fmt"

	"github.com/splc-lang/splc"
)

// Error is a position-bearing parse error raised by the builder when
// the token stream diverges from the grammar. In practice it is
// redundant with a prior SLR rejection (§7), but the builder is the
// authoritative tree source and must not assume a well-formed stream.
type Error struct {
	Message string
	splc.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("ast error at %s: %s", e.Position, e.Message)
}
