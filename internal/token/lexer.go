package token

import (
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/splc-lang/splc"
)

// tracer traces with the module's shared syntax tracer.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Lexer is a single-threaded, restartable scanner over SPL source text.
// It maintains (index, line, column) and exposes a one-token-at-a-time
// iteration interface; it never rewinds. A Lexer is owned by exactly
// one compilation and carries no state shared with any other.
type Lexer struct {
	src          []rune
	i            int
	line, column int
}

// New creates a Lexer over src. Line and column both start at 1.
func New(src string) *Lexer {
	return &Lexer{
		src:    []rune(src),
		i:      0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) eof() bool {
	return l.i >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.i]
}

func (l *Lexer) peekAt(off int) rune {
	if l.i+off >= len(l.src) {
		return 0
	}
	return l.src[l.i+off]
}

func (l *Lexer) advance() rune {
	r := l.peek()
	if r == 0 {
		return 0
	}
	l.i++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token from the input. At end of input it
// returns a Token with Kind == EOF and a nil error. Once a LexError has
// been returned, the Lexer must not be used again; its position is
// undefined.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	if l.eof() {
		return Token{Kind: EOF, Position: splc.Position{Line: l.line, Column: l.column}, Span: splc.Span{From: uint64(l.i), To: uint64(l.i)}}, nil
	}
	line, col, start := l.line, l.column, l.i
	switch ch := l.peek(); {
	case ch == '(' || ch == ')' || ch == '{' || ch == '}' || ch == ';' || ch == '=' || ch == '>':
		l.advance()
		return Token{Kind: Kind(string(ch)), Lexeme: string(ch), Position: splc.Position{Line: line, Column: col}, Span: splc.Span{From: uint64(start), To: uint64(l.i)}}, nil
	case ch == '"':
		return l.readString(line, col, start)
	case unicode.IsDigit(ch):
		return l.readNumber(line, col, start)
	case ch >= 'a' && ch <= 'z':
		return l.readIdentOrKeyword(line, col, start)
	default:
		return Token{}, &LexError{
			Message:  "unexpected character " + string(ch),
			Position: splc.Position{Line: line, Column: col},
		}
	}
}

// All scans the whole input into a token slice terminated by an EOF
// token. It is a convenience wrapper for callers (the parser driver,
// the AST builder) that want random access rather than step-wise
// iteration.
func (l *Lexer) All() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) readString(line, col, start int) (Token, error) {
	l.advance() // consume opening quote
	var runes []rune
	for {
		if l.eof() {
			return Token{}, &LexError{Message: "unterminated string literal", Position: splc.Position{Line: line, Column: col}}
		}
		ch := l.peek()
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\n' {
			return Token{}, &LexError{Message: "string literal cannot span lines", Position: splc.Position{Line: l.line, Column: l.column}}
		}
		if !(unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			return Token{}, &LexError{Message: "strings may contain only letters or digits", Position: splc.Position{Line: l.line, Column: l.column}}
		}
		runes = append(runes, ch)
		l.advance()
	}
	if len(runes) > 15 {
		return Token{}, &LexError{Message: "string literal exceeds max length 15", Position: splc.Position{Line: line, Column: col}}
	}
	tracer().Debugf("lexed STRING %q at %d:%d", string(runes), line, col)
	return Token{Kind: STRING, Lexeme: string(runes), Position: splc.Position{Line: line, Column: col}, Span: splc.Span{From: uint64(start), To: uint64(l.i)}}, nil
}

func (l *Lexer) readNumber(line, col, start int) (Token, error) {
	var runes []rune
	if l.peek() == '0' {
		runes = append(runes, l.advance())
		if !l.eof() && unicode.IsDigit(l.peek()) {
			return Token{}, &LexError{Message: "numbers cannot have leading zeros", Position: splc.Position{Line: line, Column: col}}
		}
	} else {
		for !l.eof() && unicode.IsDigit(l.peek()) {
			runes = append(runes, l.advance())
		}
	}
	tracer().Debugf("lexed NUMBER %q at %d:%d", string(runes), line, col)
	return Token{Kind: NUMBER, Lexeme: string(runes), Position: splc.Position{Line: line, Column: col}, Span: splc.Span{From: uint64(start), To: uint64(l.i)}}, nil
}

func (l *Lexer) readIdentOrKeyword(line, col, start int) (Token, error) {
	var runes []rune
	runes = append(runes, l.advance()) // first char already known lowercase
	for !l.eof() {
		ch := l.peek()
		if (ch >= 'a' && ch <= 'z') || unicode.IsDigit(ch) {
			runes = append(runes, l.advance())
			continue
		}
		break
	}
	lexeme := string(runes)
	span := splc.Span{From: uint64(start), To: uint64(l.i)}
	if kw, ok := Keywords[lexeme]; ok {
		return Token{Kind: kw, Lexeme: lexeme, Position: splc.Position{Line: line, Column: col}, Span: span}, nil
	}
	return Token{Kind: IDENT, Lexeme: lexeme, Position: splc.Position{Line: line, Column: col}, Span: span}, nil
}
