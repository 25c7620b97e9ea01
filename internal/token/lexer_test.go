package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_PunctuationAndKeywords(t *testing.T) {
	l := New(`glob { x } proc { } func { } main { var { } halt }`)
	toks, err := l.All()
	require.NoError(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		"glob", "{", IDENT, "}", "proc", "{", "}", "func", "{", "}",
		"main", "{", "var", "{", "}", "halt", "}", EOF,
	}, kinds)
}

func TestLexer_MinimalProgramTokenCount(t *testing.T) {
	// S1 from the spec: exactly 13 real tokens, plus the EOF sentinel.
	l := New(`glob { } proc { } func { } main { var { } halt }`)
	toks, err := l.All()
	require.NoError(t, err)
	require.Equal(t, EOF, toks[len(toks)-1].Kind)
	assert.Len(t, toks, 14)
}

func TestLexer_KeywordDeterminism(t *testing.T) {
	for lexeme, kind := range Keywords {
		l := New(lexeme)
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, kind, tok.Kind, "lexeme %q", lexeme)
	}
	l := New("notakeyword")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, IDENT, tok.Kind)
}

func TestLexer_Numbers(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"0", false},
		{"10", false},
		{"9", false},
		{"907", false},
		{"00", true},
		{"01", true},
	}
	for _, c := range cases {
		l := New(c.in)
		tok, err := l.Next()
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, NUMBER, tok.Kind, c.in)
		assert.Equal(t, c.in, tok.Lexeme, c.in)
	}
}

func TestLexer_Strings(t *testing.T) {
	ok15 := `"abcdefghij12345"` // 15 inner chars
	l := New(ok15)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, STRING, tok.Kind)
	assert.Len(t, tok.Lexeme, 15)

	tooLong := `"abcdefghij123456"` // 16 inner chars
	l = New(tooLong)
	_, err = l.Next()
	assert.Error(t, err)

	l = New(`"bad-char"`)
	_, err = l.Next()
	assert.Error(t, err)

	l = New("\"unterminated")
	_, err = l.Next()
	assert.Error(t, err)

	l = New("\"spans\na line\"")
	_, err = l.Next()
	assert.Error(t, err)
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	l := New("@")
	_, err := l.Next()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
	assert.Equal(t, 1, lexErr.Column)
}

func TestLexer_LineColumnTracking(t *testing.T) {
	l := New("halt\nprint")
	tok1, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, tok1.Line)

	tok2, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, tok2.Line)
	assert.Equal(t, 1, tok2.Column)
}
