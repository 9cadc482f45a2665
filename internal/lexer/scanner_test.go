package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestScanSimpleAssignment(t *testing.T) {
	tokens := NewScanner("x = 1 + 2").ScanTokens()
	assert.Equal(t, []TokenType{TokenIdent, TokenEqual, TokenNumber, TokenPlus, TokenNumber, TokenEOF}, tokenTypes(tokens))
}

func TestScanKeywords(t *testing.T) {
	tokens := NewScanner("if x\nelseif y\nelse\nend").ScanTokens()
	types := tokenTypes(tokens)
	require.Contains(t, types, TokenIf)
	require.Contains(t, types, TokenElseif)
	require.Contains(t, types, TokenElse)
	require.Contains(t, types, TokenEnd)
	require.Contains(t, types, TokenNewline)
}

func TestTransposeAfterIdentifier(t *testing.T) {
	tokens := NewScanner("A'").ScanTokens()
	assert.Equal(t, []TokenType{TokenIdent, TokenTranspose, TokenEOF}, tokenTypes(tokens))
}

func TestQuoteOpensStringWhenNotPostfix(t *testing.T) {
	tokens := NewScanner("'hello'").ScanTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Type)
	assert.Equal(t, "hello", tokens[0].Lexeme)
}

func TestEscapedQuoteInsideCharString(t *testing.T) {
	tokens := NewScanner("'it''s'").ScanTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, "it's", tokens[0].Lexeme)
}

func TestImaginaryNumberSuffix(t *testing.T) {
	tokens := NewScanner("3.5i").ScanTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenImag, tokens[0].Type)
	assert.Equal(t, "3.5i", tokens[0].Lexeme)
}

func TestLineContinuationSwallowsRestOfLine(t *testing.T) {
	tokens := NewScanner("x = 1 + ...\n2").ScanTokens()
	types := tokenTypes(tokens)
	assert.NotContains(t, types, TokenNewline)
}

func TestLineCommentIgnored(t *testing.T) {
	tokens := NewScanner("x = 1 % a comment\ny = 2").ScanTokens()
	types := tokenTypes(tokens)
	assert.Equal(t, []TokenType{TokenIdent, TokenEqual, TokenNumber, TokenNewline, TokenIdent, TokenEqual, TokenNumber, TokenEOF}, types)
}

func TestDotOperators(t *testing.T) {
	tokens := NewScanner(".* ./ .^ .\\").ScanTokens()
	assert.Equal(t, []TokenType{TokenDotStar, TokenDotSlash, TokenDotCaret, TokenDotBackslash, TokenEOF}, tokenTypes(tokens))
}
