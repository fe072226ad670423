// Package tokenizer provides CSV tokenization: a shape-core lexer front end for
// in-memory input, a byte scanner for streamed input, and the quote state
// machine both of them drive.
package tokenizer

// Token kinds emitted by the lexer front end.
//
// The lexer emits simple character-level tokens. The Machine is responsible for
// interpreting quotes and determining field boundaries.
const (
	// Structural tokens
	TokenComma   = "Comma"   // , (field separator)
	TokenDQuote  = "DQuote"  // " (quote delimiter)
	TokenNewline = "Newline" // \n or \r\n (line terminator)

	// Field content token
	TokenField = "Field" // run of literal characters
)

// KindClass maps a token kind to the Machine character class it stands for.
func KindClass(kind string) Class {
	switch kind {
	case TokenComma:
		return ClassDelimiter
	case TokenDQuote:
		return ClassQuote
	case TokenNewline:
		return ClassLineBreak
	default:
		return ClassOther
	}
}
