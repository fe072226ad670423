package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a shape-core tokenizer for CSV text.
//
// Tokenization is context free and happens at the character level:
// 1. Newlines (CRLF before LF to match the longer sequence first)
// 2. Comma
// 3. Double quote
// 4. Field content (any run of other characters)
//
// Whether a token is structural or literal is decided later by the Machine.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\r\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		FieldContentMatcher(),
	)
}

// NewTokenizerWithStream creates a tokenizer reading from a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// FieldContentMatcher matches runs of characters that are not a comma, quote or
// line feed.
//
// A carriage return is field content here. Outside quotes it only ever precedes
// a line feed or trailing space and is removed when the field is trimmed.
func FieldContentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return fieldContentBytes(byteStream)
		}
		return fieldContentRunes(stream)
	}
}

// fieldContentBytes uses ByteStream for fast ASCII scanning.
func fieldContentBytes(stream tokenizer.ByteStream) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || Classify(b) != ClassOther {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}
	return tokenizer.NewToken(TokenField, []rune(string(stream.SliceFrom(startPos))))
}

func fieldContentRunes(stream tokenizer.Stream) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || r == ',' || r == '"' || r == '\n' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(TokenField, value)
}
