package tokenizer

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

type tokenPair struct {
	kind  string
	value string
}

func collect(tok tokenizer.Tokenizer) []tokenPair {
	var got []tokenPair
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		got = append(got, tokenPair{token.Kind(), token.ValueString()})
	}
	return got
}

// TestNewTokenizer_BasicTokens tests tokenization scenarios.
func TestNewTokenizer_BasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenPair
	}{
		{
			name:     "single comma",
			input:    ",",
			expected: []tokenPair{{TokenComma, ","}},
		},
		{
			name:     "single field",
			input:    "abc",
			expected: []tokenPair{{TokenField, "abc"}},
		},
		{
			name:     "newline LF",
			input:    "\n",
			expected: []tokenPair{{TokenNewline, "\n"}},
		},
		{
			name:     "newline CRLF",
			input:    "\r\n",
			expected: []tokenPair{{TokenNewline, "\r\n"}},
		},
		{
			name:  "quoted field",
			input: `"a,b"`,
			expected: []tokenPair{
				{TokenDQuote, `"`},
				{TokenField, "a"},
				{TokenComma, ","},
				{TokenField, "b"},
				{TokenDQuote, `"`},
			},
		},
		{
			name:  "record with CRLF",
			input: "a, b\r\n",
			expected: []tokenPair{
				{TokenField, "a"},
				{TokenComma, ","},
				{TokenField, " b\r"},
				{TokenNewline, "\n"},
			},
		},
		{
			name:     "carriage return is content",
			input:    "a\rb",
			expected: []tokenPair{{TokenField, "a\rb"}},
		},
		{
			name:     "escaped quote pair",
			input:    `""`,
			expected: []tokenPair{{TokenDQuote, `"`}, {TokenDQuote, `"`}},
		},
		{
			name:     "utf8 field",
			input:    "日本語",
			expected: []tokenPair{{TokenField, "日本語"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer()
			tok.Initialize(tt.input)
			got := collect(tok)

			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %q, want %d", len(got), got, len(tt.expected))
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestKindClass(t *testing.T) {
	tests := []struct {
		kind string
		want Class
	}{
		{TokenComma, ClassDelimiter},
		{TokenDQuote, ClassQuote},
		{TokenNewline, ClassLineBreak},
		{TokenField, ClassOther},
		{"Unknown", ClassOther},
	}
	for _, tt := range tests {
		if got := KindClass(tt.kind); got != tt.want {
			t.Errorf("KindClass(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestNewTokenizerWithStream(t *testing.T) {
	tok := NewTokenizerWithStream(tokenizer.NewStream("x,y"))
	got := collect(tok)
	if len(got) != 3 || got[0].value != "x" || got[2].value != "y" {
		t.Errorf("unexpected tokens %q", got)
	}
}

func TestTokenizer_LargeCSV(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 1000; i++ {
		b.WriteString("field1,\"field,2\",field3\n")
	}

	tok := NewTokenizer()
	tok.Initialize(b.String())

	newlines := 0
	for _, p := range collect(tok) {
		if p.kind == TokenNewline {
			newlines++
		}
	}
	if newlines != 1000 {
		t.Errorf("got %d newlines, want 1000", newlines)
	}
}
