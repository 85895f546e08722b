package parsec

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for tokens. We do not define any constants here, as
// it is up to applications to define them.
type TokType int

// Token is a positioned value, emitted by a lexing phase and consumed by a
// token-level grammar.
//
// An example would be a token for a floating point number:
//
//	Index  = 67          // occurred at byte offset 67 of the source
//	Length = 6           // lexeme was "3.1416"
//	Value  = 3.1416      // is a float64 value
//
// Value is whatever the lexing parser produced; token-level grammars inspect it
// with type assertions (see parser.TokenType).
type Token struct {
	Index  int         // offset of the first byte of the lexeme within the source
	Length int         // length of the lexeme in bytes
	Value  interface{} // boxed token value
}

// Span returns the source range covered by t.
func (t Token) Span() Span {
	return Span{t.Index, t.Index + t.Length}
}

func (t Token) String() string {
	return fmt.Sprintf("%v@%d", t.Value, t.Index)
}

// Fragment is a token value for tokens which are sufficiently described by a
// kind tag and their text, like operators, keywords or identifiers.
type Fragment struct {
	Kind string
	Text string
}

func (f Fragment) String() string {
	return f.Text
}

// --- Spans ---------------------------------------------------------------

// Span is the byte range [from, to) of a run of source text.
type Span [2]int

// From returns the offset of the first byte of s.
func (s Span) From() int {
	return s[0]
}

// To returns the offset just behind s.
func (s Span) To() int {
	return s[1]
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s[1] - s[0]
}

// Text returns the part of source covered by s. The span is clipped to the
// bounds of source, so a span outside of source yields "".
func (s Span) Text(source string) string {
	from, to := max(s[0], 0), min(s[1], len(source))
	if from >= to {
		return ""
	}
	return source[from:to]
}
