/*
Package scanner provides lexing phases for token-level grammars of package
parser.

Token-level grammars do not care where their tokens come from. Besides the
lexers built from parser combinators (see parser.Lexer), tokens may be
produced by a conventional scanner. Two scanner implementations are provided:
(1) a thin wrapper over the Go std lib 'text/scanner', and (2) an adapter for
lexmachine, living in sub-package `lexmach`.

Both produce parsec.Tokens with a value of type DefaultToken, which may be
matched with Kind and Lit.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsec.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsec.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. NextToken returns a token with a
// DefaultToken value of kind EOF at the end of input.
type Tokenizer interface {
	NextToken() parsec.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() parsec.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	from, to := t.Position.Offset, t.Pos().Offset
	if t.lastToken == scanner.EOF {
		from = to
	}
	tok := MakeDefaultToken(parsec.TokType(t.lastToken), t.TokenText())
	tok.Val = tokenValue(t.lastToken, tok.Lexeme)
	return parsec.Token{
		Index:  from,
		Length: to - from,
		Value:  tok,
	}
}

// tokenValue converts literals to Go values. Anything else keeps its lexeme.
func tokenValue(kind rune, lexeme string) interface{} {
	switch kind {
	case scanner.Int:
		if n, err := strconv.ParseInt(lexeme, 0, 64); err == nil {
			return n
		}
	case scanner.Float:
		if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
			return f
		}
	case scanner.String, scanner.RawString, scanner.Char:
		if s, err := strconv.Unquote(lexeme); err == nil {
			return s
		}
	}
	return lexeme
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token value, used as default for the
// Go tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	Kind   parsec.TokType
	Lexeme string
	Val    interface{}
}

// MakeDefaultToken creates a token value with its value set to lexeme.
func MakeDefaultToken(typ parsec.TokType, lexeme string) DefaultToken {
	return DefaultToken{
		Kind:   typ,
		Lexeme: lexeme,
		Val:    lexeme,
	}
}

// TokType returns the category of the token.
func (t DefaultToken) TokType() parsec.TokType {
	return t.Kind
}

// Value returns the value of the token, which for literals may differ from
// its lexeme.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Lexeme
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Driving token-level grammars ------------------------------------------

// Tokens reads all tokens from t. The EOF token is not included. If the
// tokenizer reports errors, the first one is returned together with the
// tokens read.
func Tokens(t Tokenizer) ([]parsec.Token, error) {
	var first error
	t.SetErrorHandler(func(e error) {
		logError(e)
		if first == nil {
			first = e
		}
	})
	defer t.SetErrorHandler(nil)
	var tokens []parsec.Token
	for {
		tok := t.NextToken()
		if dt, ok := tok.Value.(DefaultToken); ok && dt.Kind == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	tracer().Debugf("scanner produced %d tokens", len(tokens))
	return tokens, first
}

// Parse scans source with a Go tokenizer and runs the token-level grammar p
// over the tokens.
func Parse[T any](p parser.Parser[T], sourceID, source string, opts ...Option) (T, error) {
	t := GoTokenizer(sourceID, strings.NewReader(source), opts...)
	tokens, err := Tokens(t)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("scanning %s: %w", sourceID, err)
	}
	return parser.ParseTokens(p, tokens, source, parser.WithSourceName(sourceID))
}

// Kind matches a token of a given category. name is used for diagnostics.
func Kind(name string, kind parsec.TokType) parser.Parser[DefaultToken] {
	return parser.Token(name, func(tok parsec.Token) (DefaultToken, bool) {
		dt, ok := tok.Value.(DefaultToken)
		return dt, ok && dt.Kind == kind
	})
}

// Lit matches a token by its lexeme, as it is usual for operators and
// keywords.
func Lit(lexeme string) parser.Parser[DefaultToken] {
	return parser.Token(strconv.Quote(lexeme), func(tok parsec.Token) (DefaultToken, bool) {
		dt, ok := tok.Value.(DefaultToken)
		return dt, ok && dt.Lexeme == lexeme
	})
}
