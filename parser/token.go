package parser

import (
	"fmt"

	"github.com/npillmayer/parsec"
)

// tokenNode matches a single token. mapper decides whether the token is
// acceptable and what value it produces.
type tokenNode struct {
	name   string
	mapper func(parsec.Token) (interface{}, bool)
}

func (t tokenNode) apply(ctx *Context) bool {
	tok, ok := ctx.CurrentToken()
	if !ok {
		ctx.RecordMissing(t.name)
		return false
	}
	v, ok := t.mapper(tok)
	if !ok {
		ctx.RecordMissing(t.name)
		return false
	}
	ctx.result = v
	ctx.Consume(1)
	return true
}

func (t tokenNode) String() string {
	return t.name
}

// Token creates a parser for a single token of a token-level context. The
// token is accepted if mapper returns true and the parser produces mapper's
// value. If the input is exhausted or the token is not accepted, name is
// reported as missing.
//
// Applied to a character-level context, a token parser always fails.
func Token[T any](name string, mapper func(parsec.Token) (T, bool)) Parser[T] {
	if mapper == nil {
		panic(constructionError("token %q: mapper is nil", name))
	}
	return wrap[T](tokenNode{
		name: name,
		mapper: func(tok parsec.Token) (interface{}, bool) {
			return mapper(tok)
		},
	})
}

// TokenType matches any token whose value is of type T and produces the
// token's value.
func TokenType[T any](name string) Parser[T] {
	return Token(name, func(tok parsec.Token) (T, bool) {
		v, ok := tok.Value.(T)
		return v, ok
	})
}

// TokenIs matches tokens whose value equals want. want must be of a
// comparable type. The parser produces the whole token.
func TokenIs(name string, want interface{}) Parser[parsec.Token] {
	if want == nil {
		panic(constructionError("token %q: nil value", name))
	}
	return Token(name, func(tok parsec.Token) (parsec.Token, bool) {
		return tok, tok.Value == want
	})
}

// Fragment matches tokens with a parsec.Fragment value of the given kind and
// text and produces the fragment's text. An empty text matches every fragment
// of that kind.
func Fragment(kind, text string) Parser[string] {
	name := kind
	if text != "" {
		name = fmt.Sprintf("'%s'", text)
	}
	return Token(name, func(tok parsec.Token) (string, bool) {
		f, ok := tok.Value.(parsec.Fragment)
		if !ok || f.Kind != kind || (text != "" && f.Text != text) {
			return "", false
		}
		return f.Text, true
	})
}

// AnyToken matches any single token and produces it.
func AnyToken() Parser[parsec.Token] {
	return Token("any token", func(tok parsec.Token) (parsec.Token, bool) {
		return tok, true
	})
}
