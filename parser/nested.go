package parser

import (
	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/pattern"
)

// --- Character level -------------------------------------------------------

// scanNode matches a pattern at the current character position.
type scanNode struct {
	pat  pattern.Pattern
	name string
}

func (s scanNode) apply(ctx *Context) bool {
	if ctx.tokenized {
		ctx.RecordMissing(s.name)
		return false
	}
	n, ok := s.pat.Match(ctx.source, ctx.at, len(ctx.source))
	if !ok {
		ctx.RecordMissing(s.name)
		return false
	}
	ctx.result = ctx.source[ctx.at : ctx.at+n]
	ctx.Consume(n)
	return true
}

func (s scanNode) String() string {
	return s.name
}

// Scan creates a parser from a pattern. It produces the matched text and
// reports name as missing if the pattern does not match.
func Scan(pat pattern.Pattern, name string) Parser[string] {
	if pat == nil {
		panic(constructionError("scan %q: pattern is nil", name))
	}
	return wrap[string](scanNode{pat: pat, name: name})
}

// sourceNode produces the source text consumed by p.
type sourceNode struct {
	p node
}

func (s sourceNode) apply(ctx *Context) bool {
	from, at := ctx.Index(), ctx.at
	if !ctx.apply(s.p) {
		return false
	}
	span := parsec.Span{from, ctx.Index()}
	if ctx.tokenized && ctx.at > at {
		span[1] = ctx.tokens[ctx.at-1].Span().To()
	}
	// Tokens of ParseTokens may lie outside of a partial or empty source.
	ctx.result = span.Text(ctx.source)
	return true
}

func (s sourceNode) String() string {
	return "source(" + s.p.String() + ")"
}

// Source runs p and produces the text of the input consumed by p.
func Source[T any](p Parser[T]) Parser[string] {
	return wrap[string](sourceNode{p: nodesOf("source", p)[0]})
}

// tokenizeNode wraps the result of p into a token covering p's input.
type tokenizeNode struct {
	p node
}

func (t tokenizeNode) apply(ctx *Context) bool {
	from := ctx.Index()
	if !ctx.apply(t.p) {
		return false
	}
	ctx.result = parsec.Token{
		Index:  from,
		Length: ctx.Index() - from,
		Value:  ctx.result,
	}
	return true
}

func (t tokenizeNode) String() string {
	return "tokenize(" + t.p.String() + ")"
}

// Tokenize runs the character-level parser p and produces a token holding
// p's result, positioned at p's input.
func Tokenize[T any](p Parser[T]) Parser[parsec.Token] {
	return wrap[parsec.Token](tokenizeNode{p: nodesOf("tokenize", p)[0]})
}

// Lexer creates the lexing phase of a two-phase parse: it skips delimiters
// (whitespace, comments), then repeatedly matches a token followed by
// optional delimiters, producing the list of tokens.
//
// The lexer stops at the first input it cannot tokenize. The input remaining
// will then be reported by the end-of-input check of the surrounding parse.
func Lexer(token Parser[parsec.Token], delim Rule) Parser[[]parsec.Token] {
	skip := SkipMany(delim)
	return Named(Then(skip, Many(Skip(token, skip))), "lexer")
}

// --- Two-phase parsing -----------------------------------------------------

// nestedNode runs a lexer, then runs p in a child context over the tokens.
type nestedNode struct {
	lexer node
	p     node
}

func (nn nestedNode) apply(ctx *Context) bool {
	// The lexer's own failures, e.g. the one ending its repetition, are
	// irrelevant if the token phase fails.
	outer := ctx.diag
	ctx.diag = newDiagnostics()
	ok := ctx.apply(nn.lexer)
	lexing := ctx.diag
	ctx.diag = outer
	if !ok {
		outer.merge(lexing)
		return false
	}
	tokens, ok := ctx.result.([]parsec.Token)
	if !ok {
		ctx.RecordFailure("lexer produced no tokens")
		return false
	}
	child := ctx.nested(tokens)
	child.diag = newDiagnostics()
	if ctx.applyNested(nn.p, child) {
		outer.merge(lexing)
		return true
	}
	outer.merge(child.diag)
	return false
}

func (nn nestedNode) String() string {
	return nn.p.String() + ".from(" + nn.lexer.String() + ")"
}

// Nested combines a lexing phase with a token-level grammar p. p has to
// consume all tokens produced by lexer. Diagnostics of p are reported at the
// source offsets of the tokens.
func Nested[T any](lexer Parser[[]parsec.Token], p Parser[T]) Parser[T] {
	ns := nodesOf("nested", lexer, p)
	return wrap[T](nestedNode{
		lexer: ns[0],
		p: &sequenceNode{
			name:     "phrase",
			children: []node{ns[1], eof},
			combine: func(v []interface{}) interface{} {
				return v[0]
			},
		},
	})
}

// From is a shortcut for Nested(lexer, p).
func (p Parser[T]) From(lexer Parser[[]parsec.Token]) Parser[T] {
	return Nested(lexer, p)
}
