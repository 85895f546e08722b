package parser

import (
	"github.com/npillmayer/parsec"
)

// Option configures a parse run.
type Option func(*config)

type config struct {
	hook       Hook
	sourceName string
	locator    parsec.Locator
}

// WithHook installs an observation hook for the parse run.
func WithHook(h Hook) Option {
	return func(c *config) {
		c.hook = h
	}
}

// WithSourceName sets the name used to prefix error messages, usually a
// file name.
func WithSourceName(name string) Option {
	return func(c *config) {
		c.sourceName = name
	}
}

// WithLocator replaces the default locator, which maps source offsets to
// line and column by scanning the source for newlines.
func WithLocator(loc parsec.Locator) Option {
	return func(c *config) {
		c.locator = loc
	}
}

func makeConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse runs p over source. p has to consume the complete input. On failure,
// the error returned is of type *Error.
func (p Parser[T]) Parse(source string, opts ...Option) (T, error) {
	ctx := newContext(source, makeConfig(opts))
	return run[T](ctx, p.root())
}

// Parse runs p over source. It is a shortcut for p.Parse(source, opts...).
func Parse[T any](p Parser[T], source string, opts ...Option) (T, error) {
	return p.Parse(source, opts...)
}

// ParseTokens runs a token-level parser p over tokens which have been
// created by an external lexer. source is the text the tokens have been
// created from; it is used for locating errors and may be empty.
func ParseTokens[T any](p Parser[T], tokens []parsec.Token, source string, opts ...Option) (T, error) {
	ctx := newContext(source, makeConfig(opts))
	ctx = ctx.nested(tokens)
	ctx.parent = nil
	ctx.endIndex = len(source)
	if n := len(tokens); n > 0 && tokens[n-1].Index+tokens[n-1].Length > ctx.endIndex {
		ctx.endIndex = tokens[n-1].Index + tokens[n-1].Length
	}
	return run[T](ctx, p.root())
}

func run[T any](ctx *Context, n node) (T, error) {
	var zero T
	if !ctx.apply(n) {
		return zero, ctx.Err()
	}
	v := ctx.result
	if !ctx.apply(eof) {
		return zero, ctx.Err()
	}
	return cast[T](v), nil
}
