package parser

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/parsec"
)

// Context holds the state of a single parse run. It is created by Parse or
// ParseTokens and handed to every parser applied during the run. A context
// operates either on the characters of a source string or, for the
// token-level phase of a two-phase parse, on an array of tokens.
//
// Contexts are not safe for concurrent use. They are exposed to clients
// only for implementing parsers with Func.
type Context struct {
	source    string
	tokens    []parsec.Token
	tokenized bool
	endIndex  int // source offset reported at the end of the token array
	at        int // index into source (characters) or tokens
	step      int
	result    interface{}
	parent    *Context
	locator   parsec.Locator
	name      string
	hook      Hook
	depth     int
	mute      int // diagnostics at offsets up to mute are dropped
	diag      *diagnostics
}

func newContext(source string, cfg *config) *Context {
	ctx := &Context{
		source:  source,
		locator: cfg.locator,
		name:    cfg.sourceName,
		hook:    cfg.hook,
		mute:    -1,
		diag:    newDiagnostics(),
	}
	if ctx.locator == nil {
		ctx.locator = parsec.NewSourceLocator(source)
	}
	return ctx
}

// nested creates a child context over tokens. The child shares source,
// locator, hook and, unless replaced, the diagnostics record with its parent.
func (ctx *Context) nested(tokens []parsec.Token) *Context {
	return &Context{
		source:    ctx.source,
		tokens:    tokens,
		tokenized: true,
		endIndex:  ctx.Index(),
		parent:    ctx,
		locator:   ctx.locator,
		name:      ctx.name,
		hook:      ctx.hook,
		depth:     ctx.depth,
		mute:      ctx.mute,
		diag:      ctx.diag,
	}
}

// Source returns the complete input text of the parse run.
func (ctx *Context) Source() string {
	return ctx.source
}

// Parent returns the context of the lexing phase for a token-level context,
// nil otherwise.
func (ctx *Context) Parent() *Context {
	return ctx.parent
}

// IsTokenized is true for contexts operating on tokens.
func (ctx *Context) IsTokenized() bool {
	return ctx.tokenized
}

// At returns the current position, either a byte offset into the source
// or an index into the token array.
func (ctx *Context) At() int {
	return ctx.at
}

// Step returns the number of consumption steps done so far.
func (ctx *Context) Step() int {
	return ctx.step
}

// Index returns the source offset of the current position. For token-level
// contexts this is the start offset of the current token, or the end of
// the lexed input if all tokens are consumed.
func (ctx *Context) Index() int {
	if !ctx.tokenized {
		return ctx.at
	}
	if ctx.at >= len(ctx.tokens) {
		return ctx.endIndex
	}
	return ctx.tokens[ctx.at].Index
}

// IsEOF is true if all input has been consumed.
func (ctx *Context) IsEOF() bool {
	if ctx.tokenized {
		return ctx.at >= len(ctx.tokens)
	}
	return ctx.at >= len(ctx.source)
}

// Result returns the value produced by the most recent successful parser.
func (ctx *Context) Result() interface{} {
	return ctx.result
}

// SetResult sets the value of the current parser.
func (ctx *Context) SetResult(v interface{}) {
	ctx.result = v
}

// CurrentToken returns the token at the current position. It returns false
// at the end of input and for character-level contexts.
func (ctx *Context) CurrentToken() (parsec.Token, bool) {
	if !ctx.tokenized || ctx.at >= len(ctx.tokens) {
		return parsec.Token{}, false
	}
	return ctx.tokens[ctx.at], true
}

// Peek returns the rune at the current position of a character-level
// context. It returns false at the end of input and for token-level contexts.
func (ctx *Context) Peek() (rune, bool) {
	if ctx.tokenized || ctx.at >= len(ctx.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(ctx.source[ctx.at:])
	return r, true
}

// Consume advances the current position by n units (bytes or tokens).
func (ctx *Context) Consume(n int) {
	if n <= 0 {
		return
	}
	ctx.at += n
	ctx.step++
}

// Advance consumes a single rune or token. It returns false at the end
// of input.
func (ctx *Context) Advance() bool {
	if ctx.IsEOF() {
		return false
	}
	if ctx.tokenized {
		ctx.Consume(1)
		return true
	}
	_, w := utf8.DecodeRuneInString(ctx.source[ctx.at:])
	ctx.Consume(w)
	return true
}

// Restore resets the context to a previously taken snapshot.
func (ctx *Context) Restore(step, at int, result interface{}) {
	ctx.step = step
	ctx.at = at
	ctx.result = result
}

// Locate returns the line and column of a source offset.
func (ctx *Context) Locate(offset int) parsec.Location {
	return ctx.locator.Locate(offset)
}

// RecordMissing records that name was missing at the current position.
// For the purpose of error messages this is identical to RecordExpected.
func (ctx *Context) RecordMissing(name string) {
	ctx.RecordExpected(name)
}

// RecordExpected records that name was expected at the current position.
func (ctx *Context) RecordExpected(name string) {
	if ctx.muted() {
		return
	}
	ctx.diag.expect(ctx.Index(), name, ctx.encountered)
}

// RecordUnexpected records that name was found where it should not be.
func (ctx *Context) RecordUnexpected(name string) {
	if ctx.muted() {
		return
	}
	ctx.diag.unexpect(ctx.Index(), name, ctx.encountered)
}

// RecordFailure records a free-form failure message at the current position.
func (ctx *Context) RecordFailure(msg string) {
	if ctx.muted() {
		return
	}
	ctx.diag.fail(ctx.Index(), msg, ctx.encountered)
}

func (ctx *Context) muted() bool {
	return ctx.Index() <= ctx.mute
}

// muteUpTo suppresses diagnostics at offsets up to and including offset.
// It returns the previous setting, to be handed to unmute.
func (ctx *Context) muteUpTo(offset int) int {
	prev := ctx.mute
	if offset > ctx.mute {
		ctx.mute = offset
	}
	return prev
}

func (ctx *Context) muteAll() int {
	return ctx.muteUpTo(math.MaxInt)
}

func (ctx *Context) unmute(prev int) {
	ctx.mute = prev
}

// encountered describes the input at the current position.
func (ctx *Context) encountered() string {
	if ctx.tokenized && ctx.IsEOF() && ctx.endIndex < len(ctx.source) {
		// tokens end before the source does
		r, _ := utf8.DecodeRuneInString(ctx.source[ctx.endIndex:])
		return strconv.QuoteRune(r)
	}
	if ctx.IsEOF() {
		return "EOF"
	}
	if ctx.tokenized {
		tok := ctx.tokens[ctx.at]
		if s, ok := tok.Value.(fmt.Stringer); ok {
			return s.String()
		}
		if tok.Value == nil && tok.Length > 0 && tok.Index+tok.Length <= len(ctx.source) {
			return strconv.Quote(ctx.source[tok.Index : tok.Index+tok.Length])
		}
		return fmt.Sprintf("%v", tok.Value)
	}
	r, _ := utf8.DecodeRuneInString(ctx.source[ctx.at:])
	return strconv.QuoteRune(r)
}

// apply runs a parser node, calling the hook if one is installed.
func (ctx *Context) apply(n node) bool {
	if ctx.hook == nil {
		return n.apply(ctx)
	}
	ctx.hook.Attempt(n, ctx.Index(), ctx.depth)
	ctx.depth++
	ok := n.apply(ctx)
	ctx.depth--
	if ok {
		ctx.hook.Success(n, ctx.Index(), ctx.depth)
	} else {
		ctx.hook.Failure(n, ctx.Index(), ctx.depth)
	}
	return ok
}

// applyNested runs n in child. On success the child's result and steps
// are carried over to ctx. The parent's position is left untouched, as
// the child's tokens cover the input already consumed by the lexer.
func (ctx *Context) applyNested(n node, child *Context) bool {
	ok := child.apply(n)
	ctx.step += child.step
	if ok {
		ctx.result = child.result
	}
	return ok
}

// Err returns the error describing the deepest failure recorded so far.
func (ctx *Context) Err() *Error {
	return ctx.diag.render(ctx)
}
