package parser

import (
	"fmt"
	"strings"
)

// node is the untyped core of a parser. The set of node variants is closed;
// clients build new parsers by composition or with Func.
type node interface {
	apply(ctx *Context) bool
	String() string
}

// Rule is the type-erased view of a parser. Combinators which ignore the
// values of some of their operands, like Sequence or Then, accept Rules.
// Every Parser[T] is a Rule.
type Rule interface {
	fmt.Stringer
	root() node
}

// Parser is a parser producing values of type T. Parsers are immutable
// values and safe for concurrent use. The zero Parser is not usable.
type Parser[T any] struct {
	n node
}

var _ Rule = Parser[int]{}

func (p Parser[T]) root() node {
	if p.n == nil {
		panic(constructionError("use of uninitialized parser"))
	}
	return p.n
}

func (p Parser[T]) String() string {
	if p.n == nil {
		return "<nil>"
	}
	return p.n.String()
}

// IsValid is false for the zero Parser.
func (p Parser[T]) IsValid() bool {
	return p.n != nil
}

func wrap[T any](n node) Parser[T] {
	return Parser[T]{n: n}
}

// cast converts an untyped result into T. A nil result yields T's zero value.
func cast[T any](v interface{}) T {
	t, _ := v.(T)
	return t
}

// nodesOf extracts the nodes of rules, panicking for invalid rules.
func nodesOf(where string, rules ...Rule) []node {
	nodes := make([]node, len(rules))
	for i, r := range rules {
		if r == nil {
			panic(constructionError("%s: operand #%d is nil", where, i))
		}
		if p, ok := r.(interface{ IsValid() bool }); ok && !p.IsValid() {
			panic(constructionError("%s: operand #%d is uninitialized", where, i))
		}
		nodes[i] = r.root()
	}
	return nodes
}

func listString(nodes []node, sep string) string {
	s := make([]string, len(nodes))
	for i, n := range nodes {
		s[i] = n.String()
	}
	return strings.Join(s, sep)
}

// --- Leaf nodes ------------------------------------------------------------

type constantNode struct {
	value interface{}
}

func (c constantNode) apply(ctx *Context) bool {
	ctx.result = c.value
	return true
}

func (c constantNode) String() string {
	return fmt.Sprintf("constant(%v)", c.value)
}

type failKind int8

const (
	failNever failKind = iota
	failMessage
	failExpected
	failUnexpected
)

// failNode always fails, recording a diagnostic according to its kind.
type failNode struct {
	kind failKind
	msg  string
}

func (f failNode) apply(ctx *Context) bool {
	switch f.kind {
	case failMessage:
		ctx.RecordFailure(f.msg)
	case failExpected:
		ctx.RecordExpected(f.msg)
	case failUnexpected:
		ctx.RecordUnexpected(f.msg)
	}
	return false
}

func (f failNode) String() string {
	switch f.kind {
	case failMessage:
		return fmt.Sprintf("fail(%q)", f.msg)
	case failExpected:
		return fmt.Sprintf("expect(%s)", f.msg)
	case failUnexpected:
		return fmt.Sprintf("unexpected(%s)", f.msg)
	}
	return "never"
}

type eofNode struct {
	name string
}

func (e eofNode) apply(ctx *Context) bool {
	if ctx.IsEOF() {
		ctx.result = nil
		return true
	}
	ctx.RecordMissing(e.name)
	return false
}

func (e eofNode) String() string {
	return e.name
}

type indexNode struct{}

func (indexNode) apply(ctx *Context) bool {
	ctx.result = ctx.Index()
	return true
}

func (indexNode) String() string {
	return "index"
}

type funcNode struct {
	name string
	f    func(*Context) (interface{}, bool)
}

func (f funcNode) apply(ctx *Context) bool {
	v, ok := f.f(ctx)
	if ok {
		ctx.result = v
	}
	return ok
}

func (f funcNode) String() string {
	return f.name
}

// --- Transforming nodes ----------------------------------------------------

type mapNode struct {
	p node
	f func(interface{}) interface{}
}

func (m mapNode) apply(ctx *Context) bool {
	if !ctx.apply(m.p) {
		return false
	}
	ctx.result = m.f(ctx.result)
	return true
}

func (m mapNode) String() string {
	return m.p.String()
}

// bindNode selects the parser to continue with by the result of p.
type bindNode struct {
	p node
	f func(interface{}) node
}

func (b bindNode) apply(ctx *Context) bool {
	if !ctx.apply(b.p) {
		return false
	}
	next := b.f(ctx.result)
	if next == nil {
		panic(constructionError("bind: continuation after %s returned a nil parser", b.p))
	}
	return ctx.apply(next)
}

func (b bindNode) String() string {
	return "bind(" + b.p.String() + ")"
}

// labelNode replaces the diagnostics of p at its start position by a single
// expected-record. Diagnostics deeper into the input are kept.
type labelNode struct {
	p    node
	name string
}

func (l labelNode) apply(ctx *Context) bool {
	start := ctx.at
	prev := ctx.muteUpTo(ctx.Index())
	ok := ctx.apply(l.p)
	ctx.unmute(prev)
	if !ok {
		at := ctx.at
		ctx.at = start
		ctx.RecordExpected(l.name)
		ctx.at = at
	}
	return ok
}

func (l labelNode) String() string {
	return l.name
}

// namedNode renames p for tracing, without touching its diagnostics.
type namedNode struct {
	p    node
	name string
}

func (n namedNode) apply(ctx *Context) bool {
	return ctx.apply(n.p)
}

func (n namedNode) String() string {
	return n.name
}

// atomicNode collapses p into a single step and rolls back on failure.
type atomicNode struct {
	p node
}

func (a atomicNode) apply(ctx *Context) bool {
	at, step, result := ctx.at, ctx.step, ctx.result
	if !ctx.apply(a.p) {
		ctx.Restore(step, at, result)
		return false
	}
	ctx.step = step + 1
	return true
}

func (a atomicNode) String() string {
	return "atomic(" + a.p.String() + ")"
}

// peekNode runs p without consuming input.
type peekNode struct {
	p node
}

func (pk peekNode) apply(ctx *Context) bool {
	at, step, result := ctx.at, ctx.step, ctx.result
	if !ctx.apply(pk.p) {
		ctx.Restore(step, at, result)
		return false
	}
	ctx.at, ctx.step = at, step
	return true
}

func (pk peekNode) String() string {
	return "peek(" + pk.p.String() + ")"
}

// notNode succeeds without consuming input if and only if p fails.
type notNode struct {
	p    node
	name string
}

func (nt notNode) apply(ctx *Context) bool {
	at, step, result := ctx.at, ctx.step, ctx.result
	prev := ctx.muteAll()
	ok := ctx.apply(nt.p)
	ctx.unmute(prev)
	ctx.Restore(step, at, result)
	if ok {
		ctx.RecordUnexpected(nt.name)
		return false
	}
	ctx.result = nil
	return true
}

func (nt notNode) String() string {
	return "not(" + nt.name + ")"
}

// lazyNode is the indirection for recursive grammars.
type lazyNode struct {
	ref *reference
}

func (l lazyNode) apply(ctx *Context) bool {
	if l.ref.n == nil {
		panic(constructionError("reference %q used before being set", l.ref.name))
	}
	return ctx.apply(l.ref.n)
}

func (l lazyNode) String() string {
	return l.ref.name
}

type reference struct {
	name string
	n    node
}
