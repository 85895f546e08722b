package parser

import "fmt"

// Constant returns a parser which always succeeds with v, consuming nothing.
func Constant[T any](v T) Parser[T] {
	return wrap[T](constantNode{value: v})
}

// Always returns a parser which always succeeds with a nil result.
func Always() Parser[interface{}] {
	return wrap[interface{}](constantNode{})
}

// Never returns a parser which always fails, without recording anything.
func Never[T any]() Parser[T] {
	return wrap[T](failNode{kind: failNever})
}

// Fail returns a parser which always fails with message msg.
func Fail[T any](msg string) Parser[T] {
	return wrap[T](failNode{kind: failMessage, msg: msg})
}

// Expect returns a parser which always fails, reporting that name was expected.
func Expect[T any](name string) Parser[T] {
	return wrap[T](failNode{kind: failExpected, msg: name})
}

// Unexpected returns a parser which always fails, reporting name as unexpected.
func Unexpected[T any](name string) Parser[T] {
	return wrap[T](failNode{kind: failUnexpected, msg: name})
}

// EOF returns a parser which succeeds at the end of input only. name is used
// for diagnostics, usually "EOF".
func EOF(name string) Parser[interface{}] {
	return wrap[interface{}](eofNode{name: name})
}

var eof = eofNode{name: "EOF"}

// Index returns a parser which consumes nothing and produces the source offset
// of the current position.
func Index() Parser[int] {
	return wrap[int](indexNode{})
}

// Func creates a parser from a function operating directly on the context.
// f has to return false if it did not match and should record a diagnostic
// in this case. On success, f must have consumed whatever it matched.
func Func[T any](name string, f func(*Context) (T, bool)) Parser[T] {
	if f == nil {
		panic(constructionError("func %q: function is nil", name))
	}
	return wrap[T](funcNode{
		name: name,
		f: func(ctx *Context) (interface{}, bool) {
			return f(ctx)
		},
	})
}

// Map transforms the result of p by f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	if f == nil {
		panic(constructionError("map: function is nil"))
	}
	return wrap[U](mapNode{
		p: nodesOf("map", p)[0],
		f: func(v interface{}) interface{} {
			return f(cast[T](v))
		},
	})
}

// Value returns a parser running p and producing v instead of p's result.
func Value[T, U any](p Parser[T], v U) Parser[U] {
	return wrap[U](mapNode{
		p: nodesOf("value", p)[0],
		f: func(interface{}) interface{} {
			return v
		},
	})
}

// Bind runs p and continues with the parser f returns for p's result.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	if f == nil {
		panic(constructionError("bind: function is nil"))
	}
	return wrap[U](bindNode{
		p: nodesOf("bind", p)[0],
		f: func(v interface{}) node {
			return f(cast[T](v)).n
		},
	})
}

// Label names p for diagnostics. If p fails, the failure is reported as
// "name expected" at the position where p started, unless p did reach a
// position further into the input.
func Label[T any](p Parser[T], name string) Parser[T] {
	return wrap[T](labelNode{p: nodesOf("label", p)[0], name: name})
}

// Label is a shortcut for Label(p, name).
func (p Parser[T]) Label(name string) Parser[T] {
	return Label(p, name)
}

// Named renames p for tracing. It does not change p's diagnostics.
func Named[T any](p Parser[T], name string) Parser[T] {
	return wrap[T](namedNode{p: nodesOf("named", p)[0], name: name})
}

// Atomic turns p into a parser consuming its input in a single step. If p
// fails, all of its input consumption is undone.
func Atomic[T any](p Parser[T]) Parser[T] {
	return wrap[T](atomicNode{p: nodesOf("atomic", p)[0]})
}

// Atomic is a shortcut for Atomic(p).
func (p Parser[T]) Atomic() Parser[T] {
	return Atomic(p)
}

// Peek runs p without consuming input. The result of p is kept.
func Peek[T any](p Parser[T]) Parser[T] {
	return wrap[T](peekNode{p: nodesOf("peek", p)[0]})
}

// Not succeeds if p fails, and fails reporting name as unexpected if p
// succeeds. It never consumes input.
func Not(p Rule, name string) Parser[interface{}] {
	return wrap[interface{}](notNode{p: nodesOf("not", p)[0], name: name})
}

// --- References ------------------------------------------------------------

// Reference is a placeholder for a parser to be set later. References are
// used to build recursive grammars:
//
//	expr := parser.NewReference[Expr]("expr")
//	term := parser.Or(number, parser.Between(lparen, expr.Lazy(), rparen))
//	expr.Set(parser.Infixl(term, addOp))
//
// A reference has to be set before any parser using it is run.
type Reference[T any] struct {
	ref *reference
}

// NewReference creates an empty reference. name is used for tracing.
func NewReference[T any](name string) *Reference[T] {
	return &Reference[T]{ref: &reference{name: name}}
}

// Set binds the reference to p. Set may be called once only.
func (r *Reference[T]) Set(p Parser[T]) {
	if r.ref.n != nil {
		panic(constructionError("reference %q set twice", r.ref.name))
	}
	r.ref.n = nodesOf(fmt.Sprintf("reference %q", r.ref.name), p)[0]
}

// Lazy returns a parser delegating to the parser the reference is set to.
func (r *Reference[T]) Lazy() Parser[T] {
	return wrap[T](lazyNode{ref: r.ref})
}
