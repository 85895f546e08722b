package parser

// sequenceNode runs its children in order and fails at the first failing
// child. It produces the result of combine, if set, or else the result of
// the last child.
type sequenceNode struct {
	name     string
	children []node
	combine  func([]interface{}) interface{}
}

func (seq *sequenceNode) apply(ctx *Context) bool {
	var values []interface{}
	if seq.combine != nil {
		values = make([]interface{}, len(seq.children))
	}
	for i, child := range seq.children {
		if !ctx.apply(child) {
			return false
		}
		if values != nil {
			values[i] = ctx.result
		}
	}
	if seq.combine != nil {
		ctx.result = seq.combine(values)
	}
	return true
}

func (seq *sequenceNode) String() string {
	return seq.name + "(" + listString(seq.children, ", ") + ")"
}

func newSequence(name string, combine func([]interface{}) interface{}, rules ...Rule) *sequenceNode {
	return &sequenceNode{
		name:     name,
		children: nodesOf(name, rules...),
		combine:  combine,
	}
}

// Sequence runs rules in order, producing the result of the last one.
// An empty sequence always succeeds with a nil result.
func Sequence(rules ...Rule) Parser[interface{}] {
	if len(rules) == 0 {
		return Always()
	}
	return wrap[interface{}](newSequence("sequence", nil, rules...))
}

// Then runs first, then p, producing p's result.
func Then[T any](first Rule, p Parser[T]) Parser[T] {
	return wrap[T](newSequence("then", nil, first, p))
}

// Skip runs p, then next, producing p's result.
func Skip[T any](p Parser[T], next Rule) Parser[T] {
	return wrap[T](newSequence("skip", func(v []interface{}) interface{} {
		return v[0]
	}, p, next))
}

// Between runs open, p and close, producing p's result.
func Between[T any](open Rule, p Parser[T], close Rule) Parser[T] {
	return wrap[T](newSequence("between", func(v []interface{}) interface{} {
		return v[1]
	}, open, p, close))
}

// Seq2 runs p1 and p2 and combines their results with f.
func Seq2[A, B, R any](p1 Parser[A], p2 Parser[B], f func(A, B) R) Parser[R] {
	return wrap[R](newSequence("seq", func(v []interface{}) interface{} {
		return f(cast[A](v[0]), cast[B](v[1]))
	}, p1, p2))
}

// Seq3 runs p1 to p3 and combines their results with f.
func Seq3[A, B, C, R any](p1 Parser[A], p2 Parser[B], p3 Parser[C], f func(A, B, C) R) Parser[R] {
	return wrap[R](newSequence("seq", func(v []interface{}) interface{} {
		return f(cast[A](v[0]), cast[B](v[1]), cast[C](v[2]))
	}, p1, p2, p3))
}

// Seq4 runs p1 to p4 and combines their results with f.
func Seq4[A, B, C, D, R any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D],
	f func(A, B, C, D) R) Parser[R] {
	return wrap[R](newSequence("seq", func(v []interface{}) interface{} {
		return f(cast[A](v[0]), cast[B](v[1]), cast[C](v[2]), cast[D](v[3]))
	}, p1, p2, p3, p4))
}

// Seq5 runs p1 to p5 and combines their results with f.
func Seq5[A, B, C, D, E, R any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D], p5 Parser[E],
	f func(A, B, C, D, E) R) Parser[R] {
	return wrap[R](newSequence("seq", func(v []interface{}) interface{} {
		return f(cast[A](v[0]), cast[B](v[1]), cast[C](v[2]), cast[D](v[3]), cast[E](v[4]))
	}, p1, p2, p3, p4, p5))
}

// Tuple types for the results of Pair and TupleN.
type (
	Tuple2[A, B any] struct {
		V1 A
		V2 B
	}
	Tuple3[A, B, C any] struct {
		V1 A
		V2 B
		V3 C
	}
	Tuple4[A, B, C, D any] struct {
		V1 A
		V2 B
		V3 C
		V4 D
	}
	Tuple5[A, B, C, D, E any] struct {
		V1 A
		V2 B
		V3 C
		V4 D
		V5 E
	}
)

// Pair runs p1 and p2, producing both results.
func Pair[A, B any](p1 Parser[A], p2 Parser[B]) Parser[Tuple2[A, B]] {
	return Seq2(p1, p2, func(a A, b B) Tuple2[A, B] {
		return Tuple2[A, B]{a, b}
	})
}

// Tuple3Of runs p1 to p3, producing all results.
func Tuple3Of[A, B, C any](p1 Parser[A], p2 Parser[B], p3 Parser[C]) Parser[Tuple3[A, B, C]] {
	return Seq3(p1, p2, p3, func(a A, b B, c C) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{a, b, c}
	})
}

// Tuple4Of runs p1 to p4, producing all results.
func Tuple4Of[A, B, C, D any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D]) Parser[Tuple4[A, B, C, D]] {
	return Seq4(p1, p2, p3, p4, func(a A, b B, c C, d D) Tuple4[A, B, C, D] {
		return Tuple4[A, B, C, D]{a, b, c, d}
	})
}

// Tuple5Of runs p1 to p5, producing all results.
func Tuple5Of[A, B, C, D, E any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D],
	p5 Parser[E]) Parser[Tuple5[A, B, C, D, E]] {
	return Seq5(p1, p2, p3, p4, p5, func(a A, b B, c C, d D, e E) Tuple5[A, B, C, D, E] {
		return Tuple5[A, B, C, D, E]{a, b, c, d, e}
	})
}

// List runs all parsers in order, producing a slice of their results.
func List[T any](parsers ...Parser[T]) Parser[[]T] {
	rules := make([]Rule, len(parsers))
	for i, p := range parsers {
		rules[i] = p
	}
	return wrap[[]T](newSequence("list", func(v []interface{}) interface{} {
		return castSlice[T](v)
	}, rules...))
}

// Array runs all rules in order, producing an untyped slice of their results.
func Array(rules ...Rule) Parser[[]interface{}] {
	return wrap[[]interface{}](newSequence("array", func(v []interface{}) interface{} {
		return v
	}, rules...))
}

func castSlice[T any](v []interface{}) []T {
	ts := make([]T, len(v))
	for i, x := range v {
		ts[i] = cast[T](x)
	}
	return ts
}
