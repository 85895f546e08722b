package parser

import "fmt"

// repeatNode applies p at least min and at most max times (max < 0 means
// unbounded). After the mandatory repetitions, an element failing without
// having advanced the step counter ends the repetition; an element failing
// after consuming input fails the whole repetition. An element succeeding
// without consuming input ends the repetition and is not collected.
type repeatNode struct {
	p       node
	min     int
	max     int
	collect func([]interface{}) interface{} // nil for skipping repetitions
}

func (r *repeatNode) apply(ctx *Context) bool {
	var values []interface{}
	for i := 0; i < r.min; i++ {
		if !ctx.apply(r.p) {
			return false
		}
		if r.collect != nil {
			values = append(values, ctx.result)
		}
	}
	for i := r.min; r.max < 0 || i < r.max; i++ {
		at, step, result := ctx.at, ctx.step, ctx.result
		if !ctx.apply(r.p) {
			if ctx.step != step {
				return false
			}
			ctx.Restore(step, at, result)
			break
		}
		if ctx.at == at {
			break
		}
		if r.collect != nil {
			values = append(values, ctx.result)
		}
	}
	if r.collect != nil {
		ctx.result = r.collect(values)
	} else {
		ctx.result = nil
	}
	return true
}

func (r *repeatNode) String() string {
	p := r.p.String()
	switch {
	case r.max < 0 && r.min == 0:
		return p + "*"
	case r.max < 0 && r.min == 1:
		return p + "+"
	case r.max < 0:
		return fmt.Sprintf("%s{%d,}", p, r.min)
	case r.min == r.max:
		return fmt.Sprintf("%s{%d}", p, r.min)
	}
	return fmt.Sprintf("%s{%d,%d}", p, r.min, r.max)
}

func newRepeat[T any](where string, p Parser[T], min, max int) Parser[[]T] {
	if min < 0 || (max >= 0 && max < min) {
		panic(constructionError("%s: invalid bounds %d..%d", where, min, max))
	}
	return wrap[[]T](&repeatNode{
		p:   nodesOf(where, p)[0],
		min: min,
		max: max,
		collect: func(v []interface{}) interface{} {
			return castSlice[T](v)
		},
	})
}

// Many applies p zero or more times, producing the list of results.
func Many[T any](p Parser[T]) Parser[[]T] {
	return newRepeat("many", p, 0, -1)
}

// Many1 applies p one or more times.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return newRepeat("many1", p, 1, -1)
}

// AtLeast applies p min or more times.
func AtLeast[T any](min int, p Parser[T]) Parser[[]T] {
	return newRepeat("atLeast", p, min, -1)
}

// Repeat applies p exactly n times.
func Repeat[T any](n int, p Parser[T]) Parser[[]T] {
	return newRepeat("repeat", p, n, n)
}

// Times applies p at least min and at most max times.
func Times[T any](min, max int, p Parser[T]) Parser[[]T] {
	return newRepeat("times", p, min, max)
}

// SkipMany applies r zero or more times, discarding the results.
func SkipMany(r Rule) Parser[interface{}] {
	return wrap[interface{}](&repeatNode{p: nodesOf("skipMany", r)[0], max: -1})
}

// SepBy1 parses one or more p, separated by sep.
func SepBy1[T any](p Parser[T], sep Rule) Parser[[]T] {
	return Seq2(p, Many(Then(sep, p)), func(first T, rest []T) []T {
		return append([]T{first}, rest...)
	})
}

// SepBy parses zero or more p, separated by sep.
func SepBy[T any](p Parser[T], sep Rule) Parser[[]T] {
	return OptionalOr(SepBy1(p, sep), []T{})
}
