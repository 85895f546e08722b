package parser

// choiceNode tries its alternatives in order. Every alternative starts from
// the same snapshot; the first one to succeed wins.
type choiceNode struct {
	alternatives []node
}

func (ch *choiceNode) apply(ctx *Context) bool {
	at, step, result := ctx.at, ctx.step, ctx.result
	for _, alt := range ch.alternatives {
		if ctx.apply(alt) {
			return true
		}
		ctx.Restore(step, at, result)
	}
	return false
}

func (ch *choiceNode) String() string {
	return "(" + listString(ch.alternatives, " | ") + ")"
}

// Or is ordered choice: alternatives are tried in order and the first one
// succeeding wins. After a failed alternative the input position is reset,
// so alternatives may share arbitrarily long prefixes.
//
// Or without alternatives never matches; Or with a single alternative is
// that alternative.
func Or[T any](alternatives ...Parser[T]) Parser[T] {
	switch len(alternatives) {
	case 0:
		return Never[T]()
	case 1:
		nodesOf("or", alternatives[0])
		return alternatives[0]
	}
	return wrap[T](&choiceNode{alternatives: nodesOf("or", rules(alternatives)...)})
}

// Alt is ordered choice between parsers of unrelated result types.
func Alt(alternatives ...Rule) Parser[interface{}] {
	if len(alternatives) == 0 {
		return Never[interface{}]()
	}
	return wrap[interface{}](&choiceNode{alternatives: nodesOf("alt", alternatives...)})
}

// Optional runs p and produces its result, or produces T's zero value
// without consuming input if p fails.
func Optional[T any](p Parser[T]) Parser[T] {
	var zero T
	return OptionalOr(p, zero)
}

// Optional is a shortcut for Optional(p).
func (p Parser[T]) Optional() Parser[T] {
	return Optional(p)
}

// OptionalOr runs p and produces its result, or produces v without
// consuming input if p fails.
func OptionalOr[T any](p Parser[T], v T) Parser[T] {
	return wrap[T](&choiceNode{alternatives: []node{
		nodesOf("optional", p)[0],
		constantNode{value: v},
	}})
}

func rules[T any](parsers []Parser[T]) []Rule {
	r := make([]Rule, len(parsers))
	for i, p := range parsers {
		r[i] = p
	}
	return r
}
