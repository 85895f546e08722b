package parser

type policy int8

const (
	longest policy = iota
	shortest
)

func (pol policy) String() string {
	if pol == longest {
		return "longest"
	}
	return "shortest"
}

// better is strict: on ties the earlier alternative stays the winner.
func (pol policy) better(at, than int) bool {
	if pol == longest {
		return at > than
	}
	return at < than
}

// bestNode runs every alternative from the same snapshot and keeps the
// outcome of the winner according to its policy.
type bestNode struct {
	policy       policy
	alternatives []node
}

func (b *bestNode) apply(ctx *Context) bool {
	at, step, result := ctx.at, ctx.step, ctx.result
	found := false
	var bestAt, bestStep int
	var bestResult interface{}
	for _, alt := range b.alternatives {
		ok := ctx.apply(alt)
		if ok && (!found || b.policy.better(ctx.at, bestAt)) {
			found = true
			bestAt, bestStep, bestResult = ctx.at, ctx.step, ctx.result
		}
		ctx.Restore(step, at, result)
	}
	if found {
		ctx.Restore(bestStep, bestAt, bestResult)
	}
	return found
}

func (b *bestNode) String() string {
	return b.policy.String() + "(" + listString(b.alternatives, ", ") + ")"
}

func newBest[T any](pol policy, alternatives []Parser[T]) Parser[T] {
	switch len(alternatives) {
	case 0:
		return Never[T]()
	case 1:
		nodesOf(pol.String(), alternatives[0])
		return alternatives[0]
	}
	return wrap[T](&bestNode{
		policy:       pol,
		alternatives: nodesOf(pol.String(), rules(alternatives)...),
	})
}

// Longest runs all alternatives and picks the one consuming the most input.
// Of alternatives consuming the same amount of input, the first one wins.
func Longest[T any](alternatives ...Parser[T]) Parser[T] {
	return newBest(longest, alternatives)
}

// Shortest runs all alternatives and picks the one consuming the least input.
// Of alternatives consuming the same amount of input, the first one wins.
func Shortest[T any](alternatives ...Parser[T]) Parser[T] {
	return newBest(shortest, alternatives)
}

// Longer is Longest of two parsers.
func Longer[T any](p1, p2 Parser[T]) Parser[T] {
	return Longest(p1, p2)
}

// Shorter is Shortest of two parsers.
func Shorter[T any](p1, p2 Parser[T]) Parser[T] {
	return Shortest(p1, p2)
}
