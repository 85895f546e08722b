package parser

// rhs is an operator together with its right operand.
type rhs[T any] struct {
	op      func(T, T) T
	operand T
}

func operatorTail[T any](p Parser[T], op Parser[func(T, T) T]) Parser[rhs[T]] {
	return Seq2(op, p, func(f func(T, T) T, b T) rhs[T] {
		return rhs[T]{op: f, operand: b}
	})
}

// Infixl parses left-associative binary operator expressions
//
//	p (op p)*
//
// "1+2+3" is evaluated as (1+2)+3.
func Infixl[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	e := Seq2(p, Many(operatorTail(p, op)), foldLeft[T])
	return Named(e, "infixl("+p.String()+", "+op.String()+")")
}

// Infixr parses right-associative binary operator expressions
//
//	p (op p)*
//
// "1+2+3" is evaluated as 1+(2+3).
func Infixr[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	e := Seq2(p, Many(operatorTail(p, op)), foldRight[T])
	return Named(e, "infixr("+p.String()+", "+op.String()+")")
}

// Infixn parses a non-associative binary operator expression
//
//	p (op p)?
//
// If the operator and its right operand do not match, the result is that
// of the first p alone.
func Infixn[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	var none *rhs[T]
	tail := Map(operatorTail(p, op), func(r rhs[T]) *rhs[T] {
		return &r
	})
	e := Seq2(p, OptionalOr(tail, none), func(a T, r *rhs[T]) T {
		if r == nil {
			return a
		}
		return r.op(a, r.operand)
	})
	return Named(e, "infixn("+p.String()+", "+op.String()+")")
}

// Prefix parses any number of prefix operators before p. Operators are
// applied innermost first, i.e. "-+x" is -(+x).
func Prefix[T any](op Parser[func(T) T], p Parser[T]) Parser[T] {
	e := Seq2(Many(op), p, applyPrefix[T])
	return Named(e, "prefix("+op.String()+", "+p.String()+")")
}

// Postfix parses any number of postfix operators after p. Operators are
// applied in the order they appear, i.e. "x!?" is (x!)?.
func Postfix[T any](p Parser[T], op Parser[func(T) T]) Parser[T] {
	e := Seq2(p, Many(op), applyPostfix[T])
	return Named(e, "postfix("+p.String()+", "+op.String()+")")
}

func foldLeft[T any](first T, rhss []rhs[T]) T {
	acc := first
	for _, r := range rhss {
		acc = r.op(acc, r.operand)
	}
	return acc
}

func foldRight[T any](first T, rhss []rhs[T]) T {
	if len(rhss) == 0 {
		return first
	}
	last := len(rhss) - 1
	acc := rhss[last].operand
	for i := last; i > 0; i-- {
		acc = rhss[i].op(rhss[i-1].operand, acc)
	}
	return rhss[0].op(first, acc)
}

func applyPrefix[T any](ops []func(T) T, operand T) T {
	for i := len(ops) - 1; i >= 0; i-- {
		operand = ops[i](operand)
	}
	return operand
}

func applyPostfix[T any](operand T, ops []func(T) T) T {
	for _, op := range ops {
		operand = op(operand)
	}
	return operand
}
