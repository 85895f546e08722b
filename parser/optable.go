package parser

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// OperatorTable collects operators of different precedence and associativity
// and builds an expression parser from them. Higher precedence values bind
// tighter.
//
//	expr := parser.NewOperatorTable[int]().
//	    Infixl(10, plus).Infixl(10, minus).
//	    Infixl(20, times).
//	    Prefix(30, negate).
//	    Build(operand)
//
// Operators of the same precedence and kind are combined with Or, in the
// order they have been added. Within a precedence level, prefix operators
// bind tighter than postfix operators, which bind tighter than infix
// operators.
//
// An OperatorTable is a builder and not safe for concurrent use; the parser
// built from it is.
type OperatorTable[T any] struct {
	levels *treemap.Map // precedence → *opLevel[T]
}

type opLevel[T any] struct {
	prefix  []Parser[func(T) T]
	postfix []Parser[func(T) T]
	infixl  []Parser[func(T, T) T]
	infixn  []Parser[func(T, T) T]
	infixr  []Parser[func(T, T) T]
}

// NewOperatorTable creates an empty operator table.
func NewOperatorTable[T any]() *OperatorTable[T] {
	return &OperatorTable[T]{levels: treemap.NewWithIntComparator()}
}

func (t *OperatorTable[T]) level(precedence int) *opLevel[T] {
	if l, found := t.levels.Get(precedence); found {
		return l.(*opLevel[T])
	}
	l := &opLevel[T]{}
	t.levels.Put(precedence, l)
	return l
}

// Prefix adds a prefix operator.
func (t *OperatorTable[T]) Prefix(precedence int, op Parser[func(T) T]) *OperatorTable[T] {
	nodesOf("prefix operator", op)
	l := t.level(precedence)
	l.prefix = append(l.prefix, op)
	return t
}

// Postfix adds a postfix operator.
func (t *OperatorTable[T]) Postfix(precedence int, op Parser[func(T) T]) *OperatorTable[T] {
	nodesOf("postfix operator", op)
	l := t.level(precedence)
	l.postfix = append(l.postfix, op)
	return t
}

// Infixl adds a left-associative binary operator.
func (t *OperatorTable[T]) Infixl(precedence int, op Parser[func(T, T) T]) *OperatorTable[T] {
	nodesOf("infixl operator", op)
	l := t.level(precedence)
	l.infixl = append(l.infixl, op)
	return t
}

// Infixr adds a right-associative binary operator.
func (t *OperatorTable[T]) Infixr(precedence int, op Parser[func(T, T) T]) *OperatorTable[T] {
	nodesOf("infixr operator", op)
	l := t.level(precedence)
	l.infixr = append(l.infixr, op)
	return t
}

// Infixn adds a non-associative binary operator.
func (t *OperatorTable[T]) Infixn(precedence int, op Parser[func(T, T) T]) *OperatorTable[T] {
	nodesOf("infixn operator", op)
	l := t.level(precedence)
	l.infixn = append(l.infixn, op)
	return t
}

// Size returns the number of precedence levels.
func (t *OperatorTable[T]) Size() int {
	return t.levels.Size()
}

// Build creates an expression parser for operand and the operators in the
// table. Levels are wrapped around operand from the tightest binding to the
// loosest.
func (t *OperatorTable[T]) Build(operand Parser[T]) Parser[T] {
	nodesOf("operator table", operand)
	expr := operand
	keys := t.levels.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		l, _ := t.levels.Get(keys[i])
		expr = l.(*opLevel[T]).wrap(expr)
		tracer().Debugf("operator table: level %v built", keys[i])
	}
	return expr
}

func (l *opLevel[T]) wrap(expr Parser[T]) Parser[T] {
	if len(l.prefix) > 0 {
		expr = Prefix(Or(l.prefix...), expr)
	}
	if len(l.postfix) > 0 {
		expr = Postfix(expr, Or(l.postfix...))
	}
	if len(l.infixl) > 0 {
		expr = Infixl(expr, Or(l.infixl...))
	}
	if len(l.infixn) > 0 {
		expr = Infixn(expr, Or(l.infixn...))
	}
	if len(l.infixr) > 0 {
		expr = Infixr(expr, Or(l.infixr...))
	}
	return expr
}
