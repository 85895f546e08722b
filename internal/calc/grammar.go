package calc

import (
	"sync"

	"github.com/npillmayer/parsec/parser"
)

// The token grammar:
//
//	program  ⟶  stmt { ';' stmt } [ ';' ]
//	stmt     ⟶  'let' ident '=' expr  |  expr
//	expr     ⟶  operator table over atom
//	atom     ⟶  number  |  ident '(' [ expr { ',' expr } ] ')'  |  ident  |  '(' expr ')'
//
// The grammar does not depend on the lexer used and is built once.

var grammar = sync.OnceValue(func() parser.Parser[Program] {
	tracer().Debugf("building calculator grammar")
	expr := parser.NewReference[Expr]("expr")
	ident := parser.Fragment(kindIdent, "")
	number := parser.Map(parser.TokenType[float64]("number"), func(v float64) Expr {
		return Num{Value: v}
	})
	call := parser.Seq3(parser.Index(), ident,
		parser.Between(op("("), parser.SepBy(expr.Lazy(), op(",")), op(")")),
		func(at int, fn string, args []Expr) Expr {
			return Call{Fn: fn, Args: args, At: at}
		})
	variable := parser.Seq2(parser.Index(), ident, func(at int, name string) Expr {
		return Var{Name: name, At: at}
	})
	group := parser.Between(op("("), expr.Lazy(), op(")"))
	atom := parser.Or(number, call, variable, group).Label("operand")
	expr.Set(operators().Build(atom))
	//
	let := parser.Seq4(parser.Fragment(kindKeyword, "let"), ident, op("="), expr.Lazy(),
		func(_ string, name string, _ string, x Expr) Stmt {
			return Let{Name: name, X: x}
		})
	stmt := parser.Or(let, parser.Map(expr.Lazy(), func(x Expr) Stmt {
		return ExprStmt{X: x}
	}))
	semi := op(";")
	more := parser.Many(parser.Then(semi, stmt).Atomic())
	program := parser.Seq2(stmt, more, func(first Stmt, rest []Stmt) Program {
		return append(Program{first}, rest...)
	})
	return parser.Named(parser.Skip(program, parser.Optional(semi)), "program")
})

func operators() *parser.OperatorTable[Expr] {
	return parser.NewOperatorTable[Expr]().
		Infixl(10, binop("+")).
		Infixl(10, binop("-")).
		Infixl(20, binop("*")).
		Infixl(20, binop("/")).
		Infixl(20, binop("%")).
		Prefix(30, unop("-")).
		Prefix(30, unop("+")).
		Infixr(40, binop("^")).
		Prefix(45, unop("-")). // exponents may carry a sign
		Prefix(45, unop("+")).
		Postfix(50, unop("!"))
}

func op(text string) parser.Parser[string] {
	return parser.Fragment(kindOp, text)
}

func binop(text string) parser.Parser[func(Expr, Expr) Expr] {
	return parser.Seq2(parser.Index(), op(text), func(at int, o string) func(Expr, Expr) Expr {
		return func(x, y Expr) Expr {
			return Binary{Op: o, X: x, Y: y, At: at}
		}
	})
}

func unop(text string) parser.Parser[func(Expr) Expr] {
	return parser.Seq2(parser.Index(), op(text), func(at int, o string) func(Expr) Expr {
		return func(x Expr) Expr {
			return Unary{Op: o, X: x, At: at}
		}
	})
}
