package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/parsec"
)

// Expr is an expression of the calculator language.
type Expr interface {
	Eval(sc *Scope) (float64, error)
	Operands() []Expr
	String() string
}

// Stmt is a statement, i.e. either a variable definition or an expression.
type Stmt interface {
	Exec(sc *Scope) (float64, error)
	String() string
}

// EvalError is an error occuring during evaluation. At is the source offset
// of the operator or variable causing it. Location is set by the Calculator
// running the evaluation.
type EvalError struct {
	At         int
	Location   parsec.Location
	SourceName string
	Msg        string
}

func (e *EvalError) Error() string {
	pos := fmt.Sprintf("offset %d", e.At)
	if e.Location.Line > 0 {
		pos = e.Location.String()
	}
	if e.SourceName != "" {
		pos = e.SourceName + ", " + pos
	}
	return pos + ": " + e.Msg
}

func evalError(at int, format string, args ...interface{}) *EvalError {
	return &EvalError{At: at, Msg: fmt.Sprintf(format, args...)}
}

// --- Expressions -----------------------------------------------------------

// Num is a numeric literal.
type Num struct {
	Value float64
}

func (n Num) Eval(*Scope) (float64, error) {
	return n.Value, nil
}

func (n Num) Operands() []Expr {
	return nil
}

func (n Num) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Var is a reference to a variable.
type Var struct {
	Name string
	At   int
}

func (v Var) Eval(sc *Scope) (float64, error) {
	tag, _ := sc.Resolve(v.Name)
	if tag == nil {
		return 0, evalError(v.At, "undefined variable %s", v.Name)
	}
	return tag.Value, nil
}

func (v Var) Operands() []Expr {
	return nil
}

func (v Var) String() string {
	return v.Name
}

// Unary is a sign or a factorial.
type Unary struct {
	Op string
	X  Expr
	At int
}

func (u Unary) Eval(sc *Scope) (float64, error) {
	x, err := u.X.Eval(sc)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case "-":
		return -x, nil
	case "+":
		return x, nil
	case "!":
		return factorial(x, u.At)
	}
	return 0, evalError(u.At, "unknown operator %s", u.Op)
}

func (u Unary) Operands() []Expr {
	return []Expr{u.X}
}

func (u Unary) String() string {
	if u.Op == "!" {
		return "(" + u.X.String() + ")!"
	}
	return u.Op + "(" + u.X.String() + ")"
}

func factorial(x float64, at int) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, evalError(at, "factorial of %g", x)
	}
	if x > 170 {
		return math.Inf(1), nil
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}

// Binary is an arithmetic operation.
type Binary struct {
	Op   string
	X, Y Expr
	At   int
}

func (b Binary) Eval(sc *Scope) (float64, error) {
	x, err := b.X.Eval(sc)
	if err != nil {
		return 0, err
	}
	y, err := b.Y.Eval(sc)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, evalError(b.At, "division by zero")
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return 0, evalError(b.At, "division by zero")
		}
		return math.Mod(x, y), nil
	case "^":
		return math.Pow(x, y), nil
	}
	return 0, evalError(b.At, "unknown operator %s", b.Op)
}

func (b Binary) Operands() []Expr {
	return []Expr{b.X, b.Y}
}

func (b Binary) String() string {
	return "(" + b.X.String() + " " + b.Op + " " + b.Y.String() + ")"
}

// Call is a call of a built-in function.
type Call struct {
	Fn   string
	Args []Expr
	At   int
}

type builtin struct {
	arity int // -1 for one or more arguments
	f     func(args []float64) float64
}

func fn1(f func(float64) float64) builtin {
	return builtin{arity: 1, f: func(args []float64) float64 { return f(args[0]) }}
}

func fold(f func(float64, float64) float64) builtin {
	return builtin{arity: -1, f: func(args []float64) float64 {
		r := args[0]
		for _, a := range args[1:] {
			r = f(r, a)
		}
		return r
	}}
}

var builtins = map[string]builtin{
	"sqrt": fn1(math.Sqrt),
	"abs":  fn1(math.Abs),
	"ln":   fn1(math.Log),
	"exp":  fn1(math.Exp),
	"sin":  fn1(math.Sin),
	"cos":  fn1(math.Cos),
	"min":  fold(math.Min),
	"max":  fold(math.Max),
}

// IsBuiltin is true for the names of built-in functions.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (c Call) Eval(sc *Scope) (float64, error) {
	b, ok := builtins[c.Fn]
	if !ok {
		return 0, evalError(c.At, "unknown function %s", c.Fn)
	}
	if (b.arity < 0 && len(c.Args) == 0) || (b.arity >= 0 && len(c.Args) != b.arity) {
		return 0, evalError(c.At, "wrong number of arguments for %s: %d", c.Fn, len(c.Args))
	}
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval(sc)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return b.f(args), nil
}

func (c Call) Operands() []Expr {
	return c.Args
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Fn + "(" + strings.Join(args, ", ") + ")"
}

// --- Statements ------------------------------------------------------------

// Let defines a variable in the current scope. Its value is the value of
// the defining expression.
type Let struct {
	Name string
	X    Expr
}

func (l Let) Exec(sc *Scope) (float64, error) {
	v, err := l.X.Eval(sc)
	if err != nil {
		return 0, err
	}
	sc.Define(l.Name, v)
	return v, nil
}

func (l Let) String() string {
	return "let " + l.Name + " = " + l.X.String()
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

func (s ExprStmt) Exec(sc *Scope) (float64, error) {
	return s.X.Eval(sc)
}

func (s ExprStmt) String() string {
	return s.X.String()
}

// Program is a list of statements. Its value is the value of the last
// statement.
type Program []Stmt

// Exec executes all statements in order, stopping at the first error.
func (p Program) Exec(sc *Scope) (v float64, err error) {
	for _, s := range p {
		if v, err = s.Exec(sc); err != nil {
			return 0, err
		}
	}
	return v, nil
}

func (p Program) String() string {
	s := make([]string, len(p))
	for i, stmt := range p {
		s[i] = stmt.String()
	}
	return strings.Join(s, "; ")
}
