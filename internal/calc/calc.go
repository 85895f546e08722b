package calc

import (
	"context"
	"errors"
	"sync"

	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
)

// Calculator parses and evaluates input of the calculator language. Variables
// defined by successful evaluations are kept in the calculator's global scope.
//
// A Calculator may be used from multiple goroutines. Every evaluation runs in
// a scope of its own, which is committed to the globals only if the whole
// input has been evaluated without error.
type Calculator struct {
	globals    *Scope
	kind       LexerKind
	sourceName string
	lang       parser.Parser[Program]
	opts       []parser.Option
}

// Option configures a Calculator.
type Option func(*config)

type config struct {
	kind       LexerKind
	hook       parser.Hook
	sourceName string
}

// WithLexer selects the lexing phase.
func WithLexer(kind LexerKind) Option {
	return func(c *config) {
		c.kind = kind
	}
}

// WithHook installs a parser hook, e.g. parser.TraceHook().
func WithHook(h parser.Hook) Option {
	return func(c *config) {
		c.hook = h
	}
}

// WithSourceName sets the name prefixing error messages.
func WithSourceName(name string) Option {
	return func(c *config) {
		c.sourceName = name
	}
}

var dfa = sync.OnceValues(dfaLexer)

// New creates a calculator with the constants pi and e predefined.
func New(opts ...Option) (*Calculator, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	var lexer parser.Parser[[]parsec.Token]
	switch cfg.kind {
	case CombinatorLexer:
		lexer = combinatorLexer()
	case DFALexer:
		var err error
		if lexer, err = dfa(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown lexer " + cfg.kind.String())
	}
	c := &Calculator{
		globals:    Globals(),
		kind:       cfg.kind,
		sourceName: cfg.sourceName,
		lang:       grammar().From(lexer),
	}
	if cfg.hook != nil {
		c.opts = append(c.opts, parser.WithHook(cfg.hook))
	}
	if cfg.sourceName != "" {
		c.opts = append(c.opts, parser.WithSourceName(cfg.sourceName))
	}
	tracer().Infof("calculator using %s lexer", c.kind)
	return c, nil
}

// Lexer returns the kind of lexer the calculator uses.
func (c *Calculator) Lexer() LexerKind {
	return c.kind
}

// Globals returns the calculator's global scope.
func (c *Calculator) Globals() *Scope {
	return c.globals
}

// Define sets a global variable.
func (c *Calculator) Define(name string, v float64) {
	c.globals.Define(name, v)
}

// Parse parses input into a program. Syntax errors are of type *parser.Error.
func (c *Calculator) Parse(input string) (Program, error) {
	return c.lang.Parse(input, c.opts...)
}

// Eval parses and evaluates input and returns the value of its last
// statement.
func (c *Calculator) Eval(input string) (float64, error) {
	return c.EvalContext(context.Background(), input)
}

// EvalContext is Eval with a context. EvalContext returns as soon as ctx is
// done, even while input is still being parsed. Variables are defined only if
// every statement has been executed. Evaluation errors are of type *EvalError.
func (c *Calculator) EvalContext(ctx context.Context, input string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	type outcome struct {
		v     float64
		local *Scope
		err   error
	}
	done := make(chan outcome, 1) // buffered, an abandoned run must not block
	go func() {
		v, local, err := c.run(ctx, input)
		done <- outcome{v, local, err}
	}()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return 0, o.err
		}
		c.globals.Merge(o.local)
		return o.v, nil
	}
}

// run parses and executes input in a scope of its own, checking ctx between
// statements.
func (c *Calculator) run(ctx context.Context, input string) (float64, *Scope, error) {
	prog, err := c.Parse(input)
	if err != nil {
		return 0, nil, err
	}
	tracer().Debugf("eval %s", prog)
	local := NewScope("eval", c.globals)
	var v float64
	for _, stmt := range prog {
		if err = ctx.Err(); err != nil {
			return 0, nil, err
		}
		if v, err = stmt.Exec(local); err != nil {
			return 0, nil, c.locate(err, input)
		}
	}
	return v, local, nil
}

func (c *Calculator) locate(err error, input string) error {
	var e *EvalError
	if errors.As(err, &e) {
		e.Location = parsec.NewSourceLocator(input).Locate(e.At)
		e.SourceName = c.sourceName
	}
	return err
}
