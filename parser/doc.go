/*
Package parser implements a parser combinator engine.

Grammars are built by composing typed parsers. Every parser is an immutable
value of type Parser[T], where T is the type of the value the parser produces
on success. Parsers may be shared freely, also between goroutines; all
state of a parse run lives in a Context, which is created for every call to
Parse and is never shared.

Building a Grammar

Consider a tiny expression language with left-associative addition and
subtraction:

    number := parser.Map(parser.Scan(pattern.Many1(pattern.Digit), "NUMBER"), atoi)
    plus   := parser.Map(parser.Scan(pattern.IsChar('+'), "'+'"), func(string) func(int, int) int {
        return func(a, b int) int { return a + b }
    })
    minus  := …
    expr   := parser.Infixl(number, parser.Or(plus, minus))

    v, err := expr.Parse("1+2-3")   // v = 0

Backtracking

Sequences run their children strictly in order and stop at the first
failure. Ordered choice (Or) snapshots the parse state before each
alternative and restores it if the alternative fails, regardless of how much
input the alternative consumed. Longest and Shortest run every alternative
and keep the one consuming the most (resp. least) input.

Every successful consumption of input advances a step counter. Repetitions
(Many and friends) use it to tell an element which failed right away – ending
the repetition – from an element which failed after consuming input – failing
the whole repetition. Atomic collapses a parser into a single step.

Diagnostics

Ordinary mismatches are not errors: parsers report failure by returning false
and recording what was missing, expected or unexpected in the context.
Of all the diagnostics recorded during a run only those at the deepest source
offset survive. This way the error reported by Parse points to the furthest
position any alternative did reach, independent of the order in which
alternatives have been tried. A Locator maps this offset to line and column
of the source.

Two-Phase Parsing

A lexing phase is a character-level parser producing a []parsec.Token (see
Tokenize and Lexer). Nested runs it, then runs a second, token-level grammar
in a fresh child context over the token array. Diagnostics of the token
phase are reported at the tokens' source offsets.

Tracing

The engine does not log. Clients may install a Hook with WithHook, which will
be called whenever a parser is attempted, succeeds or fails. TraceHook
returns a hook writing to the tracer 'parsec.parser'.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsec.parser'.
func tracer() tracing.Trace {
	return tracing.Select("parsec.parser")
}
