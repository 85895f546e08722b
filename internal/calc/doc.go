/*
Package calc implements a small calculator language on top of the parsec
parser combinators.

The language knows floating point numbers, variables and a handful of
built-in functions:

    let r = 2.5; pi * r^2
    max(3!, 2^3) % 5
    -2^2                    # = -4, as '^' binds tighter than the sign

Operators, from loosest to tightest binding:

    +  -        left-associative
    *  /  %     left-associative
    -  +        prefix
    ^           right-associative
    !           postfix (factorial)

Input is parsed in two phases. A lexing phase produces tokens, either by
parser combinators over pattern matchers or by a lexmachine DFA (see
WithLexer). A token-level grammar then builds an AST of statements, which
are evaluated against a scope of variables.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsec.calc'.
func tracer() tracing.Trace {
	return tracing.Select("parsec.calc")
}
