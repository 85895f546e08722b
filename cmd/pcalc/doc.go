/*
Command pcalc is a calculator for the command line, built with the parsec
parser combinators. It serves as a sandbox for experiments with grammars,
lexers and parser tracing.

Usage:

    pcalc eval "let r = 2; pi * r^2"
    pcalc repl --lexer lexmachine --tree
    echo "3! + 1" | pcalc eval

Settings may be loaded from a TOML or YAML file (see --config):

    prompt  = "pcalc> "
    trace   = "Info"
    lexer   = "combinator"
    timeout = "2s"
    tree    = false

    [vars]
    g = 9.81

In interactive mode, lines starting with ':' are commands: ":vars" lists
the variables defined so far, ":tree <input>" displays the AST of an input
and ":quit" ends the session.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsec.pcalc'
func tracer() tracing.Trace {
	return tracing.Select("parsec.pcalc")
}
