/*
Package parsec is a parser combinator toolbox.

Parsec grammars are not written down in a grammar language and are not
compiled. Instead, clients compose small typed matcher values into larger
ones, until the composition describes the complete language. Package
structure is as follows:

■ pattern: Package pattern implements stateless character-window matchers
and quantifiers, used to recognize lexemes.

■ parser: Package parser implements the combinator engine: parse contexts,
sequencing, ordered choice with backtracking, longest/shortest match, an
operator-precedence layer and two-phase (lexer then parser) parsing.

■ scanner: Package scanner provides lexing phases backed by existing
tokenizers (Go's text/scanner and, in sub-package lexmach, lexmachine).

The base package contains data types which are used throughout all the other
packages: tokens, spans and locators.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsec
