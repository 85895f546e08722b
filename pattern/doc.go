/*
Package pattern implements stateless character-window matchers, used to
recognize lexemes.

A Pattern is a pure function of a source window: given a source string and
a window [begin, end), it either reports a match of n bytes, anchored at
begin, or a mismatch. Patterns never have side effects and never consume
more than the window holds:

    n, ok := p.Match(src, begin, end)   // ok ⇒ 0 ≤ n ≤ end-begin

Patterns are meant to be built once and shared. They are composed from leaves
(literals and character classes) and combinators:

    ident := pattern.Seq(
        pattern.Or(pattern.Letter, pattern.IsChar('_')),
        pattern.Many(pattern.Or(pattern.Letter, pattern.Digit, pattern.IsChar('_'))),
    )

Quantifiers

Repeat(n, p) applies p exactly n times. Many(p) applies p until it fails, or
until it succeeds without consuming anything; the latter is a loop guard and
Many will stop there, even if p could match again. AtLeast(min, p) is
Repeat(min, p) followed by Many(p).

Patterns do not backtrack into quantifiers: quantifiers are greedy, and
Seq(Many(Digit), Digit) will never match.

Patterns are lifted into parsers with package parser's Scan function.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import "fmt"

// Pattern is the interface of all matchers in this package.
//
// Match tries to match the window [begin, end) of src, anchored at begin.
// It returns the number of bytes matched and true, or (0, false) for a mismatch.
type Pattern interface {
	Match(src string, begin, end int) (int, bool)
	String() string
}

// ConstructionError is raised (with panic) when patterns are wired incorrectly,
// e.g. with a negative repetition count.
type ConstructionError string

func (e ConstructionError) Error() string {
	return "pattern construction: " + string(e)
}

func constructionError(format string, args ...interface{}) ConstructionError {
	return ConstructionError(fmt.Sprintf(format, args...))
}

func mustNotBeNil(where string, patterns ...Pattern) {
	for i, p := range patterns {
		if p == nil {
			panic(constructionError("%s: pattern #%d is nil", where, i+1))
		}
	}
}

// Matches is a predicate: does p match the whole of s?
func Matches(p Pattern, s string) bool {
	n, ok := p.Match(s, 0, len(s))
	return ok && n == len(s)
}

// Prefix returns the prefix of s matched by p.
func Prefix(p Pattern, s string) (string, bool) {
	n, ok := p.Match(s, 0, len(s))
	if !ok {
		return "", false
	}
	return s[:n], true
}
