package pattern

import "strings"

// --- Sequence --------------------------------------------------------------

type sequence []Pattern

// Seq matches all of patterns, one after the other.
func Seq(patterns ...Pattern) Pattern {
	mustNotBeNil("Seq", patterns...)
	if len(patterns) == 1 {
		return patterns[0]
	}
	return sequence(append([]Pattern(nil), patterns...))
}

func (seq sequence) Match(src string, begin, end int) (int, bool) {
	at := begin
	for _, p := range seq {
		l, ok := p.Match(src, at, end)
		if !ok {
			return 0, false
		}
		at += l
	}
	return at - begin, true
}

func (seq sequence) String() string {
	return "(" + join(seq, " ") + ")"
}

// --- Alternatives ----------------------------------------------------------

type alternatives []Pattern

// Or matches the first of patterns which matches.
func Or(patterns ...Pattern) Pattern {
	mustNotBeNil("Or", patterns...)
	switch len(patterns) {
	case 0:
		return Never
	case 1:
		return patterns[0]
	}
	return alternatives(append([]Pattern(nil), patterns...))
}

func (alts alternatives) Match(src string, begin, end int) (int, bool) {
	for _, p := range alts {
		if l, ok := p.Match(src, begin, end); ok {
			return l, true
		}
	}
	return 0, false
}

func (alts alternatives) String() string {
	return "(" + join(alts, " | ") + ")"
}

// --- Predicates and options ------------------------------------------------

type optional struct{ p Pattern }

// Optional matches p or the empty string.
func Optional(p Pattern) Pattern {
	mustNotBeNil("Optional", p)
	return optional{p}
}

func (o optional) Match(src string, begin, end int) (int, bool) {
	if l, ok := o.p.Match(src, begin, end); ok {
		return l, true
	}
	return 0, true
}

func (o optional) String() string {
	return o.p.String() + "?"
}

type not struct{ p Pattern }

// Not matches the empty string if p mismatches, and mismatches otherwise.
func Not(p Pattern) Pattern {
	mustNotBeNil("Not", p)
	return not{p}
}

func (n not) Match(src string, begin, end int) (int, bool) {
	if _, ok := n.p.Match(src, begin, end); ok {
		return 0, false
	}
	return 0, true
}

func (n not) String() string {
	return "!" + n.p.String()
}

type peek struct{ p Pattern }

// Peek matches the empty string if p matches, without consuming p's match.
func Peek(p Pattern) Pattern {
	mustNotBeNil("Peek", p)
	return peek{p}
}

func (pk peek) Match(src string, begin, end int) (int, bool) {
	if _, ok := pk.p.Match(src, begin, end); ok {
		return 0, true
	}
	return 0, false
}

func (pk peek) String() string {
	return "&" + pk.p.String()
}

type constant bool

func (c constant) Match(string, int, int) (int, bool) {
	return 0, bool(c)
}

func (c constant) String() string {
	if c {
		return "always"
	}
	return "never"
}

// Always matches the empty string, Never never matches.
var (
	Always Pattern = constant(true)
	Never  Pattern = constant(false)
)

func join(patterns []Pattern, sep string) string {
	s := make([]string, len(patterns))
	for i, p := range patterns {
		s[i] = p.String()
	}
	return strings.Join(s, sep)
}
