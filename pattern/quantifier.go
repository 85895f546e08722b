package pattern

import "fmt"

// --- Exact repetition ------------------------------------------------------

type repeat struct {
	n int
	p Pattern
}

// Repeat matches p exactly n times. It mismatches if any of the n applications
// mismatches. Repeat(0, p) always matches with length 0.
func Repeat(n int, p Pattern) Pattern {
	if n < 0 {
		panic(constructionError("negative repeat count %d", n))
	}
	mustNotBeNil("Repeat", p)
	return repeat{n: n, p: p}
}

func (r repeat) Match(src string, begin, end int) (int, bool) {
	return matchRepeat(r.n, r.p, src, begin, end)
}

func (r repeat) String() string {
	return fmt.Sprintf("%s{%d}", r.p, r.n)
}

// matchRepeat sums the lengths of n consecutive matches of p.
func matchRepeat(n int, p Pattern, src string, begin, end int) (int, bool) {
	at := begin
	for i := 0; i < n; i++ {
		l, ok := p.Match(src, at, end)
		if !ok {
			return 0, false
		}
		at += l
	}
	return at - begin, true
}

// --- Zero or more ----------------------------------------------------------

type many struct {
	p Pattern
}

// Many matches p zero or more times. Matching stops as soon as p mismatches or
// as soon as p matches with length 0. Many never mismatches.
func Many(p Pattern) Pattern {
	mustNotBeNil("Many", p)
	return many{p: p}
}

func (m many) Match(src string, begin, end int) (int, bool) {
	return matchMany(m.p, src, begin, end), true
}

func (m many) String() string {
	return fmt.Sprintf("%s*", m.p)
}

// matchMany returns the accumulated length of repeated matches of p.
// A zero-length match ends the loop; p may be able to match empty forever.
func matchMany(p Pattern, src string, begin, end int) int {
	at := begin
	for {
		l, ok := p.Match(src, at, end)
		if !ok || l == 0 {
			return at - begin
		}
		at += l
	}
}

// --- Lower bounded ---------------------------------------------------------

type lowerBounded struct {
	min int
	p   Pattern
}

// AtLeast matches p at least min times: Repeat(min, p) followed by Many(p).
// AtLeast(0, p) is equivalent to Many(p).
func AtLeast(min int, p Pattern) Pattern {
	if min < 0 {
		panic(constructionError("negative lower bound %d", min))
	}
	mustNotBeNil("AtLeast", p)
	if min == 0 {
		return Many(p)
	}
	return lowerBounded{min: min, p: p}
}

// Many1 matches p one or more times.
func Many1(p Pattern) Pattern {
	return AtLeast(1, p)
}

func (lb lowerBounded) Match(src string, begin, end int) (int, bool) {
	minLen, ok := matchRepeat(lb.min, lb.p, src, begin, end)
	if !ok {
		return 0, false
	}
	return minLen + matchMany(lb.p, src, begin+minLen, end), true
}

func (lb lowerBounded) String() string {
	if lb.min > 1 {
		return fmt.Sprintf("%s{%d,}", lb.p, lb.min)
	}
	return fmt.Sprintf("%s+", lb.p)
}

// --- Bounded ---------------------------------------------------------------

type times struct {
	min, max int
	p        Pattern
}

// Times matches p at least min and at most max times. As with Many, a
// zero-length match of p ends the optional part of the repetition.
func Times(min, max int, p Pattern) Pattern {
	if min < 0 || max < min {
		panic(constructionError("invalid repetition bounds {%d,%d}", min, max))
	}
	mustNotBeNil("Times", p)
	return times{min: min, max: max, p: p}
}

func (t times) Match(src string, begin, end int) (int, bool) {
	minLen, ok := matchRepeat(t.min, t.p, src, begin, end)
	if !ok {
		return 0, false
	}
	at := begin + minLen
	for i := t.min; i < t.max; i++ {
		l, ok := t.p.Match(src, at, end)
		if !ok || l == 0 {
			break
		}
		at += l
	}
	return at - begin, true
}

func (t times) String() string {
	return fmt.Sprintf("%s{%d,%d}", t.p, t.min, t.max)
}
