package pattern

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// --- Literals --------------------------------------------------------------

type literal string

// Literal matches the string s. An empty literal matches the empty string.
func Literal(s string) Pattern {
	return literal(s)
}

func (lit literal) Match(src string, begin, end int) (int, bool) {
	if len(lit) > end-begin || src[begin:begin+len(lit)] != string(lit) {
		return 0, false
	}
	return len(lit), true
}

func (lit literal) String() string {
	return strconv.Quote(string(lit))
}

// --- Character classes -----------------------------------------------------

// charClass matches a single rune satisfying a predicate.
type charClass struct {
	name string
	pred func(rune) bool
}

// Predicate matches a single rune for which pred returns true. The name is used
// for String() only.
func Predicate(name string, pred func(rune) bool) Pattern {
	if pred == nil {
		panic(constructionError("predicate %q is nil", name))
	}
	return charClass{name: name, pred: pred}
}

func (cc charClass) Match(src string, begin, end int) (int, bool) {
	if begin >= end {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(src[begin:end])
	if r == utf8.RuneError && w <= 1 || !cc.pred(r) {
		return 0, false
	}
	return w, true
}

func (cc charClass) String() string {
	return cc.name
}

// IsChar matches the single rune r.
func IsChar(r rune) Pattern {
	return charClass{
		name: strconv.QuoteRune(r),
		pred: func(c rune) bool { return c == r },
	}
}

// Range matches a single rune within [lo, hi].
func Range(lo, hi rune) Pattern {
	if lo > hi {
		panic(constructionError("empty rune range [%q-%q]", lo, hi))
	}
	return charClass{
		name: "[" + string(lo) + "-" + string(hi) + "]",
		pred: func(c rune) bool { return lo <= c && c <= hi },
	}
}

// AnyOf matches a single rune contained in chars.
func AnyOf(chars string) Pattern {
	return charClass{
		name: "[" + chars + "]",
		pred: func(c rune) bool { return strings.ContainsRune(chars, c) },
	}
}

// NoneOf matches a single rune not contained in chars.
func NoneOf(chars string) Pattern {
	return charClass{
		name: "[^" + chars + "]",
		pred: func(c rune) bool { return !strings.ContainsRune(chars, c) },
	}
}

// Pre-defined character classes.
var (
	Letter   = Predicate("letter", unicode.IsLetter)
	Digit    = Predicate("digit", unicode.IsDigit)
	Space    = Predicate("whitespace", unicode.IsSpace)
	AnyChar  = Predicate("any char", func(rune) bool { return true })
	HexDigit = Predicate("hex digit", func(c rune) bool {
		return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
	})
)
