package parser

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/parsec/pattern"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/sync/errgroup"
)

func char(c rune) Parser[string] {
	return Scan(pattern.IsChar(c), strconv.QuoteRune(c))
}

func lit(s string) Parser[string] {
	return Scan(pattern.Literal(s), s)
}

func number() Parser[int] {
	return Map(Scan(pattern.Many1(pattern.Digit), "NUMBER"), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
}

func parseError(t *testing.T, err error) *Error {
	t.Helper()
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	return perr
}

func TestSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	calls := 0
	counter := Func("counter", func(ctx *Context) (int, bool) {
		calls++
		return 7, true
	})
	p := Sequence(char('a'), char('b'), counter)
	v, err := p.Parse("ab")
	if err != nil || v != 7 || calls != 1 {
		t.Errorf("expected sequence to produce 7, got %v (%v), calls = %d", v, err, calls)
	}
	calls = 0
	_, err = p.Parse("ac")
	perr := parseError(t, err)
	if calls != 0 {
		t.Errorf("sequence continued after failing child")
	}
	if perr.Index != 1 || !cmp.Equal(perr.Expected, []string{"'b'"}) {
		t.Errorf("unexpected error %v", perr)
	}
	if v, err := Sequence().Parse(""); err != nil || v != nil {
		t.Errorf("empty sequence should succeed with nil, got %v, %v", v, err)
	}
}

func TestSkipThenBetween(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	p := Between(char('('), number(), char(')'))
	if v, err := p.Parse("(42)"); err != nil || v != 42 {
		t.Errorf("between: expected 42, got %d, %v", v, err)
	}
	q := Skip(Then(char('#'), number()), char(';'))
	if v, err := q.Parse("#7;"); err != nil || v != 7 {
		t.Errorf("skip/then: expected 7, got %d, %v", v, err)
	}
	r := Seq3(number(), char('-'), number(), func(a int, _ string, b int) int {
		return a - b
	})
	if v, err := r.Parse("10-3"); err != nil || v != 7 {
		t.Errorf("seq3: expected 7, got %d, %v", v, err)
	}
	tu, err := Tuple3Of(char('a'), number(), char('b')).Parse("a1b")
	if err != nil || tu != (Tuple3[string, int, string]{"a", 1, "b"}) {
		t.Errorf("tuple: unexpected %v, %v", tu, err)
	}
	l, err := List(char('x'), char('y')).Parse("xy")
	if err != nil || !cmp.Equal(l, []string{"x", "y"}) {
		t.Errorf("list: unexpected %v, %v", l, err)
	}
}

func TestOrRestoresState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	p := Or(
		Then(char('a'), char('b')),
		Then(char('a'), char('c')),
	)
	if v, err := p.Parse("ac"); err != nil || v != "c" {
		t.Errorf("expected second alternative to match, got %q, %v", v, err)
	}
	if v, err := Or(number()).Parse("12"); err != nil || v != 12 {
		t.Errorf("single alternative: expected 12, got %d, %v", v, err)
	}
	_, err := Or[int]().Parse("")
	if err == nil {
		t.Errorf("empty choice should never match")
	}
}

func TestFurthestFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	p := Or(Then(char('a'), char('b')), char('x'))
	_, err := p.Parse("a!")
	perr := parseError(t, err)
	if perr.Index != 1 {
		t.Errorf("expected failure at offset 1, is %d", perr.Index)
	}
	if !cmp.Equal(perr.Expected, []string{"'b'"}) {
		t.Errorf("unexpected expectations: %v", perr.Expected)
	}
	if perr.Encountered != "'!'" {
		t.Errorf("unexpected encountered: %q", perr.Encountered)
	}
	// order of alternatives does not matter
	_, err2 := Or(char('x'), Then(char('a'), char('b'))).Parse("a!")
	if d := cmp.Diff(perr, parseError(t, err2)); d != "" {
		t.Errorf("diagnostics depend on order of alternatives:\n%s", d)
	}
	// records at the same offset are merged
	_, err = Or(char('y'), char('x'), char('y')).Parse("z")
	perr = parseError(t, err)
	if !cmp.Equal(perr.Expected, []string{"'x'", "'y'"}) {
		t.Errorf("expected merged and sorted expectations, got %v", perr.Expected)
	}
	if perr.Error() != "line 1, column 1: 'x' or 'y' expected, 'z' encountered" {
		t.Errorf("unexpected error message: %s", perr.Error())
	}
}

func TestErrorLocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	p := Skip(SepBy(number(), char('\n')), Optional(char('\n')))
	_, err := p.Parse("1\n22\n3x", WithSourceName("numbers.txt"))
	perr := parseError(t, err)
	if perr.Index != 6 || perr.Location.Line != 3 || perr.Location.Column != 2 {
		t.Errorf("unexpected location %v at offset %d", perr.Location, perr.Index)
	}
	want := "numbers.txt, line 3, column 2: '\\n' or EOF expected, 'x' encountered"
	if perr.Error() != want {
		t.Errorf("expected %q, got %q", want, perr.Error())
	}
}

func TestFailureKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	_, err := Fail[int]("out of luck").Parse("")
	if perr := parseError(t, err); !cmp.Equal(perr.Messages, []string{"out of luck"}) {
		t.Errorf("unexpected messages %v", perr.Messages)
	}
	_, err = Expect[int]("something").Parse("")
	if perr := parseError(t, err); perr.Message() != "something expected, EOF encountered" {
		t.Errorf("unexpected message %q", perr.Message())
	}
	_, err = Unexpected[int]("thing").Parse("")
	if perr := parseError(t, err); perr.Message() != "unexpected thing" {
		t.Errorf("unexpected message %q", perr.Message())
	}
	_, err = Never[int]().Parse("abc")
	if perr := parseError(t, err); perr.Message() != "syntax error, 'a' encountered" {
		t.Errorf("unexpected message %q", perr.Message())
	}
}

func TestBestChoice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	hook := NewCountingHook()
	p := Longest(lit("a"), lit("abc"), lit("x"), lit("ab"))
	v, err := p.Parse("abc", WithHook(hook))
	if err != nil || v != "abc" {
		t.Errorf("longest: expected abc, got %q, %v", v, err)
	}
	for _, alt := range []string{"a", "abc", "x", "ab"} {
		if hook.Attempts[alt] != 1 {
			t.Errorf("longest: alternative %q attempted %d times", alt, hook.Attempts[alt])
		}
	}
	q := Pair(Shortest(lit("ab"), lit("a")), Scan(pattern.Many(pattern.AnyChar), "rest"))
	tu, err := q.Parse("abc")
	if err != nil || tu.V1 != "a" || tu.V2 != "bc" {
		t.Errorf("shortest: unexpected %v, %v", tu, err)
	}
	tie := Longer(Value(lit("ab"), 1), Value(lit("ab"), 2))
	if v, err := tie.Parse("ab"); err != nil || v != 1 {
		t.Errorf("ties should go to the first alternative, got %d", v)
	}
	tie = Shorter(Value(lit("ab"), 1), Value(lit("ab"), 2))
	if v, err := tie.Parse("ab"); err != nil || v != 1 {
		t.Errorf("ties should go to the first alternative, got %d", v)
	}
	if _, err := Longest(lit("x"), lit("y")).Parse("z"); err == nil {
		t.Errorf("longest without matching alternative should fail")
	}
}

func TestManyCommits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	ab := Then(char('a'), char('b'))
	if v, err := Many(ab).Parse("ababab"); err != nil || len(v) != 3 {
		t.Errorf("expected 3 repetitions, got %v, %v", v, err)
	}
	p := Skip(Many(ab), lit("ac"))
	if _, err := p.Parse("abac"); err == nil {
		t.Errorf("element consuming input before failing should fail the repetition")
	}
	q := Skip(Many(Atomic(ab)), lit("ac"))
	if v, err := q.Parse("abac"); err != nil || !cmp.Equal(v, []string{"b"}) {
		t.Errorf("atomic element should be rolled back, got %v, %v", v, err)
	}
	r := Skip(Many(Or(ab, Never[string]())), lit("ac"))
	if _, err := r.Parse("abac"); err != nil {
		t.Errorf("choice should restore the step counter: %v", err)
	}
}

func TestManyStopsOnEmptyMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	hook := NewCountingHook()
	x := Optional(char('x'))
	v, err := Many(x).Parse("xx", WithHook(hook))
	if err != nil || !cmp.Equal(v, []string{"x", "x"}) {
		t.Errorf("unexpected result %v, %v", v, err)
	}
	if n := hook.Attempts[x.String()]; n != 3 {
		t.Errorf("expected 3 attempts of optional element, got %d", n)
	}
	v, err = Many(x).Parse("")
	if err != nil || v == nil || len(v) != 0 {
		t.Errorf("expected empty, non-nil list, got %#v, %v", v, err)
	}
}

func TestRepetitionBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	digit := Scan(pattern.Digit, "digit")
	for i, test := range []struct {
		p     Parser[[]string]
		input string
		ok    bool
	}{
		{Many1(digit), "", false},
		{Many1(digit), "12", true},
		{AtLeast(3, digit), "12", false},
		{AtLeast(3, digit), "1234", true},
		{Repeat(2, digit), "12", true},
		{Repeat(2, digit), "123", false},
		{Times(1, 2, digit), "12", true},
		{Times(1, 2, digit), "123", false},
		{SepBy(digit, char(',')), "", true},
		{SepBy(digit, char(',')), "1,2,3", true},
		{SepBy(digit, char(',')), "1,2,", false},
		{SepBy1(digit, char(',')), "", false},
	} {
		_, err := test.p.Parse(test.input)
		if (err == nil) != test.ok {
			t.Errorf("test #%d: %s on %q: expected ok=%v, got %v", i, test.p, test.input, test.ok, err)
		}
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected construction panic for invalid bounds")
		} else if _, ok := r.(ConstructionError); !ok {
			t.Errorf("expected ConstructionError, got %v", r)
		}
	}()
	Times(3, 2, digit)
}

func TestLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	keyword := Skip(lit("if"), Not(Scan(pattern.Letter, "letter"), "letter"))
	ident := Scan(pattern.Many1(pattern.Letter), "identifier")
	p := Or(Value(keyword, "keyword"), Value(ident, "identifier"))
	for input, want := range map[string]string{"if": "keyword", "iffy": "identifier"} {
		if v, err := p.Parse(input); err != nil || v != want {
			t.Errorf("%q: expected %s, got %s (%v)", input, want, v, err)
		}
	}
	q := Pair(Peek(number()), Scan(pattern.Many(pattern.AnyChar), "rest"))
	if tu, err := q.Parse("12a"); err != nil || tu.V1 != 12 || tu.V2 != "12a" {
		t.Errorf("peek must not consume input: %v, %v", tu, err)
	}
	_, err := Then(char('i'), Not(char('f'), "'f'")).Parse("if")
	if perr := parseError(t, err); !cmp.Equal(perr.Unexpected, []string{"'f'"}) {
		t.Errorf("expected unexpected 'f', got %v", perr)
	}
}

func TestLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	op := Label(Or(char('+'), char('-')), "operator")
	_, err := op.Parse("*")
	if perr := parseError(t, err); !cmp.Equal(perr.Expected, []string{"operator"}) {
		t.Errorf("label should replace diagnostics at start, got %v", perr.Expected)
	}
	pair := Then(char('('), char(')')).Label("parens")
	_, err = pair.Parse("(x")
	perr := parseError(t, err)
	if perr.Index != 1 || !cmp.Equal(perr.Expected, []string{"')'"}) {
		t.Errorf("label should keep deeper diagnostics, got %v", perr)
	}
}

func TestComputedParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	// a length-prefixed string: "3:abc"
	p := Bind(Skip(number(), char(':')), func(n int) Parser[string] {
		return Source(Repeat(n, Scan(pattern.AnyChar, "char")))
	})
	if v, err := p.Parse("3:abc"); err != nil || v != "abc" {
		t.Errorf("expected abc, got %q, %v", v, err)
	}
	if _, err := p.Parse("3:ab"); err == nil {
		t.Errorf("expected failure for short input")
	}
	at := Then(char('a'), Index())
	if v, err := at.Parse("a"); err != nil || v != 1 {
		t.Errorf("index: expected 1, got %d", v)
	}
	c := Skip(Constant(5), EOF("EOF"))
	if v, err := c.Parse(""); err != nil || v != 5 {
		t.Errorf("constant: expected 5, got %d", v)
	}
}

type list []interface{}

func TestRecursiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	// s-expressions over single letters
	sexpr := NewReference[interface{}]("sexpr")
	atom := Map(Scan(pattern.Letter, "atom"), func(s string) interface{} { return s })
	group := Map(Between(char('('), Many(sexpr.Lazy()), char(')')), func(l []interface{}) interface{} {
		return list(l)
	})
	sexpr.Set(Or(atom, group))
	v, err := sexpr.Lazy().Parse("(a(bc)d)")
	if err != nil {
		t.Fatal(err)
	}
	if s := fmt.Sprint(v); s != "[a [b c] d]" {
		t.Errorf("unexpected result %s", s)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("unset reference should panic")
		}
	}()
	NewReference[int]("dangling").Lazy().Parse("")
}

func TestConcurrentParsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.parser")
	defer teardown()
	//
	sum := Map(SepBy1(number(), char('+')), func(ns []int) int {
		s := 0
		for _, n := range ns {
			s += n
		}
		return s
	})
	var g errgroup.Group
	results := make([]int, 32)
	for i := range results {
		i := i
		g.Go(func() error {
			input := fmt.Sprintf("%d+%d+1", i, i)
			v, err := sum.Parse(input)
			results[i] = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, v := range results {
		if v != 2*i+1 {
			t.Errorf("goroutine %d: expected %d, got %d", i, 2*i+1, v)
		}
	}
}
