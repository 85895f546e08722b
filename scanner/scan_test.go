package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.Value.(DefaultToken).TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.Value.(DefaultToken).TokType(), token.Value, token.Index)
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestTokenValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	input := `x = 0x10 + 2.5 // c` + "\n" + `'a' "s"`
	tokens, err := Tokens(GoTokenizer("values", strings.NewReader(input), SkipComments(false), UnifyStrings(true)))
	if err != nil {
		t.Fatal(err)
	}
	var got []interface{}
	for _, tok := range tokens {
		got = append(got, tok.Value.(DefaultToken).Value())
	}
	want := []interface{}{"x", "=", int64(16), "+", 2.5, "// c", "a", "s"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected token values:\n%s", d)
	}
	if tokens[2].Index != 4 || tokens[2].Length != 4 {
		t.Errorf("expected 0x10 at offset 4, length 4, is %v", tokens[2].Span())
	}
	if k := tokens[6].Value.(DefaultToken).Kind; k != String {
		t.Errorf("expected char literal to be unified to string, is %d", k)
	}
}

func TestScannerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	_, err := Tokens(GoTokenizer("broken", strings.NewReader(`"open`)))
	if err == nil {
		t.Errorf("expected error for unterminated string")
	}
}

func sum() parser.Parser[int64] {
	num := parser.Map(Kind("INT", Int), func(t DefaultToken) int64 {
		return t.Val.(int64)
	})
	plus := parser.Value(Lit("+"), func(a, b int64) int64 { return a + b })
	return parser.Infixl(num, plus)
}

func TestParseTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	v, err := Parse(sum(), "sum", "1 + 12 + 0x3")
	if err != nil || v != 16 {
		t.Errorf("expected 16, got %d, %v", v, err)
	}
	_, err = Parse(sum(), "sum", "1 + +")
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if perr.Index != 4 || !cmp.Equal(perr.Expected, []string{"INT"}) || perr.Encountered != "+" {
		t.Errorf("unexpected error %v", perr)
	}
	if !strings.HasPrefix(perr.Error(), "sum, line 1, column 5") {
		t.Errorf("unexpected error message %q", perr.Error())
	}
	if _, err := Parse(sum(), "sum", `"open`); err == nil || errors.As(err, &perr) {
		t.Errorf("expected scanner error, got %v", err)
	}
}

func TestDefaultToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	tok := MakeDefaultToken(parsec.TokType(Ident), "abc")
	if tok.String() != "abc" || tok.Value() != "abc" || tok.TokType() != Ident {
		t.Errorf("unexpected token %#v", tok)
	}
	if eof := MakeDefaultToken(EOF, ""); eof.String() != "EOF" {
		t.Errorf("expected EOF token to print as EOF")
	}
}
