package lexmach

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
	"github.com/npillmayer/parsec/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func newAdapter(t *testing.T) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	LM := newAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		tokens, err := scanner.Tokens(sc)
		if err != nil {
			t.Error(err)
		}
		for _, token := range tokens {
			t.Logf(" %4d | %15s | @%5d", token.Value.(scanner.DefaultToken).TokType(), token.Value, token.Index)
		}
		if len(tokens) != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], len(tokens))
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	sc, _ := newAdapter(t).Scanner("a ~ b")
	tokens, err := scanner.Tokens(sc)
	if err == nil {
		t.Errorf("expected scanner to report unconsumed input")
	}
	if len(tokens) != 2 || tokens[1].Index != 4 {
		t.Errorf("expected scanner to skip unconsumed input, have %v", tokens)
	}
}

func sum() parser.Parser[int] {
	num := parser.Map(scanner.Kind("NUM", parsec.TokType(tokenIds["NUM"])), func(t scanner.DefaultToken) int {
		n, _ := strconv.Atoi(t.Lexeme)
		return n
	})
	plus := parser.Value(scanner.Lit("+"), func(a, b int) int { return a + b })
	return parser.Infixl(num, plus)
}

func TestLexerPhase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.scanner")
	defer teardown()
	//
	LM := newAdapter(t)
	p := sum().From(LM.LexPhase(nil))
	if v, err := p.Parse("1 + 12 // comment"); err != nil || v != 13 {
		t.Errorf("expected 13, got %d, %v", v, err)
	}
	for i, test := range []struct {
		input       string
		index       int
		expected    []string
		unexpected  []string
		encountered string
	}{
		{"1 + ~", 4, []string{"NUM"}, nil, "'~'"},
		{"1 + 2 ~", 6, []string{"EOF"}, []string{"'~'"}, "'~'"},
		{"1 + + 2", 4, []string{"NUM"}, nil, "+"},
	} {
		_, err := p.Parse(test.input)
		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Errorf("test #%d: expected parse error, got %v", i, err)
			continue
		}
		if perr.Index != test.index || !cmp.Equal(perr.Expected, test.expected) ||
			!cmp.Equal(perr.Unexpected, test.unexpected) || perr.Encountered != test.encountered {
			t.Errorf("test #%d: unexpected error %#v", i, perr)
		}
	}
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int IDs

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = scanner.String
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
