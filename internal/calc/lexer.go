package calc

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
	"github.com/npillmayer/parsec/pattern"
	"github.com/npillmayer/parsec/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// LexerKind selects the implementation of the lexing phase.
type LexerKind int

const (
	CombinatorLexer LexerKind = iota // pattern matchers lifted into parsers
	DFALexer                         // lexmachine DFA
)

func (k LexerKind) String() string {
	switch k {
	case CombinatorLexer:
		return "combinator"
	case DFALexer:
		return "lexmachine"
	}
	return fmt.Sprintf("LexerKind(%d)", int(k))
}

// ParseLexerKind converts "combinator" or "lexmachine" to a LexerKind.
func ParseLexerKind(s string) (LexerKind, error) {
	switch s {
	case "", "combinator":
		return CombinatorLexer, nil
	case "lexmachine", "dfa":
		return DFALexer, nil
	}
	return CombinatorLexer, fmt.Errorf("unknown lexer kind %q", s)
}

// Token values produced by both lexers: numbers are float64 values,
// everything else is a parsec.Fragment of one of the following kinds.
const (
	kindKeyword = "keyword"
	kindIdent   = "ident"
	kindOp      = "op"
)

const operatorChars = "+-*/%^!()=,;"

func word(s string) parsec.Fragment {
	if s == "let" {
		return parsec.Fragment{Kind: kindKeyword, Text: s}
	}
	return parsec.Fragment{Kind: kindIdent, Text: s}
}

// --- Combinator lexer ------------------------------------------------------

// Both lexers accept ASCII letters, digits and white space only.
var (
	letter    = pattern.Or(pattern.Range('a', 'z'), pattern.Range('A', 'Z'))
	digit     = pattern.Range('0', '9')
	space     = pattern.AnyOf(" \t\n\r")
	digits    = pattern.Many1(digit)
	numberPat = pattern.Seq(
		digits,
		pattern.Optional(pattern.Seq(pattern.IsChar('.'), digits)),
		pattern.Optional(pattern.Seq(pattern.AnyOf("eE"), pattern.Optional(pattern.AnyOf("+-")), digits)),
	)
	identStart = pattern.Or(letter, pattern.IsChar('_'))
	identPat   = pattern.Seq(identStart, pattern.Many(pattern.Or(identStart, digit)))
	commentPat = pattern.Seq(pattern.IsChar('#'), pattern.Many(pattern.NoneOf("\n")))
)

// number converts a numeric lexeme. Literals out of range become ±Inf.
func number(lexeme string) float64 {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		tracer().Infof("number out of range: %s", lexeme)
	}
	return v
}

func combinatorLexer() parser.Parser[[]parsec.Token] {
	num := parser.Map(parser.Scan(numberPat, "number"), number)
	keyword := parser.Value(parser.Scan(pattern.Literal("let"), "let"), word("let"))
	ident := parser.Map(parser.Scan(identPat, "identifier"), word)
	op := parser.Map(parser.Scan(pattern.AnyOf(operatorChars), "operator"), func(s string) parsec.Fragment {
		return parsec.Fragment{Kind: kindOp, Text: s}
	})
	token := parser.Or(
		parser.Tokenize(num),
		parser.Tokenize(parser.Longest(keyword, ident)),
		parser.Tokenize(op),
	)
	delim := parser.Scan(pattern.Or(pattern.Many1(space), commentPat), "delimiter")
	return parser.Lexer(token, delim)
}

// --- lexmachine lexer ------------------------------------------------------

const (
	tokNum = iota + 1
	tokIdent
	tokOp
)

func dfaLexer() (parser.Parser[[]parsec.Token], error) {
	literals := make([]string, 0, len(operatorChars))
	ids := make(map[string]int, len(operatorChars))
	for _, c := range operatorChars {
		literals = append(literals, string(c))
		ids[string(c)] = tokOp
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?((e|E)(\+|\-)?[0-9]+)?`), lexmach.MakeToken("NUM", tokNum))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("ID", tokIdent))
		lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, nil, ids)
	if err != nil {
		return parser.Parser[[]parsec.Token]{}, err
	}
	return adapter.LexPhase(convertToken), nil
}

func convertToken(tok *lexmachine.Token) parsec.Token {
	lexeme := string(tok.Lexeme)
	t := parsec.Token{Index: tok.TC, Length: len(tok.Lexeme)}
	switch tok.Type {
	case tokNum:
		t.Value = number(lexeme)
	case tokIdent:
		t.Value = word(lexeme)
	default:
		t.Value = parsec.Fragment{Kind: kindOp, Text: lexeme}
	}
	return t
}
