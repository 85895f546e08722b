package lexmach

import (
	"strconv"
	"strings"

	"github.com/npillmayer/parsec"
	"github.com/npillmayer/parsec/parser"
	"github.com/npillmayer/parsec/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'parsec.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsec.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
// After creation, an adapter may be shared between goroutines.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// NextToken is part of the Tokenizer interface. Unconsumed input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() parsec.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := len(lms.scanner.Text)
		return parsec.Token{Index: end, Value: scanner.MakeDefaultToken(scanner.EOF, "")}
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	return DefaultConverter(tok.(*lexmachine.Token))
}

// Converter creates a parsec token from a lexmachine token.
type Converter func(*lexmachine.Token) parsec.Token

// DefaultConverter creates tokens with a scanner.DefaultToken value. The
// token value is the value given to lexmachine.Scanner.Token, which is the
// lexeme for tokens created with MakeToken.
func DefaultConverter(token *lexmachine.Token) parsec.Token {
	dt := scanner.MakeDefaultToken(parsec.TokType(token.Type), string(token.Lexeme))
	if token.Value != nil {
		dt.Val = token.Value
	}
	return parsec.Token{
		Index:  token.TC,
		Length: len(token.Lexeme),
		Value:  dt,
	}
}

// LexPhase returns a character-level parser running the lexmachine DFA from the
// current position. convert may be nil, in which case DefaultConverter is used.
//
// The lexer parser produces all tokens up to the end of input or up to the
// first input the DFA does not accept. In the latter case, the offending
// input is reported as unexpected and the lexer stops in front of it, leaving
// it to the surrounding grammar to fail.
func (lm *LMAdapter) LexPhase(convert Converter) parser.Parser[[]parsec.Token] {
	if convert == nil {
		convert = DefaultConverter
	}
	return parser.Func("lexmachine", func(ctx *parser.Context) ([]parsec.Token, bool) {
		if ctx.IsTokenized() {
			ctx.RecordFailure("lexmachine needs character input")
			return nil, false
		}
		base := ctx.At()
		s, err := lm.Lexer.Scanner([]byte(ctx.Source()[base:]))
		if err != nil {
			ctx.RecordFailure(err.Error())
			return nil, false
		}
		tokens := []parsec.Token{}
		end := len(ctx.Source())
		for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
			if ui, is := err.(*machines.UnconsumedInput); is {
				ctx.Consume(ui.StartTC)
				if r, ok := ctx.Peek(); ok {
					ctx.RecordUnexpected(strconv.QuoteRune(r))
				}
				return tokens, true
			} else if err != nil {
				ctx.RecordFailure(err.Error())
				return nil, false
			}
			t := convert(tok.(*lexmachine.Token))
			t.Index += base
			tokens = append(tokens, t)
		}
		ctx.Consume(end - base)
		return tokens, true
	})
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
