package mettalang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"fmt"
	"strings"
	"sync"

	"github.com/f1r3fly-io/mettatron"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "!", ","}

// Operator identifiers; they scan as ordinary ID tokens
var ops = []string{"+", "-", "*", "/", "=", ":",
	"==", "<", ">", "<=", ">="}

// The keyword tokens
var keywords = []string{"true", "false"}

// All of the named tokens
var tokens = []string{"EOF", "ID", "INT", "FLOAT", "STRING", "VAR", "TRUE", "FALSE"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // a map from the token names to their token types

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["EOF"] = -1
		tokenIds["ID"] = 1
		tokenIds["INT"] = 2
		tokenIds["FLOAT"] = 3
		tokenIds["STRING"] = 4
		tokenIds["VAR"] = 5
		tokenIds["TRUE"] = 6
		tokenIds["FALSE"] = 7
		for _, lit := range literals {
			r := lit[0]
			tokenIds[lit] = int(r)
		}
		for _, op := range ops {
			tokenIds[op] = tokenIds["ID"]
		}
		tokenIds["true"] = tokenIds["TRUE"]
		tokenIds["false"] = tokenIds["FALSE"]
	})
}

// Token returns a token name and its value.
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

var lexer *lexmachine.Lexer
var lexerOnce sync.Once // monitors one-time DFA compilation

// buildLexer compiles the DFA for the surface syntax. Keywords are added
// before the ID pattern so that equal-length matches resolve to the keyword.
func buildLexer() {
	lexerOnce.Do(func() {
		initTokens()
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`;[^\n]*\n?`), skip) // skip comments
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`\"[^"]*\"`), makeToken("STRING"))
		for _, kw := range keywords {
			lexer.Add([]byte(kw), makeToken(kw))
		}
		lexer.Add([]byte(`$([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*`), makeToken("VAR"))
		lexer.Add([]byte(`[\+\-]?[0-9]+\.[0-9]+`), makeToken("FLOAT"))
		lexer.Add([]byte(`[\+\-]?[0-9]+`), makeToken("INT"))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), makeToken("ID"))
		for _, op := range ops {
			r := "\\" + strings.Join(strings.Split(op, ""), "\\")
			lexer.Add([]byte(r), makeToken(op))
		}
		for _, lit := range literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), makeToken(lit))
		}
		if err := lexer.Compile(); err != nil {
			panic(fmt.Errorf("cannot compile scanner DFA: %v", err))
		}
	})
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(name string) lexmachine.Action {
	initTokens()
	id, ok := tokenIds[name]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", name))
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Scanner ---------------------------------------------------------------

// Scanner produces the token stream for a single input string.
type Scanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

// NewScanner creates a scanner over an input string. The DFA is compiled
// once per process.
func NewScanner(input string) (*Scanner, error) {
	buildLexer()
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, Error: logError}, nil
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// Default error reporting function
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken returns the next input token, an EOF token at the end of input.
func (s *Scanner) NextToken() mettatron.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return sexpToken{toktype: mettatron.TokType(tokenIds["EOF"])}
	}
	token := tok.(*lexmachine.Token)
	return sexpToken{
		toktype: mettatron.TokType(token.Type),
		lexeme:  string(token.Lexeme),
		span:    mettatron.Span{uint64(token.StartColumn), uint64(token.EndColumn)},
	}
}

// sexpToken is the Token implementation handed to the parser.
type sexpToken struct {
	toktype mettatron.TokType
	lexeme  string
	value   interface{}
	span    mettatron.Span
}

func (t sexpToken) TokType() mettatron.TokType {
	return t.toktype
}

func (t sexpToken) Lexeme() string {
	return t.lexeme
}

func (t sexpToken) Value() interface{} {
	return t.value
}

func (t sexpToken) Span() mettatron.Span {
	return t.span
}

var _ mettatron.Token = sexpToken{}
