package mettalang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"fmt"
	"strconv"

	"github.com/f1r3fly-io/mettatron"
	"github.com/f1r3fly-io/mettatron/metta"
)

// Compile parses an input string and wraps the top-level terms, in source
// order, into a compiled State: pending expressions populated, environment
// and output log empty. This is the parser-to-evaluator boundary; a Go
// error is returned only for malformed surface text.
func Compile(input string) (metta.State, error) {
	exprs, err := ParseAll(input)
	if err != nil {
		return metta.State{}, err
	}
	return metta.Compiled(exprs...), nil
}

// ParseAll parses every top-level term of an input string.
func ParseAll(input string) ([]metta.Term, error) {
	scan, err := NewScanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	var toks []mettatron.Token
	for {
		tok := scan.NextToken()
		if int(tok.TokType()) == tokenIds["EOF"] {
			break
		}
		toks = append(toks, tok)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	p := &parser{toks: toks}
	var exprs []metta.Term
	for !p.atEnd() {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	tracer().Debugf("parsed %d top-level terms", len(exprs))
	return exprs, nil
}

// --- Recursive descent ------------------------------------------------------

type parser struct {
	toks []mettatron.Token
	pos  int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() mettatron.Token {
	return p.toks[p.pos]
}

func (p *parser) next() mettatron.Token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *parser) errorf(format string, args ...interface{}) error {
	if p.atEnd() {
		return fmt.Errorf(format+" at end of input", args...)
	}
	return fmt.Errorf(format+" at position %d", append(args, p.peek().Span().From())...)
}

func (p *parser) parseExpr() (metta.Term, error) {
	if p.atEnd() {
		return metta.NilTerm, p.errorf("unexpected end of input")
	}
	tok := p.next()
	switch int(tok.TokType()) {
	case tokenIds["INT"]:
		n, err := strconv.ParseInt(tok.Lexeme(), 10, 64)
		if err != nil {
			return metta.NilTerm, fmt.Errorf("malformed integer literal %q", tok.Lexeme())
		}
		return metta.Long(n), nil
	case tokenIds["FLOAT"]:
		f, err := strconv.ParseFloat(tok.Lexeme(), 64)
		if err != nil {
			return metta.NilTerm, fmt.Errorf("malformed float literal %q", tok.Lexeme())
		}
		return metta.Dbl(f), nil
	case tokenIds["STRING"]:
		lex := tok.Lexeme()
		if len(lex) < 2 {
			return metta.NilTerm, fmt.Errorf("malformed string literal %q", lex)
		}
		return metta.Str(lex[1 : len(lex)-1]), nil
	case tokenIds["TRUE"]:
		return metta.Boolean(true), nil
	case tokenIds["FALSE"]:
		return metta.Boolean(false), nil
	case tokenIds["VAR"]:
		return metta.Vari(tok.Lexeme()[1:]), nil
	case tokenIds["ID"]:
		return metta.Sym(tok.Lexeme()), nil
	case int('!'):
		// !e desugars to (! e)
		e, err := p.parseExpr()
		if err != nil {
			return metta.NilTerm, err
		}
		return metta.Sexpr(metta.Sym("!"), e), nil
	case int('('):
		return p.parseList()
	case int(')'):
		p.pos--
		return metta.NilTerm, p.errorf("unbalanced closing parenthesis")
	case int(','):
		p.pos--
		return metta.NilTerm, p.errorf("conjunction comma outside a list")
	}
	p.pos--
	return metta.NilTerm, p.errorf("unexpected token %q", tok.Lexeme())
}

// parseList parses the remainder of a parenthesized form. A leading comma
// re-tags the list as a conjunction; the empty list is the unit value.
func (p *parser) parseList() (metta.Term, error) {
	conj := false
	if !p.atEnd() && int(p.peek().TokType()) == int(',') {
		p.next()
		conj = true
	}
	var items []metta.Term
	for {
		if p.atEnd() {
			return metta.NilTerm, p.errorf("missing closing parenthesis")
		}
		if int(p.peek().TokType()) == int(')') {
			p.next()
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return metta.NilTerm, err
		}
		items = append(items, e)
	}
	if conj {
		return metta.Conj(items...), nil
	}
	if len(items) == 0 {
		return metta.NilTerm, nil
	}
	return metta.Sexpr(items...), nil
}
