package parser

import (
	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
)

// parsePattern parses one case-alternative pattern: a constructor applied
// to atomic sub-patterns, or a single atomic pattern. `K p1 p2` requires K
// to head the pattern (constructor application nests no deeper than one
// level, matching the grammar's closed ADT shape); nested constructors
// need parens, e.g. `Cons x (Cons y ys)`.
func (p *parser) parsePattern() (ast.Pattern, error) {
	if p.at(token.ConIdent) {
		ctorTok := p.advance()
		var args []ast.Pattern
		for isPatternAtomStart(p.cur().Kind) {
			a, err := p.parsePatternAtom()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return &ast.PCon{Sp: ctorTok.Span, Name: ctorTok.Text, Args: args}, nil
	}
	return p.parsePatternAtom()
}

func isPatternAtomStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.ConIdent, token.Underscore, token.IntLit, token.FloatLit,
		token.CharLit, token.StringLit, token.KwTrue, token.KwFalse, token.LParen, token.LBracket:
		return true
	}
	return false
}

func (p *parser) parsePatternAtom() (ast.Pattern, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return &ast.PWildcard{Sp: tok.Span}, nil
	case token.Ident:
		p.advance()
		if p.at(token.At) {
			p.advance()
			inner, err := p.parsePatternAtom()
			if err != nil {
				return nil, err
			}
			return &ast.PAs{Sp: tok.Span, Name: tok.Text, Pattern: inner}, nil
		}
		return &ast.PVar{Sp: tok.Span, Name: tok.Text}, nil
	case token.ConIdent:
		p.advance()
		return &ast.PCon{Sp: tok.Span, Name: tok.Text}, nil
	case token.IntLit:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.IntLit, IntVal: tok.IntVal}, nil
	case token.FloatLit:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.FloatLit, FloatVal: tok.FloatVal}, nil
	case token.CharLit:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.CharLit, CharVal: tok.CharVal}, nil
	case token.StringLit:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.StringLit, StringVal: tok.StringVal}, nil
	case token.KwTrue:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.KwTrue, BoolVal: true}, nil
	case token.KwFalse:
		p.advance()
		return &ast.PLit{Sp: tok.Span, Kind: token.KwFalse, BoolVal: false}, nil
	case token.LBracket:
		return p.parsePatternList()
	case token.LParen:
		return p.parsePatternParenOrTuple()
	}
	return nil, unexpected("a pattern", tok)
}

func (p *parser) parsePatternList() (ast.Pattern, error) {
	start := p.cur().Span
	p.advance() // [
	var items []ast.Pattern
	if !p.at(token.RBracket) {
		for {
			it, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.PList{Sp: start, Items: items}, nil
}

func (p *parser) parsePatternParenOrTuple() (ast.Pattern, error) {
	start := p.cur().Span
	p.advance() // (
	first, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if p.at(token.Comma) {
		items := []ast.Pattern{first}
		for p.at(token.Comma) {
			p.advance()
			it, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.PTuple{Sp: start, Items: items}, nil
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return first, nil
}
