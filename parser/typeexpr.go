package parser

import (
	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
)

// parseSigmaType parses `(context =>)? type`, where context is one class
// constraint or a parenthesized/bare comma-separated list of them. The
// leading context is tried speculatively: constraint lists look exactly
// like a type application until the `=>` confirms it, so on failure to
// find `=>` the parser rewinds and reparses the same tokens as a type.
func (p *parser) parseSigmaType() (*ast.SigmaType, error) {
	start := p.cur().Span
	if cs, ok := p.tryParseContext(); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.SigmaType{Constraints: cs, Type: t, Sp: start}, nil
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.SigmaType{Type: t, Sp: start}, nil
}

func (p *parser) tryParseContext() ([]ast.Constraint, bool) {
	save := p.pos
	var cs []ast.Constraint
	if p.at(token.LParen) {
		savedParen := p.pos
		p.advance()
		for {
			c, ok := p.tryParseOneConstraint()
			if !ok {
				p.pos = savedParen
				return nil, false
			}
			cs = append(cs, c)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.at(token.RParen) {
			p.pos = save
			return nil, false
		}
		p.advance()
		if !p.at(token.FatArrow) {
			p.pos = save
			return nil, false
		}
		p.advance()
		return cs, true
	}
	for {
		c, ok := p.tryParseOneConstraint()
		if !ok {
			p.pos = save
			return nil, false
		}
		cs = append(cs, c)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(token.FatArrow) {
		p.pos = save
		return nil, false
	}
	p.advance()
	return cs, true
}

func (p *parser) tryParseOneConstraint() (ast.Constraint, bool) {
	if !p.at(token.ConIdent) {
		return ast.Constraint{}, false
	}
	className := p.advance().Text
	if !p.at(token.Ident) {
		return ast.Constraint{}, false
	}
	varName := p.advance().Text
	return ast.Constraint{Class: className, TypeVar: varName}, true
}

// parseType parses `type_app ('->' type)?`, right-associative.
func (p *parser) parseType() (ast.TypeExpr, error) {
	left, err := p.parseTypeApp()
	if err != nil {
		return nil, err
	}
	if p.at(token.Arrow) {
		p.advance()
		right, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.TEFun{Arg: left, Ret: right}, nil
	}
	return left, nil
}

func (p *parser) parseTypeApp() (ast.TypeExpr, error) {
	fn, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	for isTypeAtomStart(p.cur().Kind) {
		arg, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		fn = &ast.TEApp{Func: fn, Arg: arg}
	}
	return fn, nil
}

func isTypeAtomStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.ConIdent, token.LParen, token.LBracket:
		return true
	}
	return false
}

func (p *parser) parseTypeAtom() (ast.TypeExpr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.TEVar{Name: tok.Text}, nil
	case token.ConIdent:
		p.advance()
		return &ast.TECon{Name: tok.Text}, nil
	case token.LBracket:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.TEList{Elem: elem}, nil
	case token.LParen:
		p.advance()
		first, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.at(token.Comma) {
			items := []ast.TypeExpr{first}
			for p.at(token.Comma) {
				p.advance()
				it, err := p.parseType()
				if err != nil {
					return nil, err
				}
				items = append(items, it)
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			return &ast.TETuple{Items: items}, nil
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return first, nil
	}
	return nil, unexpected("a type", tok)
}
