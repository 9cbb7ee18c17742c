// Package parser implements the recursive-descent, precedence-climbing
// parser for TypeLang HM: tokens to ast.Module / ast.Expr.
package parser

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/diag"
	"github.com/sin4auto/typelang-hm/lexer"
	"github.com/sin4auto/typelang-hm/token"
)

// diagErr is an alias used so the embedded field below is named "diagErr"
// rather than "Error" — an anonymous *diag.Error field would otherwise be
// named after its type and shadow the promoted Error() method.
type diagErr = diag.Error

// ParseError reports a syntax error: the first offending token's span, what
// was expected, and what was found. The parser never attempts recovery
// beyond abandoning the current top-level declaration.
type ParseError struct{ *diagErr }

func parseErr(code, msg string, sp token.Span) error {
	return &ParseError{diag.At(code, msg, sp)}
}

func unexpected(expected string, got token.Token) error {
	return parseErr("PARSE001", fmt.Sprintf("expected %s, found %s %q", expected, got.Kind, got.Text), got.Span)
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, unexpected(k.String(), p.cur())
	}
	return p.advance(), nil
}

// ParseExpr parses a single standalone expression (used by `:type EXPR`
// and `:let NAME = EXPR`-style REPL input bodies).
func ParseExpr(src string) (ast.Expr, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, unexpected("end of input", p.cur())
	}
	return e, nil
}

// ParseModule parses a sequence of top-level declarations, optionally
// semicolon-separated, until end of input.
func ParseModule(src string) (*ast.Module, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	mod := &ast.Module{}
	for {
		for p.at(token.Semi) {
			p.advance()
		}
		if p.at(token.EOF) {
			return mod, nil
		}
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		mod.Decls = append(mod.Decls, decl)
	}
}

func (p *parser) parseDecl() (ast.Decl, error) {
	if p.at(token.KwData) {
		return p.parseDataDecl()
	}
	return p.parseLetDecl()
}

func (p *parser) parseDataDecl() (ast.Decl, error) {
	start := p.cur().Span
	p.advance() // data
	name, err := p.expect(token.ConIdent)
	if err != nil {
		return nil, err
	}
	var params []string
	for p.at(token.Ident) {
		params = append(params, p.advance().Text)
	}
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}
	var ctors []ast.ConstructorDecl
	for {
		ctorTok, err := p.expect(token.ConIdent)
		if err != nil {
			return nil, err
		}
		var args []ast.TypeExpr
		for isTypeAtomStart(p.cur().Kind) {
			te, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			args = append(args, te)
		}
		ctors = append(ctors, ast.ConstructorDecl{Name: ctorTok.Text, Args: args, Sp: ctorTok.Span})
		if p.at(token.Pipe) {
			p.advance()
			continue
		}
		break
	}
	return &ast.DataDecl{TypeName: name.Text, Params: params, Constructors: ctors, Sp: start}, nil
}

func (p *parser) parseLetDecl() (ast.Decl, error) {
	var sig *ast.SigmaType
	start := p.cur().Span
	if p.at(token.Ident) && p.peekIsSignature() {
		sigName := p.advance().Text
		p.advance() // ::
		s, err := p.parseSigmaType()
		if err != nil {
			return nil, err
		}
		sig = s
		if p.at(token.Semi) {
			p.advance()
		}
		if _, err := p.expect(token.KwLet); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if nameTok.Text != sigName {
			return nil, parseErr("PARSE002", fmt.Sprintf("signature for %q must be followed by its binding, found %q", sigName, nameTok.Text), nameTok.Span)
		}
		return p.finishLetDecl(nameTok, sig, start)
	}
	if _, err := p.expect(token.KwLet); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return p.finishLetDecl(nameTok, nil, start)
}

// peekIsSignature looks past `name` for `::`, to distinguish a top-level
// signature line from a `let` declaration.
func (p *parser) peekIsSignature() bool {
	return p.toks[p.pos+1].Kind == token.DColon
}

func (p *parser) finishLetDecl(nameTok token.Token, sig *ast.SigmaType, start token.Span) (ast.Decl, error) {
	var params []string
	for p.at(token.Ident) {
		params = append(params, p.advance().Text)
	}
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	b := ast.Binding{Name: nameTok.Text, Params: params, Body: body, Sig: sig, Sp: nameTok.Span}
	return &ast.LetDecl{Binding: b, Sp: start}, nil
}

// --- Expression grammar: expr -> lam | let_in | ifte | case | boolOr, then optional `:: type` ---

func (p *parser) parseExpr() (ast.Expr, error) {
	e, err := p.parseExprNoAnnot()
	if err != nil {
		return nil, err
	}
	if p.at(token.DColon) {
		p.advance()
		sig, err := p.parseSigmaType()
		if err != nil {
			return nil, err
		}
		return &ast.Annot{Sp: e.Span(), Expr: e, Type: *sig}, nil
	}
	return e, nil
}

func (p *parser) parseExprNoAnnot() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.Backslash:
		return p.parseLambda()
	case token.KwLet:
		return p.parseLetIn()
	case token.KwIf:
		return p.parseIf()
	case token.KwCase:
		return p.parseCase()
	default:
		return p.parseBoolOr()
	}
}
