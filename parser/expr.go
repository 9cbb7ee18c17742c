package parser

import (
	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
)

func (p *parser) parseLambda() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // backslash
	var params []string
	for p.at(token.Ident) {
		params = append(params, p.advance().Text)
	}
	if len(params) == 0 {
		return nil, unexpected("at least one parameter", p.cur())
	}
	if _, err := p.expect(token.Arrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Sp: start, Params: params, Body: body}, nil
}

func (p *parser) parseLetIn() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // let
	var bindings []ast.Binding
	for {
		nameTok, err := p.expect(token.Ident)
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
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.Binding{Name: nameTok.Text, Params: params, Body: rhs, Sp: nameTok.Span})
		if p.at(token.Semi) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.KwIn); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Sp: start, Bindings: bindings, Body: body}, nil
}

func (p *parser) parseIf() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwThen); err != nil {
		return nil, err
	}
	thenE, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwElse); err != nil {
		return nil, err
	}
	elseE, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.If{Sp: start, Cond: cond, Then: thenE, Else: elseE}, nil
}

func (p *parser) parseCase() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // case
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwOf); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var alts []ast.Alt
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		alts = append(alts, ast.Alt{Pattern: pat, Body: body})
		if p.at(token.Semi) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	if len(alts) == 0 {
		return nil, parseErr("PARSE003", "case expression requires at least one alternative", start)
	}
	return &ast.Case{Sp: start, Scrutinee: scrutinee, Alts: alts}, nil
}

// cmpOps are the non-associative comparison operators: `a == b` parses,
// but `a == b == c` does not (cmp binds one optional trailing operator
// application only).
var cmpOps = map[string]bool{"==": true, "/=": true, "<": true, "<=": true, ">": true, ">=": true}
var addOps = map[string]bool{"+": true, "-": true}
var mulOps = map[string]bool{"*": true, "/": true}
var powOps = map[string]bool{"^": true, "**": true}

// parseBoolOr/parseBoolAnd/parseCmp/parseCons form the full relational
// precedence ladder, loosest to tightest: `||` (infixr), `&&` (infixr),
// the six non-associative comparisons, then `:` (infixr). This matches
// standard Haskell fixity (`infixr 2 ||`, `infixr 3 &&`, `infix 4 ==`
// etc., `infixr 5 :`) rather than spec.md's literal grammar table, which
// only names `cmp` and is silent on `&&`/`||`/`:` entirely; placing the
// boolean operators tighter than `cmp` (an earlier revision of this file)
// made ordinary compound comparisons like `a < b && c < d` unparseable,
// since `parseCmp`'s right operand would swallow `b && c` whole and leave
// `< d` dangling. Binding them looser, as here, is both the documented
// Haskell convention and the only placement under which every comparison
// in a chain of `&&`/`||` actually gets parsed.
func (p *parser) parseBoolOr() (ast.Expr, error) {
	left, err := p.parseBoolAnd()
	if err != nil {
		return nil, err
	}
	if p.at(token.Op) && p.cur().Text == "||" {
		op := p.advance()
		right, err := p.parseBoolOr() // right-associative
		if err != nil {
			return nil, err
		}
		return mkBinOp(op.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) parseBoolAnd() (ast.Expr, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	if p.at(token.Op) && p.cur().Text == "&&" {
		op := p.advance()
		right, err := p.parseBoolAnd() // right-associative
		if err != nil {
			return nil, err
		}
		return mkBinOp(op.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) parseCmp() (ast.Expr, error) {
	left, err := p.parseCons()
	if err != nil {
		return nil, err
	}
	if p.at(token.Op) && cmpOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseCons()
		if err != nil {
			return nil, err
		}
		return mkBinOp(op.Text, left, right), nil
	}
	return left, nil
}

// parseCons handles the list-cons operator `:` (e.g. `x : xs`), binding
// tighter than comparison but looser than add/mul/pow like Haskell's
// `infixr 5 :`: right-associative, so `1 + 2 : rest` parses as
// `(1 + 2) : rest` and `x : xs == ys` parses as `(x : xs) == ys`.
func (p *parser) parseCons() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if p.at(token.Op) && p.cur().Text == ":" {
		op := p.advance()
		right, err := p.parseCons() // right-associative
		if err != nil {
			return nil, err
		}
		return mkBinOp(op.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.at(token.Op) && addOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = mkBinOp(op.Text, left, right)
	}
	return left, nil
}

func (p *parser) parseMul() (ast.Expr, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.at(token.Op) && mulOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = mkBinOp(op.Text, left, right)
	}
	return left, nil
}

func (p *parser) parsePow() (ast.Expr, error) {
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.at(token.Op) && powOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parsePow() // right-associative
		if err != nil {
			return nil, err
		}
		return mkBinOp(op.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) parseApp() (ast.Expr, error) {
	fn, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for isAtomStart(p.cur().Kind) {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Sp: fn.Span(), Func: fn, Arg: arg}
	}
	return fn, nil
}

// parseUnary handles a leading unary minus (`-e` desugars to `0 - e`,
// matching the original implementation's literal-negation sugar; a
// negative exponent such as `2 ^ (-1)` is therefore an ordinary
// subtraction, and `^`'s Double fallback for it happens at run time).
func (p *parser) parseUnary() (ast.Expr, error) {
	if p.at(token.Op) && p.cur().Text == "-" {
		start := p.advance().Span
		operand, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		zero := &ast.IntLit{Sp: start, Value: 0, Base: token.Dec}
		return mkBinOp("-", zero, operand), nil
	}
	return p.parseAtom()
}

func mkBinOp(op string, left, right ast.Expr) ast.Expr {
	opVar := &ast.Var{Sp: left.Span(), Name: op}
	return &ast.App{Sp: left.Span(), Func: &ast.App{Sp: left.Span(), Func: opVar, Arg: left}, Arg: right}
}

func isAtomStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.ConIdent, token.IntLit, token.FloatLit, token.CharLit,
		token.StringLit, token.KwTrue, token.KwFalse, token.Underscore, token.Question,
		token.LParen, token.LBracket:
		return true
	}
	return false
}

func (p *parser) parseAtom() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident, token.ConIdent:
		p.advance()
		return &ast.Var{Sp: tok.Span, Name: tok.Text}, nil
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Sp: tok.Span, Value: tok.IntVal, Base: tok.IntBase}, nil
	case token.FloatLit:
		p.advance()
		return &ast.DoubleLit{Sp: tok.Span, Value: tok.FloatVal}, nil
	case token.CharLit:
		p.advance()
		return &ast.CharLit{Sp: tok.Span, Value: tok.CharVal}, nil
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Sp: tok.Span, Value: tok.StringVal}, nil
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Sp: tok.Span, Value: true}, nil
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Sp: tok.Span, Value: false}, nil
	case token.Question:
		p.advance()
		return &ast.Hole{Sp: tok.Span, Name: tok.Text[1:]}, nil
	case token.Underscore:
		p.advance()
		return &ast.Var{Sp: tok.Span, Name: "_"}, nil
	case token.LBracket:
		return p.parseListLit()
	case token.LParen:
		return p.parseParenOrTuple()
	}
	return nil, unexpected("an expression", tok)
}

func (p *parser) parseListLit() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // [
	var items []ast.Expr
	if !p.at(token.RBracket) {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
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
	return &ast.ListLit{Sp: start, Items: items}, nil
}

func (p *parser) parseParenOrTuple() (ast.Expr, error) {
	start := p.cur().Span
	p.advance() // (
	if p.at(token.Op) && p.toks[p.pos+1].Kind == token.RParen {
		// a parenthesized bare operator, e.g. (+), used as a first-class value
		opTok := p.advance()
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Var{Sp: start, Name: opTok.Text}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.Comma) {
		items := []ast.Expr{first}
		for p.at(token.Comma) {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.TupleLit{Sp: start, Items: items}, nil
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return first, nil
}
