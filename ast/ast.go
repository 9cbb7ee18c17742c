// Package ast defines the untyped syntax tree produced by the parser:
// expressions, patterns, surface type syntax, and top-level declarations.
package ast

import "github.com/sin4auto/typelang-hm/token"

// Expr is any TypeLang HM expression node.
type Expr interface {
	Span() token.Span
	exprNode()
}

// Var references a bound identifier or (for constructors) a data
// constructor name.
type Var struct {
	Sp   token.Span
	Name string
}

// IntLit is an integer literal; Base records the textual base it was
// written in (purely for round-tripping/diagnostics, not semantics).
type IntLit struct {
	Sp    token.Span
	Value int64
	Base  token.IntBase
}

// DoubleLit is a floating literal; always typed Double, unconditionally.
type DoubleLit struct {
	Sp    token.Span
	Value float64
}

// CharLit is a single-quoted character literal.
type CharLit struct {
	Sp    token.Span
	Value rune
}

// StringLit is a double-quoted string literal.
type StringLit struct {
	Sp    token.Span
	Value string
}

// BoolLit is the literal True or False.
type BoolLit struct {
	Sp    token.Span
	Value bool
}

// ListLit is a bracketed list literal `[e1, e2, ...]`.
type ListLit struct {
	Sp    token.Span
	Items []Expr
}

// TupleLit is a parenthesized tuple literal `(e1, e2, ...)`, arity >= 2.
type TupleLit struct {
	Sp    token.Span
	Items []Expr
}

// Lambda is `\p1 p2 ... -> body`; each parameter binds one variable (no
// pattern arguments).
type Lambda struct {
	Sp     token.Span
	Params []string
	Body   Expr
}

// App is left-associative function application `func arg`. Binary and
// unary operators desugar into (possibly nested) App of a Var bound to
// the operator's name, so inference and evaluation only need one
// application rule.
type App struct {
	Sp        token.Span
	Func, Arg Expr
}

// Binding is one `name p1 ... pn = rhs` clause, shared by Let and
// top-level declarations. A binding with no parameters is a plain value
// binding, evaluated immediately in left-to-right order and visible only
// to later bindings in the same group (non-recursive). A binding with one
// or more parameters is a function binding: inside a Let its closure
// captures the whole sibling group, so function bindings in the same Let
// may reference themselves and each other (letrec), matching the design
// note that "all let-recs are function definitions in practice." A
// top-level function binding sees only earlier declarations and itself.
type Binding struct {
	Name   string
	Params []string
	Body   Expr
	Sig    *SigmaType // optional explicit top-level signature
	Sp     token.Span
}

// Let is `let b1; b2; ... in body`.
type Let struct {
	Sp       token.Span
	Bindings []Binding
	Body     Expr
}

// If is `if cond then t else e`.
type If struct {
	Sp               token.Span
	Cond, Then, Else Expr
}

// Alt is one `pattern -> body` case alternative.
type Alt struct {
	Pattern Pattern
	Body    Expr
}

// Case is `case scrutinee of { alt1 ; alt2 ; ... }`, at least one alt.
type Case struct {
	Sp        token.Span
	Scrutinee Expr
	Alts      []Alt
}

// Annot is `expr :: type`.
type Annot struct {
	Sp   token.Span
	Expr Expr
	Type SigmaType
}

// Hole is a typed hole `?name`: inference continues with a fresh
// variable; evaluation raises UserHole if the hole is ever forced.
type Hole struct {
	Sp   token.Span
	Name string
}

func (e *Var) Span() token.Span       { return e.Sp }
func (e *IntLit) Span() token.Span    { return e.Sp }
func (e *DoubleLit) Span() token.Span { return e.Sp }
func (e *CharLit) Span() token.Span   { return e.Sp }
func (e *StringLit) Span() token.Span { return e.Sp }
func (e *BoolLit) Span() token.Span   { return e.Sp }
func (e *ListLit) Span() token.Span   { return e.Sp }
func (e *TupleLit) Span() token.Span  { return e.Sp }
func (e *Lambda) Span() token.Span    { return e.Sp }
func (e *App) Span() token.Span       { return e.Sp }
func (e *Let) Span() token.Span       { return e.Sp }
func (e *If) Span() token.Span        { return e.Sp }
func (e *Case) Span() token.Span      { return e.Sp }
func (e *Annot) Span() token.Span     { return e.Sp }
func (e *Hole) Span() token.Span      { return e.Sp }

func (*Var) exprNode()       {}
func (*IntLit) exprNode()    {}
func (*DoubleLit) exprNode() {}
func (*CharLit) exprNode()   {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*ListLit) exprNode()   {}
func (*TupleLit) exprNode()  {}
func (*Lambda) exprNode()    {}
func (*App) exprNode()       {}
func (*Let) exprNode()       {}
func (*If) exprNode()        {}
func (*Case) exprNode()      {}
func (*Annot) exprNode()     {}
func (*Hole) exprNode()      {}
