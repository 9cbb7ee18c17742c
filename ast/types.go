package ast

import "github.com/sin4auto/typelang-hm/token"

// TypeExpr is surface type syntax, as written in an annotation, signature,
// or data declaration.
type TypeExpr interface{ typeExprNode() }

// TEVar is a lowercase-initial type variable name.
type TEVar struct{ Name string }

// TECon is an uppercase-initial type constant or constructor name.
type TECon struct{ Name string }

// TEApp is a type application `T1 T2`.
type TEApp struct{ Func, Arg TypeExpr }

// TEFun is a function-arrow type `T1 -> T2`.
type TEFun struct{ Arg, Ret TypeExpr }

// TEList is a bracketed list type `[T]`.
type TEList struct{ Elem TypeExpr }

// TETuple is a parenthesized tuple type `(T1, ..., Tn)`.
type TETuple struct{ Items []TypeExpr }

func (*TEVar) typeExprNode()   {}
func (*TECon) typeExprNode()   {}
func (*TEApp) typeExprNode()   {}
func (*TEFun) typeExprNode()   {}
func (*TEList) typeExprNode()  {}
func (*TETuple) typeExprNode() {}

// Constraint is a surface-syntax class constraint `ClassName typevar`.
type Constraint struct {
	Class   string
	TypeVar string
}

// SigmaType is a surface-syntax qualified type `context => type`, the form
// accepted after `::` in an annotation or top-level signature.
type SigmaType struct {
	Constraints []Constraint
	Type        TypeExpr
	Sp          token.Span
}

// ConstructorDecl is one alternative of a `data` declaration:
// `Name T1 T2 ... Tn`.
type ConstructorDecl struct {
	Name string
	Args []TypeExpr
	Sp   token.Span
}

// DataDecl introduces a type constructor of the given arity (len(Params))
// and an ordered, non-empty list of data constructors.
type DataDecl struct {
	TypeName     string
	Params       []string
	Constructors []ConstructorDecl
	Sp           token.Span
}

// LetDecl is a top-level `[sig ::] let name p1 ... pn = body` declaration.
type LetDecl struct {
	Binding Binding
	Sp      token.Span
}

// Decl is any top-level declaration in a module.
type Decl interface{ declNode() }

func (*DataDecl) declNode() {}
func (*LetDecl) declNode()  {}

// Module is a parsed `.tl` source file or REPL batch: an ordered list of
// top-level declarations.
type Module struct {
	Decls []Decl
}
