// Package types implements the TypeLang HM type system: monotypes,
// qualified types, schemes, substitutions, and unification.
//
// Monotypes are represented as an explicit idempotent substitution map
// (variable id -> Type) threaded through inference, rather than the
// mutable union-find/level-based variable linking used by some HM
// implementations: this keeps Generalize/Instantiate/Unify pure functions
// of their inputs, which is what the inferencer in package infer relies on.
package types

import "fmt"

// Type is a monotype: a type variable, a nullary constant, a curried
// application, a function arrow, a tuple, or a list.
type Type interface {
	isType()
}

// Var is a type variable, identified by a unique, monotonically increasing id.
type Var struct{ ID int }

// Con is a nullary type constant such as Int, Double, Bool, Char.
type Con struct{ Name string }

// App is a curried type application T1 T2 (e.g. the head of a user-defined
// ADT applied to its type arguments, one argument at a time).
type App struct{ Func, Arg Type }

// Fun is the (right-associative) function arrow T1 -> T2.
type Fun struct{ Arg, Ret Type }

// Tuple is a fixed-arity product type (T1, ..., Tn), n >= 2.
type Tuple struct{ Items []Type }

// List is the builtin list type [T].
type List struct{ Elem Type }

func (*Var) isType()   {}
func (*Con) isType()   {}
func (*App) isType()   {}
func (*Fun) isType()   {}
func (*Tuple) isType() {}
func (*List) isType()  {}

// Well-known base type constants.
var (
	IntType    = &Con{Name: "Int"}
	IntegerCon = &Con{Name: "Integer"} // display-only defaulting target for Num
	DoubleType = &Con{Name: "Double"}
	BoolType   = &Con{Name: "Bool"}
	CharType   = &Con{Name: "Char"}
)

// StringType is [Char]; TypeLang HM strings are semantically lists of Char.
func StringType() Type { return &List{Elem: CharType} }

// Constraint pairs a type-class name with the monotype it constrains.
type Constraint struct {
	Class string
	Type  Type
}

// QualType is a monotype qualified by a (possibly empty) set of constraints.
type QualType struct {
	Constraints []Constraint
	Type        Type
}

// Scheme (polytype) universally quantifies a set of variable ids over a
// qualified type. Generalization only ever quantifies variables free in
// the type but not free in the ambient environment.
type Scheme struct {
	Vars []int
	Qual QualType
}

// Mono lifts a monotype with no quantified variables and no constraints
// into a trivial Scheme.
func Mono(t Type) *Scheme { return &Scheme{Qual: QualType{Type: t}} }

func (t *Var) String() string { return fmt.Sprintf("t%d", t.ID) }
