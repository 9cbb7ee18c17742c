// Package eval implements the strict, call-by-value evaluator over the
// parsed (type-checked) AST: values, environments, primitive operators,
// and the runtime pattern matcher, following the shape of the reference
// evaluator in runtime.rs generalized to this implementation's
// persistent environment and Go-native value representation.
package eval

import (
	"github.com/sin4auto/typelang-hm/ast"
)

// Value is any runtime value TypeLang HM expressions evaluate to.
type Value interface{ isValue() }

// IntV is a 64-bit signed integer (the host's choice for the
// specification's host-defined Integer representation).
type IntV struct{ Value int64 }

// DoubleV is an IEEE-754 binary64 float.
type DoubleV struct{ Value float64 }

// BoolV is True or False.
type BoolV struct{ Value bool }

// CharV is a single Unicode code point.
type CharV struct{ Value rune }

// StringV is a TypeLang HM string, semantically a list of CharV; stored
// compactly as a Go string for performance (see design note "String
// equals list of Char" — every observable operation must still behave as
// if on a list of Char, which the primitives in ops.go honor directly).
type StringV struct{ Value string }

// ListV is a finite sequence of values, all of one element type.
type ListV struct{ Items []Value }

// TupleV is a fixed-arity heterogeneous product, arity >= 2.
type TupleV struct{ Items []Value }

// DataV is an ADT value: a constructor tag plus its ordered field values.
type DataV struct {
	Ctor   string
	Fields []Value
}

// ClosureV is a user-defined function: captured parameter names, body,
// and the (persistent) environment in effect when the lambda was formed.
type ClosureV struct {
	Params []string
	Body   ast.Expr
	Env    *Env
}

// PrimV is a native primitive in the middle of being applied: Arity
// total arguments, Collected so far, and Apply invoked only once
// Collected reaches Arity (matching the reference's buffered PrimOp).
type PrimV struct {
	Name      string
	Arity     int
	Collected []Value
	Apply     func(args []Value) (Value, error)
}

// HoleV is never actually produced by evaluation — forcing a hole raises
// UserHole directly, and that error takes the hole's name from the
// ast.Hole node, not from a HoleV.
type HoleV struct{ Name string }

func (*IntV) isValue()     {}
func (*DoubleV) isValue()  {}
func (*BoolV) isValue()    {}
func (*CharV) isValue()    {}
func (*StringV) isValue()  {}
func (*ListV) isValue()    {}
func (*TupleV) isValue()   {}
func (*DataV) isValue()    {}
func (*ClosureV) isValue() {}
func (*PrimV) isValue()    {}
func (*HoleV) isValue()    {}
