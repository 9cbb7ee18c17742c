package types

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/diag"
	"github.com/sin4auto/typelang-hm/token"
)

// diagErr is an alias used so the embedded field below is named "diagErr"
// rather than "Error" — an anonymous *diag.Error field would otherwise be
// named after its type and shadow the promoted Error() method.
type diagErr = diag.Error

// TypeError reports a failure during unification or constraint solving.
type TypeError struct{ *diagErr }

func typeErr(code, msg string, sp *token.Span) error {
	e := &diag.Error{Code: code, Message: msg, Span: sp}
	return &TypeError{e}
}

// Unify computes the most general unifier of a and b under the running
// substitution s, returning an extended substitution. Unification is total
// and deterministic: equal constants succeed trivially; a bare variable
// either matches or is bound (after an occurs check); constructed forms
// (Fun/App/Tuple/List) unify structurally, threading the substitution
// argument-by-argument; anything else is a TypeMismatch.
func Unify(s Subst, a, b Type, sp *token.Span) (Subst, error) {
	a, b = Apply(s, a), Apply(s, b)
	switch at := a.(type) {
	case *Var:
		return unifyVar(s, at, b, sp)
	case *Con:
		if bt, ok := b.(*Con); ok && bt.Name == at.Name {
			return s, nil
		}
		if bv, ok := b.(*Var); ok {
			return unifyVar(s, bv, a, sp)
		}
		return nil, mismatch(a, b, sp)
	case *App:
		bt, ok := b.(*App)
		if !ok {
			if bv, ok := b.(*Var); ok {
				return unifyVar(s, bv, a, sp)
			}
			return nil, mismatch(a, b, sp)
		}
		s1, err := Unify(s, at.Func, bt.Func, sp)
		if err != nil {
			return nil, err
		}
		return Unify(s1, Apply(s1, at.Arg), Apply(s1, bt.Arg), sp)
	case *Fun:
		bt, ok := b.(*Fun)
		if !ok {
			if bv, ok := b.(*Var); ok {
				return unifyVar(s, bv, a, sp)
			}
			return nil, mismatch(a, b, sp)
		}
		s1, err := Unify(s, at.Arg, bt.Arg, sp)
		if err != nil {
			return nil, err
		}
		return Unify(s1, Apply(s1, at.Ret), Apply(s1, bt.Ret), sp)
	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok {
			if bv, ok := b.(*Var); ok {
				return unifyVar(s, bv, a, sp)
			}
			return nil, mismatch(a, b, sp)
		}
		if len(at.Items) != len(bt.Items) {
			return nil, mismatch(a, b, sp)
		}
		cur := s
		for i := range at.Items {
			var err error
			cur, err = Unify(cur, Apply(cur, at.Items[i]), Apply(cur, bt.Items[i]), sp)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil
	case *List:
		bt, ok := b.(*List)
		if !ok {
			if bv, ok := b.(*Var); ok {
				return unifyVar(s, bv, a, sp)
			}
			return nil, mismatch(a, b, sp)
		}
		return Unify(s, at.Elem, bt.Elem, sp)
	default:
		return nil, mismatch(a, b, sp)
	}
}

func unifyVar(s Subst, v *Var, t Type, sp *token.Span) (Subst, error) {
	if tv, ok := t.(*Var); ok && tv.ID == v.ID {
		return s, nil
	}
	if FTV(t)[v.ID] {
		return nil, typeErr("TYPE002", fmt.Sprintf("occurs check failed: %s occurs in %s", v, ShowType(t, nil)), sp)
	}
	return Bind(s, v.ID, t), nil
}

func mismatch(a, b Type, sp *token.Span) error {
	return typeErr("TYPE001", fmt.Sprintf("type mismatch: expected %s, found %s", ShowType(a, nil), ShowType(b, nil)), sp)
}

// OccursCheckError reports that OccursCheck would be raised with the given
// span; exported so callers (infer) can build the diagnostic with a span
// known only at the call site.
func OccursCheckError(v *Var, t Type, sp *token.Span) error {
	return typeErr("TYPE002", fmt.Sprintf("occurs check failed: %s occurs in %s", v, ShowType(t, nil)), sp)
}

// MismatchError builds a TypeMismatch diagnostic for a/b at sp.
func MismatchError(a, b Type, sp *token.Span) error { return mismatch(a, b, sp) }
