// Package infer implements Algorithm W over the TypeLang HM AST:
// principal-type inference with class-constraint collection, following
// the shape of the reference inferencer in infer.rs but generalized to
// this implementation's explicit-substitution type system (package types)
// and closed class registry.
package infer

import (
	"fmt"
	"strings"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/diag"
	"github.com/sin4auto/typelang-hm/token"
	"github.com/sin4auto/typelang-hm/types"
)

// diagErr is an alias used so the embedded field below is named "diagErr"
// rather than "Error" — an anonymous *diag.Error field would otherwise be
// named after its type and shadow the promoted Error() method.
type diagErr = diag.Error

// TypeError reports a failure from inference itself (as opposed to raw
// unification, which reports through types.TypeError).
type TypeError struct{ *diagErr }

func typeErr(code, msg string, sp token.Span) error {
	return &TypeError{diag.At(code, msg, sp)}
}

// State is the short-lived mutable workspace threaded through one
// top-level declaration's inference: a fresh-variable supply and the
// accumulating substitution. A fresh State is used per top-level
// declaration (design note: this keeps displayed variable ids small
// without affecting correctness, since no scope leaks across
// declarations).
type State struct {
	Supply *types.Supply
	Subst  types.Subst
}

// NewState returns an empty inference workspace.
func NewState() *State { return &State{Supply: types.NewSupply(), Subst: types.Subst{}} }

func binopScheme(class string, s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: a, Ret: a}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: class, Type: a}}, Type: ty,
	}}
}

func predScheme(class string, s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: a, Ret: types.BoolType}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: class, Type: a}}, Type: ty,
	}}
}

func boolopScheme(s *types.Supply) *types.Scheme {
	ty := &types.Fun{Arg: types.BoolType, Ret: &types.Fun{Arg: types.BoolType, Ret: types.BoolType}}
	return types.Mono(ty)
}

// intPowScheme types `^` as `Num a => a -> Int -> a`, matching the
// reference's special-cased exponent operator (the negative-exponent
// Double fallback is a runtime concern, not a typing one: typewise `^`
// always returns its base's type).
func intPowScheme(s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: types.IntType, Ret: a}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: "Num", Type: a}}, Type: ty,
	}}
}

func fracOpScheme(s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: a, Ret: a}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: "Fractional", Type: a}}, Type: ty,
	}}
}

func integralOpScheme(s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: a, Ret: a}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: "Integral", Type: a}}, Type: ty,
	}}
}

func showScheme(s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: types.StringType()}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{
		Constraints: []types.Constraint{{Class: "Show", Type: a}}, Type: ty,
	}}
}

// consScheme types `:` as `a -> [a] -> [a]`, the list-cons sugar scenario
// 6 exercises (`\x a -> x : a` passed to foldr).
func consScheme(s *types.Supply) *types.Scheme {
	a := s.Fresh()
	ty := &types.Fun{Arg: a, Ret: &types.Fun{Arg: &types.List{Elem: a}, Ret: &types.List{Elem: a}}}
	return &types.Scheme{Vars: []int{a.ID}, Qual: types.QualType{Type: ty}}
}

// mapScheme types `map` as `(a -> b) -> [a] -> [b]`.
func mapScheme(s *types.Supply) *types.Scheme {
	a, b := s.Fresh(), s.Fresh()
	fn := &types.Fun{Arg: a, Ret: b}
	ty := &types.Fun{Arg: fn, Ret: &types.Fun{Arg: &types.List{Elem: a}, Ret: &types.List{Elem: b}}}
	return &types.Scheme{Vars: []int{a.ID, b.ID}, Qual: types.QualType{Type: ty}}
}

// foldlScheme types `foldl` as `(b -> a -> b) -> b -> [a] -> b`.
func foldlScheme(s *types.Supply) *types.Scheme {
	a, b := s.Fresh(), s.Fresh()
	fn := &types.Fun{Arg: b, Ret: &types.Fun{Arg: a, Ret: b}}
	ty := &types.Fun{Arg: fn, Ret: &types.Fun{Arg: b, Ret: &types.Fun{Arg: &types.List{Elem: a}, Ret: b}}}
	return &types.Scheme{Vars: []int{a.ID, b.ID}, Qual: types.QualType{Type: ty}}
}

// foldrScheme types `foldr` as `(a -> b -> b) -> b -> [a] -> b`.
func foldrScheme(s *types.Supply) *types.Scheme {
	a, b := s.Fresh(), s.Fresh()
	fn := &types.Fun{Arg: a, Ret: &types.Fun{Arg: b, Ret: b}}
	ty := &types.Fun{Arg: fn, Ret: &types.Fun{Arg: b, Ret: &types.Fun{Arg: &types.List{Elem: a}, Ret: b}}}
	return &types.Scheme{Vars: []int{a.ID, b.ID}, Qual: types.QualType{Type: ty}}
}

// InitialEnv builds the standard type environment: arithmetic, comparison,
// boolean, and show operators, exactly as the reference initial_env does
// (plus div/mod/quot/rem, which the reference's simplified core omitted
// but the specification names explicitly in §4.6).
func InitialEnv() *types.Env {
	s := types.NewSupply()
	env := types.NewEnv()
	env = env.Extend("+", binopScheme("Num", s))
	env = env.Extend("-", binopScheme("Num", s))
	env = env.Extend("*", binopScheme("Num", s))
	env = env.Extend("/", fracOpScheme(s))
	env = env.Extend("^", intPowScheme(s))
	env = env.Extend("**", fracOpScheme(s))
	env = env.Extend("div", integralOpScheme(s))
	env = env.Extend("mod", integralOpScheme(s))
	env = env.Extend("quot", integralOpScheme(s))
	env = env.Extend("rem", integralOpScheme(s))
	env = env.Extend("==", predScheme("Eq", s))
	env = env.Extend("/=", predScheme("Eq", s))
	env = env.Extend("<", predScheme("Ord", s))
	env = env.Extend("<=", predScheme("Ord", s))
	env = env.Extend(">", predScheme("Ord", s))
	env = env.Extend(">=", predScheme("Ord", s))
	env = env.Extend("&&", boolopScheme(s))
	env = env.Extend("||", boolopScheme(s))
	env = env.Extend("show", showScheme(s))
	env = env.Extend(":", consScheme(s))
	env = env.Extend("map", mapScheme(s))
	env = env.Extend("foldl", foldlScheme(s))
	env = env.Extend("foldr", foldrScheme(s))
	return env
}

// InitialClassEnv builds the closed, immutable class registry.
func InitialClassEnv() *types.ClassEnv { return types.NewClassEnv() }

// Infer computes the principal qualified type of e under env/ce, threading
// and updating st.Subst. The returned QualType has st.Subst already
// applied.
func Infer(env *types.Env, ce *types.ClassEnv, st *State, e ast.Expr) (types.QualType, error) {
	switch e := e.(type) {
	case *ast.Var:
		return inferVar(env, st, e)
	case *ast.Hole:
		a := st.Supply.Fresh()
		return types.QualType{Type: a}, nil
	case *ast.IntLit:
		a := st.Supply.Fresh()
		return types.QualType{Constraints: []types.Constraint{{Class: "Num", Type: a}}, Type: a}, nil
	case *ast.DoubleLit:
		return types.QualType{Type: types.DoubleType}, nil
	case *ast.CharLit:
		return types.QualType{Type: types.CharType}, nil
	case *ast.StringLit:
		return types.QualType{Type: types.StringType()}, nil
	case *ast.BoolLit:
		return types.QualType{Type: types.BoolType}, nil
	case *ast.ListLit:
		return inferList(env, ce, st, e)
	case *ast.TupleLit:
		return inferTuple(env, ce, st, e)
	case *ast.Lambda:
		return inferLambda(env, ce, st, e)
	case *ast.App:
		return inferApp(env, ce, st, e)
	case *ast.Let:
		return inferLet(env, ce, st, e)
	case *ast.If:
		return inferIf(env, ce, st, e)
	case *ast.Case:
		return inferCase(env, ce, st, e)
	case *ast.Annot:
		return inferAnnot(env, ce, st, e)
	}
	return types.QualType{}, typeErr("TYPE099", fmt.Sprintf("unhandled expression node %T", e), e.Span())
}

func inferVar(env *types.Env, st *State, e *ast.Var) (types.QualType, error) {
	if e.Name == "_" {
		a := st.Supply.Fresh()
		return types.QualType{Type: a}, nil
	}
	sch, ok := env.Lookup(e.Name)
	if !ok {
		return types.QualType{}, typeErr("TYPE010", fmt.Sprintf("unbound variable: %s", e.Name), e.Sp)
	}
	q := types.Instantiate(st.Supply, sch)
	return types.ApplyQual(st.Subst, q), nil
}

func inferList(env *types.Env, ce *types.ClassEnv, st *State, e *ast.ListLit) (types.QualType, error) {
	elem := st.Supply.Fresh()
	var elemTy types.Type = elem
	var cs []types.Constraint
	for _, item := range e.Items {
		q, err := Infer(env, ce, st, item)
		if err != nil {
			return types.QualType{}, err
		}
		s2, err := types.Unify(st.Subst, types.Apply(st.Subst, elemTy), types.Apply(st.Subst, q.Type), spanOf(item))
		if err != nil {
			return types.QualType{}, err
		}
		st.Subst = types.Compose(s2, st.Subst)
		cs = append(cs, q.Constraints...)
	}
	resultElem := types.Apply(st.Subst, elemTy)
	return types.QualType{Constraints: types.ApplyConstraints(st.Subst, cs), Type: &types.List{Elem: resultElem}}, nil
}

func inferTuple(env *types.Env, ce *types.ClassEnv, st *State, e *ast.TupleLit) (types.QualType, error) {
	items := make([]types.Type, len(e.Items))
	var cs []types.Constraint
	for i, item := range e.Items {
		q, err := Infer(env, ce, st, item)
		if err != nil {
			return types.QualType{}, err
		}
		items[i] = q.Type
		cs = append(cs, q.Constraints...)
	}
	for i := range items {
		items[i] = types.Apply(st.Subst, items[i])
	}
	return types.QualType{Constraints: types.ApplyConstraints(st.Subst, cs), Type: &types.Tuple{Items: items}}, nil
}

func inferLambda(env *types.Env, ce *types.ClassEnv, st *State, e *ast.Lambda) (types.QualType, error) {
	env2 := env
	argTys := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		a := st.Supply.Fresh()
		argTys[i] = a
		env2 = env2.Extend(p, types.Mono(a))
	}
	qBody, err := Infer(env2, ce, st, e.Body)
	if err != nil {
		return types.QualType{}, err
	}
	t := qBody.Type
	for i := len(argTys) - 1; i >= 0; i-- {
		t = &types.Fun{Arg: types.Apply(st.Subst, argTys[i]), Ret: t}
	}
	return types.QualType{Constraints: qBody.Constraints, Type: types.Apply(st.Subst, t)}, nil
}

func inferApp(env *types.Env, ce *types.ClassEnv, st *State, e *ast.App) (types.QualType, error) {
	qFunc, err := Infer(env, ce, st, e.Func)
	if err != nil {
		return types.QualType{}, err
	}
	qArg, err := Infer(env, ce, st, e.Arg)
	if err != nil {
		return types.QualType{}, err
	}
	result := st.Supply.Fresh()
	s2, err := types.Unify(st.Subst,
		types.Apply(st.Subst, qFunc.Type),
		&types.Fun{Arg: types.Apply(st.Subst, qArg.Type), Ret: result},
		spanOf(e.Func))
	if err != nil {
		return types.QualType{}, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	cs := append(append([]types.Constraint{}, qFunc.Constraints...), qArg.Constraints...)
	return types.QualType{Constraints: types.ApplyConstraints(st.Subst, cs), Type: types.Apply(st.Subst, result)}, nil
}

func inferIf(env *types.Env, ce *types.ClassEnv, st *State, e *ast.If) (types.QualType, error) {
	qc, err := Infer(env, ce, st, e.Cond)
	if err != nil {
		return types.QualType{}, err
	}
	s2, err := types.Unify(st.Subst, types.Apply(st.Subst, qc.Type), types.BoolType, spanOf(e.Cond))
	if err != nil {
		return types.QualType{}, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	qt, err := Infer(env, ce, st, e.Then)
	if err != nil {
		return types.QualType{}, err
	}
	qe, err := Infer(env, ce, st, e.Else)
	if err != nil {
		return types.QualType{}, err
	}
	s3, err := types.Unify(st.Subst, types.Apply(st.Subst, qt.Type), types.Apply(st.Subst, qe.Type), spanPtr(e.Sp))
	if err != nil {
		return types.QualType{}, err
	}
	st.Subst = types.Compose(s3, st.Subst)
	cs := append(append([]types.Constraint{}, qt.Constraints...), qe.Constraints...)
	return types.QualType{Constraints: types.ApplyConstraints(st.Subst, cs), Type: types.Apply(st.Subst, qt.Type)}, nil
}

// inferAnnot implements §4.4's `annot e :: σ` rule. An annotation with no
// type variables in its surface syntax is a ground monotype: ordinary
// unification against the inferred type suffices, exactly as the
// reference implementation's infer.rs treats every annotation. But a
// quantified annotation (one naming a lowercase type variable) asserts
// universal generality over that position, something plain unification
// cannot check on its own — unifying a still-Num-constrained inference
// variable against the annotation's `a` succeeds trivially under plain
// Unify even though the real principal type is `Num a => a -> a`, not the
// fully unconstrained `a -> a` the annotation claims. That gap is closed
// by skolemCheckAnnot below.
func inferAnnot(env *types.Env, ce *types.ClassEnv, st *State, e *ast.Annot) (types.QualType, error) {
	q, err := Infer(env, ce, st, e.Expr)
	if err != nil {
		return types.QualType{}, err
	}
	annotated := typeFromSurface(e.Type.Type)
	annotCs := surfaceConstraints(e.Type.Constraints)
	if len(types.FTV(annotated)) == 0 {
		s2, err := types.Unify(st.Subst, types.Apply(st.Subst, q.Type), annotated, spanPtr(e.Sp))
		if err != nil {
			return types.QualType{}, err
		}
		st.Subst = types.Compose(s2, st.Subst)
		cs := append(types.ApplyConstraints(st.Subst, q.Constraints), annotCs...)
		return types.QualType{Constraints: cs, Type: types.Apply(st.Subst, annotated)}, nil
	}
	return skolemCheckAnnot(st, q, annotated, annotCs, e.Sp)
}

// skolemCheckAnnot performs §4.4's "skolem check": each distinct type
// variable named in the annotation becomes a fresh rigid constant (a
// skolem) that unifies with the inferred type's flexible variables but,
// being a Con, never with a different skolem or a concrete type head —
// that alone rejects an annotation that is structurally less general than
// the inferred type (e.g. claiming `a -> a` for something whose inferred
// type forces two positions apart, or that is secretly monomorphic).
// What plain unification still misses is a *constraint* mismatch: after
// unifying, any residual constraint that now names a skolem must already
// be declared for that variable in the annotation's own context, or the
// inferred type required something (e.g. `Num`) the annotation never
// admitted and is therefore not as general as claimed.
func skolemCheckAnnot(st *State, q types.QualType, annotated types.Type, annotCs []types.Constraint, sp token.Span) (types.QualType, error) {
	skolemOf := map[int]*types.Con{}
	skolemTy := skolemize(annotated, skolemOf)
	allowed := map[string]map[string]bool{}
	for _, c := range annotCs {
		v, ok := c.Type.(*types.Var)
		if !ok {
			continue
		}
		sk, ok := skolemOf[v.ID]
		if !ok {
			continue
		}
		if allowed[sk.Name] == nil {
			allowed[sk.Name] = map[string]bool{}
		}
		allowed[sk.Name][c.Class] = true
	}
	qTy := types.Apply(st.Subst, q.Type)
	s2, err := types.Unify(st.Subst, qTy, skolemTy, spanPtr(sp))
	if err != nil {
		return types.QualType{}, typeErr("TYPE011", fmt.Sprintf("annotation mismatch: %s is not as general as the declared %s", types.ShowType(qTy, nil), types.ShowType(skolemTy, nil)), sp)
	}
	merged := types.Compose(s2, st.Subst)
	for _, c := range types.ApplyConstraints(merged, q.Constraints) {
		con, ok := c.Type.(*types.Con)
		if !ok || !isSkolemName(con.Name) {
			continue
		}
		if !allowed[con.Name][c.Class] {
			return types.QualType{}, typeErr("TYPE011", fmt.Sprintf("annotation mismatch: the inferred type requires %s, which the declared type never admits", c.Class), sp)
		}
	}
	st.Subst = merged
	return types.QualType{Constraints: annotCs, Type: annotated}, nil
}

var skolemCounter int

// freshSkolem returns a new rigid type constant, unique for the lifetime
// of the process: distinct skolems never unify with each other, which is
// what makes two distinct annotation variables (`a` and `b` in `a -> b`)
// irreconcilable unless the inferred type actually keeps them apart too.
func freshSkolem() *types.Con {
	skolemCounter++
	return &types.Con{Name: fmt.Sprintf("$skolem%d", skolemCounter)}
}

func isSkolemName(name string) bool {
	return strings.HasPrefix(name, "$skolem")
}

// skolemize walks an annotation's monotype, replacing each distinct
// surface type variable (by id) with its own fresh skolem constant, the
// same one every further occurrence of that variable maps to.
func skolemize(t types.Type, seen map[int]*types.Con) types.Type {
	switch t := t.(type) {
	case *types.Var:
		if sk, ok := seen[t.ID]; ok {
			return sk
		}
		sk := freshSkolem()
		seen[t.ID] = sk
		return sk
	case *types.Con:
		return t
	case *types.App:
		return &types.App{Func: skolemize(t.Func, seen), Arg: skolemize(t.Arg, seen)}
	case *types.Fun:
		return &types.Fun{Arg: skolemize(t.Arg, seen), Ret: skolemize(t.Ret, seen)}
	case *types.Tuple:
		items := make([]types.Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = skolemize(it, seen)
		}
		return &types.Tuple{Items: items}
	case *types.List:
		return &types.List{Elem: skolemize(t.Elem, seen)}
	}
	return t
}

func surfaceConstraints(cs []ast.Constraint) []types.Constraint {
	out := make([]types.Constraint, len(cs))
	for i, c := range cs {
		out[i] = types.Constraint{Class: c.Class, Type: &types.Var{ID: surfaceVarID(c.TypeVar)}}
	}
	return out
}

// surfaceVarID maps a surface type-variable name to a stable negative id
// namespace, disjoint from the supply's fresh non-negative ids, so a
// written-out annotation's own variables never collide with inference's
// fresh variables.
var surfaceVarIDs = map[string]int{}
var nextSurfaceVarID = -1

func surfaceVarID(name string) int {
	if id, ok := surfaceVarIDs[name]; ok {
		return id
	}
	id := nextSurfaceVarID
	nextSurfaceVarID--
	surfaceVarIDs[name] = id
	return id
}

// typeFromSurface converts parsed surface type syntax into an internal
// monotype, mapping lowercase-initial names to a shared type variable
// (per occurrence of the same name within one signature) and
// uppercase-initial names to nullary type constants or applied heads.
func typeFromSurface(te ast.TypeExpr) types.Type {
	switch te := te.(type) {
	case *ast.TEVar:
		return &types.Var{ID: surfaceVarID(te.Name)}
	case *ast.TECon:
		if te.Name == "String" {
			return types.StringType()
		}
		return &types.Con{Name: te.Name}
	case *ast.TEApp:
		return &types.App{Func: typeFromSurface(te.Func), Arg: typeFromSurface(te.Arg)}
	case *ast.TEFun:
		return &types.Fun{Arg: typeFromSurface(te.Arg), Ret: typeFromSurface(te.Ret)}
	case *ast.TEList:
		return &types.List{Elem: typeFromSurface(te.Elem)}
	case *ast.TETuple:
		items := make([]types.Type, len(te.Items))
		for i, it := range te.Items {
			items[i] = typeFromSurface(it)
		}
		return &types.Tuple{Items: items}
	}
	return &types.Var{ID: -1}
}

func spanOf(e ast.Expr) *token.Span { sp := e.Span(); return &sp }

func spanPtr(sp token.Span) *token.Span { return &sp }
