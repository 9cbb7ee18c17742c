package infer

import (
	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/types"
)

// inferLet implements the design documented on ast.Binding: a binding with
// no parameters is a plain, non-recursive value binding, inferred and
// generalized immediately and visible only to later bindings in the same
// group; a binding with one or more parameters is a function binding,
// always letrec, sharing a pre-built child environment (a fresh
// monomorphic placeholder per param-bearing sibling, unified with its
// inferred body type before generalization) so function bindings in the
// same Let may reference themselves and each other.
func inferLet(env *types.Env, ce *types.ClassEnv, st *State, e *ast.Let) (types.QualType, error) {
	env2 := env
	var funcIdx []int
	placeholders := make([]*types.Var, len(e.Bindings))
	for i, b := range e.Bindings {
		if len(b.Params) > 0 {
			a := st.Supply.Fresh()
			placeholders[i] = a
			env2 = env2.Extend(b.Name, types.Mono(a))
			funcIdx = append(funcIdx, i)
		}
	}
	isFunc := make(map[int]bool, len(funcIdx))
	for _, i := range funcIdx {
		isFunc[i] = true
	}
	for i, b := range e.Bindings {
		if isFunc[i] {
			continue
		}
		rhsQ, err := Infer(env2, ce, st, b.Body)
		if err != nil {
			return types.QualType{}, err
		}
		sch := types.Generalize(env2, types.ApplyQual(st.Subst, rhsQ))
		env2 = env2.Extend(b.Name, sch)
	}
	for _, i := range funcIdx {
		b := e.Bindings[i]
		rhsExpr := ast.Expr(&ast.Lambda{Sp: b.Sp, Params: b.Params, Body: b.Body})
		rhsQ, err := Infer(env2, ce, st, rhsExpr)
		if err != nil {
			return types.QualType{}, err
		}
		s2, err := types.Unify(st.Subst, types.Apply(st.Subst, placeholders[i]), types.Apply(st.Subst, rhsQ.Type), spanPtr(b.Sp))
		if err != nil {
			return types.QualType{}, err
		}
		st.Subst = types.Compose(s2, st.Subst)
		sch := types.Generalize(env2, types.ApplyQual(st.Subst, rhsQ))
		env2 = env2.Extend(b.Name, sch)
	}
	qBody, err := Infer(env2, ce, st, e.Body)
	if err != nil {
		return types.QualType{}, err
	}
	return types.ApplyQual(st.Subst, qBody), nil
}

// inferCase elaborates each pattern against the scrutinee's type, infers
// each alternative's body under its branch-local environment, and unifies
// all branch result types together (§4.5).
func inferCase(env *types.Env, ce *types.ClassEnv, st *State, e *ast.Case) (types.QualType, error) {
	qs, err := Infer(env, ce, st, e.Scrutinee)
	if err != nil {
		return types.QualType{}, err
	}
	scrutTy := qs.Type
	cs := append([]types.Constraint{}, qs.Constraints...)

	var resultTy types.Type
	for _, alt := range e.Alts {
		seen := map[string]bool{}
		branchEnv, patCs, err := elaboratePattern(env, ce, st, alt.Pattern, types.Apply(st.Subst, scrutTy), seen)
		if err != nil {
			return types.QualType{}, err
		}
		cs = append(cs, patCs...)
		qBody, err := Infer(branchEnv, ce, st, alt.Body)
		if err != nil {
			return types.QualType{}, err
		}
		cs = append(cs, qBody.Constraints...)
		if resultTy == nil {
			resultTy = qBody.Type
			continue
		}
		s2, err := types.Unify(st.Subst, types.Apply(st.Subst, resultTy), types.Apply(st.Subst, qBody.Type), spanPtr(alt.Body.Span()))
		if err != nil {
			return types.QualType{}, err
		}
		st.Subst = types.Compose(s2, st.Subst)
		resultTy = types.Apply(st.Subst, qBody.Type)
	}
	return types.QualType{Constraints: types.ApplyConstraints(st.Subst, cs), Type: types.Apply(st.Subst, resultTy)}, nil
}
