package infer

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
	"github.com/sin4auto/typelang-hm/types"
)

// elaboratePattern unifies ty against p's shape, extends env with every
// variable p binds, and returns any constraints generated along the way
// (a literal pattern over a Num/Fractional-typed variable still needs its
// class constraint recorded, exactly like the equivalent literal
// expression would). seen tracks binder names already used by this
// alternative's pattern so a second occurrence raises
// DuplicatePatternBinder, per §3.4's invariant.
func elaboratePattern(env *types.Env, ce *types.ClassEnv, st *State, p ast.Pattern, ty types.Type, seen map[string]bool) (*types.Env, []types.Constraint, error) {
	switch p := p.(type) {
	case *ast.PWildcard:
		return env, nil, nil
	case *ast.PVar:
		if err := bindOnce(seen, p.Name, p.Sp); err != nil {
			return nil, nil, err
		}
		return env.Extend(p.Name, types.Mono(ty)), nil, nil
	case *ast.PLit:
		cs, err := elaborateLitPattern(st, p, ty)
		if err != nil {
			return nil, nil, err
		}
		return env, cs, nil
	case *ast.PCon:
		return elaborateConPattern(env, ce, st, p, ty, seen)
	case *ast.PList:
		return elaborateListPattern(env, ce, st, p, ty, seen)
	case *ast.PTuple:
		return elaborateTuplePattern(env, ce, st, p, ty, seen)
	case *ast.PAs:
		if err := bindOnce(seen, p.Name, p.Sp); err != nil {
			return nil, nil, err
		}
		env2 := env.Extend(p.Name, types.Mono(ty))
		return elaboratePattern(env2, ce, st, p.Pattern, ty, seen)
	}
	return nil, nil, typeErr("TYPE099", fmt.Sprintf("unhandled pattern node %T", p), p.Span())
}

func bindOnce(seen map[string]bool, name string, sp token.Span) error {
	if name == "_" {
		return nil
	}
	if seen[name] {
		return typeErr("TYPE012", fmt.Sprintf("duplicate pattern binder: %s", name), sp)
	}
	seen[name] = true
	return nil
}

func elaborateLitPattern(st *State, p *ast.PLit, ty types.Type) ([]types.Constraint, error) {
	var litTy types.Type
	var cs []types.Constraint
	switch p.Kind {
	case token.IntLit:
		a := st.Supply.Fresh()
		litTy = a
		cs = []types.Constraint{{Class: "Num", Type: a}}
	case token.FloatLit:
		litTy = types.DoubleType
	case token.CharLit:
		litTy = types.CharType
	case token.StringLit:
		litTy = types.StringType()
	case token.KwTrue, token.KwFalse:
		litTy = types.BoolType
	default:
		return nil, typeErr("TYPE099", "unrecognized literal pattern kind", p.Sp)
	}
	s2, err := types.Unify(st.Subst, types.Apply(st.Subst, ty), types.Apply(st.Subst, litTy), spanPtr(p.Sp))
	if err != nil {
		return nil, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	return types.ApplyConstraints(st.Subst, cs), nil
}

func elaborateConPattern(env *types.Env, ce *types.ClassEnv, st *State, p *ast.PCon, ty types.Type, seen map[string]bool) (*types.Env, []types.Constraint, error) {
	sch, ok := env.Lookup(p.Name)
	if !ok {
		return nil, nil, typeErr("TYPE010", fmt.Sprintf("unbound constructor: %s", p.Name), p.Sp)
	}
	q := types.Instantiate(st.Supply, sch)
	argTys, resultTy := peelArgs(q.Type, len(p.Args))
	if len(argTys) != len(p.Args) {
		return nil, nil, typeErr("TYPE013", fmt.Sprintf("constructor %s expects %d argument(s), pattern supplies %d", p.Name, len(argTys), len(p.Args)), p.Sp)
	}
	s2, err := types.Unify(st.Subst, types.Apply(st.Subst, ty), types.Apply(st.Subst, resultTy), spanPtr(p.Sp))
	if err != nil {
		return nil, nil, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	cs := append([]types.Constraint{}, q.Constraints...)
	curEnv := env
	for i, sub := range p.Args {
		var subCs []types.Constraint
		var err error
		curEnv, subCs, err = elaboratePattern(curEnv, ce, st, sub, types.Apply(st.Subst, argTys[i]), seen)
		if err != nil {
			return nil, nil, err
		}
		cs = append(cs, subCs...)
	}
	return curEnv, types.ApplyConstraints(st.Subst, cs), nil
}

// peelArgs descends n Fun nodes of t, returning the argument types
// encountered (in order) and the final result type. Fewer than n Fun
// layers yields a short argTys slice, which the caller treats as an arity
// mismatch.
func peelArgs(t types.Type, n int) ([]types.Type, types.Type) {
	var args []types.Type
	for i := 0; i < n; i++ {
		fn, ok := t.(*types.Fun)
		if !ok {
			break
		}
		args = append(args, fn.Arg)
		t = fn.Ret
	}
	return args, t
}

func elaborateListPattern(env *types.Env, ce *types.ClassEnv, st *State, p *ast.PList, ty types.Type, seen map[string]bool) (*types.Env, []types.Constraint, error) {
	elem := st.Supply.Fresh()
	s2, err := types.Unify(st.Subst, types.Apply(st.Subst, ty), &types.List{Elem: elem}, spanPtr(p.Sp))
	if err != nil {
		return nil, nil, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	curEnv := env
	var cs []types.Constraint
	for _, it := range p.Items {
		var itCs []types.Constraint
		curEnv, itCs, err = elaboratePattern(curEnv, ce, st, it, types.Apply(st.Subst, elem), seen)
		if err != nil {
			return nil, nil, err
		}
		cs = append(cs, itCs...)
	}
	return curEnv, cs, nil
}

func elaborateTuplePattern(env *types.Env, ce *types.ClassEnv, st *State, p *ast.PTuple, ty types.Type, seen map[string]bool) (*types.Env, []types.Constraint, error) {
	items := make([]types.Type, len(p.Items))
	for i := range items {
		items[i] = st.Supply.Fresh()
	}
	s2, err := types.Unify(st.Subst, types.Apply(st.Subst, ty), &types.Tuple{Items: items}, spanPtr(p.Sp))
	if err != nil {
		return nil, nil, err
	}
	st.Subst = types.Compose(s2, st.Subst)
	curEnv := env
	var cs []types.Constraint
	for i, it := range p.Items {
		var itCs []types.Constraint
		curEnv, itCs, err = elaboratePattern(curEnv, ce, st, it, types.Apply(st.Subst, items[i]), seen)
		if err != nil {
			return nil, nil, err
		}
		cs = append(cs, itCs...)
	}
	return curEnv, cs, nil
}
