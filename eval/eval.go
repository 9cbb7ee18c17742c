package eval

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/diag"
)

// Eval evaluates e under env: strict, call-by-value, left-to-right
// argument and let-binding evaluation (§4.6). Type annotations carry no
// runtime weight and are simply erased.
func Eval(env *Env, e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Var:
		return evalVar(env, e)
	case *ast.IntLit:
		return &IntV{Value: e.Value}, nil
	case *ast.DoubleLit:
		return &DoubleV{Value: e.Value}, nil
	case *ast.CharLit:
		return &CharV{Value: e.Value}, nil
	case *ast.StringLit:
		return &StringV{Value: e.Value}, nil
	case *ast.BoolLit:
		return &BoolV{Value: e.Value}, nil
	case *ast.ListLit:
		return evalList(env, e)
	case *ast.TupleLit:
		return evalTuple(env, e)
	case *ast.Lambda:
		return &ClosureV{Params: e.Params, Body: e.Body, Env: env}, nil
	case *ast.App:
		return evalApp(env, e)
	case *ast.Let:
		return evalLet(env, e)
	case *ast.If:
		return evalIf(env, e)
	case *ast.Case:
		return evalCase(env, e)
	case *ast.Annot:
		return Eval(env, e.Expr)
	case *ast.Hole:
		return nil, &Error{diag.At("EVAL080", fmt.Sprintf("forced hole ?%s", e.Name), e.Sp)}
	}
	return nil, evalErr("EVAL099", fmt.Sprintf("unhandled expression node %T", e))
}

func evalVar(env *Env, e *ast.Var) (Value, error) {
	if e.Name == "_" {
		return nil, &Error{diag.At("EVAL080", "forced hole ?_", e.Sp)}
	}
	v, bound, ready := env.Lookup(e.Name)
	if !bound {
		return nil, &Error{diag.At("EVAL010", fmt.Sprintf("unbound variable: %s", e.Name), e.Sp)}
	}
	if !ready {
		return nil, &Error{diag.At("EVAL070", fmt.Sprintf("%s referenced before its recursive binding was assigned", e.Name), e.Sp)}
	}
	return v, nil
}

func evalList(env *Env, e *ast.ListLit) (Value, error) {
	items := make([]Value, len(e.Items))
	for i, it := range e.Items {
		v, err := Eval(env, it)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return &ListV{Items: items}, nil
}

func evalTuple(env *Env, e *ast.TupleLit) (Value, error) {
	items := make([]Value, len(e.Items))
	for i, it := range e.Items {
		v, err := Eval(env, it)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return &TupleV{Items: items}, nil
}

func evalApp(env *Env, e *ast.App) (Value, error) {
	fn, err := Eval(env, e.Func)
	if err != nil {
		return nil, err
	}
	arg, err := Eval(env, e.Arg)
	if err != nil {
		return nil, err
	}
	return apply(fn, arg)
}

// apply applies one argument to a callee: a closure with remaining
// parameters captures the argument (currying one param per application);
// once its last parameter is supplied, its body evaluates. A primitive
// whose arity is not yet satisfied extends its argument buffer; once
// saturated, its native step executes (§4.6).
func apply(fn, arg Value) (Value, error) {
	switch fn := fn.(type) {
	case *ClosureV:
		env2 := fn.Env.Extend(fn.Params[0], arg)
		if len(fn.Params) == 1 {
			return Eval(env2, fn.Body)
		}
		return &ClosureV{Params: fn.Params[1:], Body: fn.Body, Env: env2}, nil
	case *PrimV:
		collected := make([]Value, len(fn.Collected), len(fn.Collected)+1)
		copy(collected, fn.Collected)
		collected = append(collected, arg)
		if len(collected) == fn.Arity {
			return fn.Apply(collected)
		}
		return &PrimV{Name: fn.Name, Arity: fn.Arity, Collected: collected, Apply: fn.Apply}, nil
	}
	return nil, evalErr("EVAL040", fmt.Sprintf("cannot apply a non-function value (%T)", fn))
}

// evalLet implements the design documented on ast.Binding (mirroring
// inferLet's two-pass structure): param-bearing (function) bindings share
// a reserved, not-yet-filled cell for the whole sibling group before any
// body evaluates, then fill once their closures are built, so they may
// reference themselves and each other; a param-less binding is
// non-recursive and evaluated immediately, visible only to later bindings
// in the same group.
func evalLet(env *Env, e *ast.Let) (Value, error) {
	env2 := env
	var funcIdx []int
	for i, b := range e.Bindings {
		if len(b.Params) > 0 {
			env2 = env2.Reserve(b.Name)
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
		v, err := Eval(env2, b.Body)
		if err != nil {
			return nil, err
		}
		env2 = env2.Extend(b.Name, v)
	}
	for _, i := range funcIdx {
		b := e.Bindings[i]
		env2.Fill(b.Name, &ClosureV{Params: b.Params, Body: b.Body, Env: env2})
	}
	return Eval(env2, e.Body)
}

func evalIf(env *Env, e *ast.If) (Value, error) {
	c, err := Eval(env, e.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := c.(*BoolV)
	if !ok {
		return nil, &Error{diag.At("EVAL040", "if: condition did not evaluate to a Bool", e.Sp)}
	}
	if b.Value {
		return Eval(env, e.Then)
	}
	return Eval(env, e.Else)
}

func evalCase(env *Env, e *ast.Case) (Value, error) {
	scrut, err := Eval(env, e.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, alt := range e.Alts {
		branchEnv, matched, err := matchPattern(env, alt.Pattern, scrut)
		if err != nil {
			return nil, err
		}
		if matched {
			return Eval(branchEnv, alt.Body)
		}
	}
	return nil, &Error{diag.At("EVAL071", "non-exhaustive case: no alternative matched", e.Sp)}
}
