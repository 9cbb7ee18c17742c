package eval

import (
	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
)

// matchPattern tries to match v against p, returning the environment
// extended with p's bindings and ok=true on success. On a structural
// mismatch (wrong constructor, wrong literal) it returns ok=false and the
// caller tries the next case alternative; env is meaningless when
// ok=false. Matching never itself fails with an error except for a
// same-constructor field-count mismatch or a tuple arity mismatch, which
// are internal inconsistencies that type checking rules out.
func matchPattern(env *Env, p ast.Pattern, v Value) (*Env, bool, error) {
	switch p := p.(type) {
	case *ast.PWildcard:
		return env, true, nil
	case *ast.PVar:
		return env.Extend(p.Name, v), true, nil
	case *ast.PLit:
		return matchLit(env, p, v)
	case *ast.PCon:
		return matchCon(env, p, v)
	case *ast.PList:
		return matchList(env, p, v)
	case *ast.PTuple:
		return matchTuple(env, p, v)
	case *ast.PAs:
		env2 := env.Extend(p.Name, v)
		return matchPattern(env2, p.Pattern, v)
	}
	return env, false, evalErr("EVAL099", "unhandled pattern node")
}

func matchLit(env *Env, p *ast.PLit, v Value) (*Env, bool, error) {
	switch p.Kind {
	case token.IntLit:
		switch v := v.(type) {
		case *IntV:
			return env, v.Value == p.IntVal, nil
		case *DoubleV:
			return env, v.Value == float64(p.IntVal), nil
		}
		return env, false, nil
	case token.FloatLit:
		v, ok := v.(*DoubleV)
		return env, ok && v.Value == p.FloatVal, nil
	case token.CharLit:
		v, ok := v.(*CharV)
		return env, ok && v.Value == p.CharVal, nil
	case token.StringLit:
		v, ok := v.(*StringV)
		return env, ok && v.Value == p.StringVal, nil
	case token.KwTrue, token.KwFalse:
		v, ok := v.(*BoolV)
		return env, ok && v.Value == p.BoolVal, nil
	}
	return env, false, evalErr("EVAL099", "unrecognized literal pattern kind")
}

func matchCon(env *Env, p *ast.PCon, v Value) (*Env, bool, error) {
	d, ok := v.(*DataV)
	if !ok || d.Ctor != p.Name {
		return env, false, nil
	}
	if len(d.Fields) != len(p.Args) {
		return env, false, evalErr("EVAL099", "constructor pattern arity mismatch against its value")
	}
	curEnv := env
	for i, sub := range p.Args {
		var matched bool
		var err error
		curEnv, matched, err = matchPattern(curEnv, sub, d.Fields[i])
		if err != nil {
			return env, false, err
		}
		if !matched {
			return env, false, nil
		}
	}
	return curEnv, true, nil
}

func matchList(env *Env, p *ast.PList, v Value) (*Env, bool, error) {
	l, ok := v.(*ListV)
	if !ok || len(l.Items) != len(p.Items) {
		return env, false, nil
	}
	curEnv := env
	for i, sub := range p.Items {
		var matched bool
		var err error
		curEnv, matched, err = matchPattern(curEnv, sub, l.Items[i])
		if err != nil {
			return env, false, err
		}
		if !matched {
			return env, false, nil
		}
	}
	return curEnv, true, nil
}

func matchTuple(env *Env, p *ast.PTuple, v Value) (*Env, bool, error) {
	t, ok := v.(*TupleV)
	if !ok || len(t.Items) != len(p.Items) {
		return env, false, evalErr("EVAL099", "tuple pattern arity mismatch against its value")
	}
	curEnv := env
	for i, sub := range p.Items {
		var matched bool
		var err error
		curEnv, matched, err = matchPattern(curEnv, sub, t.Items[i])
		if err != nil {
			return env, false, err
		}
		if !matched {
			return env, false, nil
		}
	}
	return curEnv, true, nil
}
