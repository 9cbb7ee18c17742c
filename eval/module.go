package eval

import "github.com/sin4auto/typelang-hm/ast"

// Module is the evaluated counterpart of infer.Module: the updated value
// environment and the declaration names introduced, in declaration order.
type Module struct {
	Env   *Env
	Names []string
}

// EvalModule evaluates every declaration of m against the starting env, in
// source order. A data declaration installs one constructor value per
// alternative (nullary constructors are immediate DataV values, others a
// buffered PrimV); a let declaration evaluates its body, or, for a
// param-bearing binding, closes over an environment holding the
// declarations before it and itself. Each declaration is bound on its own:
// a function declaration can call itself but not a later declaration.
// The caller (the driver) is expected to have already run InferModule
// successfully, so no further error conditions beyond evaluation's own
// (DivideByZero, NonExhaustiveCase, UnresolvedRecursion, UserHole) should
// arise here.
func EvalModule(env *Env, m *ast.Module) (*Module, error) {
	result := &Module{Env: env}
	for _, decl := range m.Decls {
		switch decl := decl.(type) {
		case *ast.DataDecl:
			for _, ctor := range decl.Constructors {
				result.Env = result.Env.Extend(ctor.Name, dataCtor(ctor.Name, len(ctor.Args)))
				result.Names = append(result.Names, ctor.Name)
			}
		case *ast.LetDecl:
			b := decl.Binding
			if len(b.Params) == 0 {
				v, err := Eval(result.Env, b.Body)
				if err != nil {
					return nil, err
				}
				result.Env = result.Env.Extend(b.Name, v)
			} else {
				result.Env = result.Env.Reserve(b.Name)
				result.Env.Fill(b.Name, &ClosureV{Params: b.Params, Body: b.Body, Env: result.Env})
			}
			result.Names = append(result.Names, b.Name)
		}
	}
	return result, nil
}
