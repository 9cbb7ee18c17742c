package infer

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/token"
	"github.com/sin4auto/typelang-hm/types"
)

// Module is the result of inferring every declaration in an ast.Module:
// the updated type environment (only ever produced from an input module
// that type-checked in full — §7's atomicity guarantee), the resolved
// scheme for each top-level name in declaration order, and the updated
// class environment (data declarations register Eq/Ord/Show instances for
// their own type head).
type Module struct {
	Env        *types.Env
	ClassEnv   *types.ClassEnv
	Names      []string
	Schemes    map[string]*types.Scheme
	DataDecls  []*ast.DataDecl
	Ctors      map[string][]string // data type name -> its constructor names, declaration order
}

// InferModule type-checks every declaration of m against the starting
// env/ce, committing nothing to the caller's environment unless every
// declaration succeeds (the driver is responsible for only swapping in
// the result on success, which is what gives §7's "failed inference
// leaves the type environment unchanged" guarantee its force). The
// exception is ce: instances registered for a data declaration are added
// to ce in place, whether or not a later declaration fails.
func InferModule(env *types.Env, ce *types.ClassEnv, m *ast.Module) (*Module, error) {
	result := &Module{
		Env:      env,
		ClassEnv: ce,
		Schemes:  map[string]*types.Scheme{},
		Ctors:    map[string][]string{},
	}
	for _, decl := range m.Decls {
		switch decl := decl.(type) {
		case *ast.DataDecl:
			if err := inferDataDecl(result, decl); err != nil {
				return nil, err
			}
		case *ast.LetDecl:
			if err := inferLetDecl(result, decl); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// inferDataDecl synthesizes a polytype `forall params. Arg1 -> ... ->
// ArgN -> TypeName param1 ... paramK` for every constructor (§3.5,
// §4.4's "data constructor" rule) and registers Eq/Ord/Show instances for
// the new type head so derived operations (==, show, ...) work on values
// of the new type without the program declaring them explicitly.
func inferDataDecl(m *Module, d *ast.DataDecl) error {
	paramIDs := make(map[string]int, len(d.Params))
	var resultTy types.Type = &types.Con{Name: d.TypeName}
	varIDs := make([]int, len(d.Params))
	for i, p := range d.Params {
		id := surfaceVarID(fmt.Sprintf("%s#%s#%d", d.TypeName, p, i))
		paramIDs[p] = id
		varIDs[i] = id
		resultTy = &types.App{Func: resultTy, Arg: &types.Var{ID: id}}
	}
	m.DataDecls = append(m.DataDecls, d)
	for _, ctor := range d.Constructors {
		fnTy := resultTy
		for i := len(ctor.Args) - 1; i >= 0; i-- {
			argTy := dataArgType(ctor.Args[i], paramIDs)
			fnTy = &types.Fun{Arg: argTy, Ret: fnTy}
		}
		sch := &types.Scheme{Vars: varIDs, Qual: types.QualType{Type: fnTy}}
		m.Env = m.Env.Extend(ctor.Name, sch)
		m.Schemes[ctor.Name] = sch
		m.Names = append(m.Names, ctor.Name)
		m.Ctors[d.TypeName] = append(m.Ctors[d.TypeName], ctor.Name)
	}
	m.ClassEnv.AddInstance("Eq", d.TypeName)
	m.ClassEnv.AddInstance("Ord", d.TypeName)
	m.ClassEnv.AddInstance("Show", d.TypeName)
	return nil
}

func dataArgType(te ast.TypeExpr, paramIDs map[string]int) types.Type {
	switch te := te.(type) {
	case *ast.TEVar:
		if id, ok := paramIDs[te.Name]; ok {
			return &types.Var{ID: id}
		}
		return &types.Var{ID: surfaceVarID(te.Name)}
	case *ast.TECon:
		if te.Name == "String" {
			return types.StringType()
		}
		return &types.Con{Name: te.Name}
	case *ast.TEApp:
		return &types.App{Func: dataArgType(te.Func, paramIDs), Arg: dataArgType(te.Arg, paramIDs)}
	case *ast.TEFun:
		return &types.Fun{Arg: dataArgType(te.Arg, paramIDs), Ret: dataArgType(te.Ret, paramIDs)}
	case *ast.TEList:
		return &types.List{Elem: dataArgType(te.Elem, paramIDs)}
	case *ast.TETuple:
		items := make([]types.Type, len(te.Items))
		for i, it := range te.Items {
			items[i] = dataArgType(it, paramIDs)
		}
		return &types.Tuple{Items: items}
	}
	return &types.Var{ID: -1}
}

// inferLetDecl infers one top-level `[sig ::] let name p1..pn = body`
// declaration. A param-bearing binding is self-recursive: its own name is
// pre-bound to a fresh monomorphic placeholder (unified with the body's
// inferred type before generalization) so the body may call itself,
// mirroring the Let/letrec design used within expressions
// (see inferLet).
func inferLetDecl(m *Module, d *ast.LetDecl) error {
	st := NewState()
	b := d.Binding
	var q types.QualType
	var err error
	if len(b.Params) == 0 {
		q, err = Infer(m.Env, m.ClassEnv, st, b.Body)
		if err != nil {
			return err
		}
	} else {
		placeholder := st.Supply.Fresh()
		envSelf := m.Env.Extend(b.Name, types.Mono(placeholder))
		lambda := &ast.Lambda{Sp: b.Sp, Params: b.Params, Body: b.Body}
		q, err = Infer(envSelf, m.ClassEnv, st, lambda)
		if err != nil {
			return err
		}
		s2, uerr := types.Unify(st.Subst, types.Apply(st.Subst, placeholder), types.Apply(st.Subst, q.Type), spanPtr(b.Sp))
		if uerr != nil {
			return uerr
		}
		st.Subst = types.Compose(s2, st.Subst)
		q = types.ApplyQual(st.Subst, q)
	}
	if b.Sig != nil {
		annotated := typeFromSurface(b.Sig.Type)
		annotCs := surfaceConstraints(b.Sig.Constraints)
		if len(types.FTV(annotated)) == 0 {
			s2, uerr := types.Unify(st.Subst, types.Apply(st.Subst, q.Type), annotated, spanPtr(b.Sp))
			if uerr != nil {
				return uerr
			}
			st.Subst = types.Compose(s2, st.Subst)
			q = types.QualType{Constraints: append(types.ApplyConstraints(st.Subst, q.Constraints), annotCs...), Type: types.Apply(st.Subst, annotated)}
		} else {
			q, err = skolemCheckAnnot(st, q, annotated, annotCs, b.Sp)
			if err != nil {
				return err
			}
		}
	}
	if err := checkResidual(m.ClassEnv, q.Constraints, b.Sp); err != nil {
		return err
	}
	sch := types.Generalize(m.Env, q)
	if err := checkAmbiguity(sch, b.Sp); err != nil {
		return err
	}
	m.Env = m.Env.Extend(b.Name, sch)
	m.Schemes[b.Name] = sch
	m.Names = append(m.Names, b.Name)
	return nil
}

// checkResidual walks each constraint the class environment does not
// discharge, distinguishing a deferrable one (bare variable or
// variable-headed application, kept as part of the generalized scheme)
// from a hard failure against a fully concrete, uninstanced head
// (NoInstance), per §4.4's entailment rule.
func checkResidual(ce *types.ClassEnv, cs []types.Constraint, sp token.Span) error {
	for _, c := range cs {
		if ce.Entails([]types.Constraint{c}) {
			continue
		}
		if types.HeadIsVar(c.Type) {
			continue
		}
		return typeErr("TYPE003", fmt.Sprintf("no instance for %s %s", c.Class, types.ShowType(c.Type, nil)), sp)
	}
	return nil
}

// defaultableClasses names the numeric-hierarchy classes §4.4's defaulting
// rule can silently resolve at display time; a residual constraint in any
// other class whose variable never occurs in the generalized type is
// genuinely unresolvable by any caller and is ambiguous, not deferred.
var defaultableClasses = map[string]bool{"Num": true, "Fractional": true, "Integral": true}

// checkAmbiguity implements §4.4's AmbiguousType rule: after
// generalization, a residual constraint whose type variable does not occur
// free in the scheme's own type can never be resolved by any instantiation
// site, unless defaulting (Num/Fractional/Integral only) can paper over it
// at display time.
func checkAmbiguity(sch *types.Scheme, sp token.Span) error {
	free := types.FTV(sch.Qual.Type)
	for _, c := range sch.Qual.Constraints {
		v, ok := c.Type.(*types.Var)
		if !ok || free[v.ID] {
			continue
		}
		if defaultableClasses[c.Class] {
			continue
		}
		return typeErr("TYPE004", fmt.Sprintf("ambiguous type: %s %s does not appear in the inferred type", c.Class, types.ShowType(c.Type, nil)), sp)
	}
	return nil
}
