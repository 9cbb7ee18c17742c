package types

import "testing"

func TestComposeAppliesLeftToRightValues(t *testing.T) {
	// s2: 0 -> Var(1); s1: 1 -> Int. compose(s1,s2) must send 0 -> Int.
	s2 := Subst{0: &Var{ID: 1}}
	s1 := Subst{1: IntType}
	composed := Compose(s1, s2)
	got := Apply(composed, &Var{ID: 0})
	if c, ok := got.(*Con); !ok || c.Name != "Int" {
		t.Fatalf("Compose: got %#v, want Int", got)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	v := &Var{ID: 0}
	fn := &Fun{Arg: v, Ret: v}
	_, err := Unify(Subst{}, v, fn, nil)
	if err == nil {
		t.Fatal("expected occurs-check failure")
	}
}

func TestUnifyStructural(t *testing.T) {
	a := &Fun{Arg: &Var{ID: 0}, Ret: IntType}
	b := &Fun{Arg: BoolType, Ret: &Var{ID: 1}}
	s, err := Unify(Subst{}, a, b, nil)
	if err != nil {
		t.Fatalf("Unify failed: %v", err)
	}
	if got := Apply(s, &Var{ID: 0}); got.(*Con).Name != "Bool" {
		t.Errorf("var 0 = %v, want Bool", got)
	}
	if got := Apply(s, &Var{ID: 1}); got.(*Con).Name != "Int" {
		t.Errorf("var 1 = %v, want Int", got)
	}
}

func TestUnifyMismatch(t *testing.T) {
	_, err := Unify(Subst{}, IntType, BoolType, nil)
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	env := NewEnv()
	v := &Var{ID: 5}
	sc := Generalize(env, QualType{Type: &Fun{Arg: v, Ret: v}})
	if len(sc.Vars) != 1 || sc.Vars[0] != 5 {
		t.Fatalf("Generalize vars = %v, want [5]", sc.Vars)
	}
	supply := NewSupply()
	supply.Fresh() // burn id 0 so the instantiated var is visibly fresh
	q := Instantiate(supply, sc)
	fn := q.Type.(*Fun)
	argVar, ok := fn.Arg.(*Var)
	if !ok {
		t.Fatalf("instantiated arg is not a Var: %#v", fn.Arg)
	}
	if argVar.ID == 5 {
		t.Errorf("instantiate did not freshen bound variable")
	}
	if fn.Ret.(*Var).ID != argVar.ID {
		t.Errorf("instantiate must substitute both occurrences with the same fresh var")
	}
}

func TestGeneralizeExcludesEnvFreeVars(t *testing.T) {
	env := NewEnv()
	v := &Var{ID: 1}
	env = env.Extend("x", Mono(v))
	sc := Generalize(env, QualType{Type: v})
	if len(sc.Vars) != 0 {
		t.Fatalf("Generalize should not quantify a variable free in env, got %v", sc.Vars)
	}
}

func TestClassEnvEntailsDirectAndStructuralInstances(t *testing.T) {
	ce := NewClassEnv()
	if !ce.Entails([]Constraint{{Class: "Eq", Type: IntType}}) {
		t.Error("Int should satisfy Eq directly")
	}
	if !ce.Entails([]Constraint{{Class: "Eq", Type: &List{Elem: IntType}}}) {
		t.Error("[Int] should satisfy Eq by structural delegation")
	}
	if ce.Entails([]Constraint{{Class: "Fractional", Type: IntType}}) {
		t.Error("Int must not satisfy Fractional")
	}
}

func TestDefaultingPrefersFractionalOverNum(t *testing.T) {
	v := &Var{ID: 0}
	q := QualType{
		Constraints: []Constraint{{Class: "Num", Type: v}, {Class: "Fractional", Type: v}},
		Type:        &Fun{Arg: v, Ret: v},
	}
	defaulted := ApplyDefaulting(q)
	fn := defaulted.Type.(*Fun)
	if fn.Arg.(*Con).Name != "Double" {
		t.Errorf("Fractional-constrained var should default to Double, got %v", fn.Arg)
	}
}

func TestDefaultingNumOnly(t *testing.T) {
	v := &Var{ID: 0}
	q := QualType{
		Constraints: []Constraint{{Class: "Num", Type: v}},
		Type:        &Fun{Arg: v, Ret: v},
	}
	defaulted := ApplyDefaulting(q)
	fn := defaulted.Type.(*Fun)
	if fn.Arg.(*Con).Name != "Integer" {
		t.Errorf("Num-only constrained var should default to Integer, got %v", fn.Arg)
	}
}

func TestShowQualScenario1(t *testing.T) {
	v := &Var{ID: 0}
	q := QualType{Constraints: []Constraint{{Class: "Fractional", Type: v}}, Type: &Fun{Arg: v, Ret: v}}
	if got := ShowQual(q); got != "Fractional a => a -> a" {
		t.Errorf("ShowQual = %q, want %q", got, "Fractional a => a -> a")
	}
	defaulted := ApplyDefaulting(q)
	if got := ShowQual(defaulted); got != "Double -> Double" {
		t.Errorf("ShowQual(defaulted) = %q, want %q", got, "Double -> Double")
	}
}
