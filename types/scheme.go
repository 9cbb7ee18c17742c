package types

// Generalize quantifies every variable free in q but not free in env,
// producing a Scheme. Constraints travel with the quantified type so a
// deferred (unresolved) constraint becomes part of the generalized scheme.
func Generalize(env *Env, q QualType) *Scheme {
	envFree := env.FTV()
	qFree := FTVQual(q)
	var vars []int
	for id := range qFree {
		if !envFree[id] {
			vars = append(vars, id)
		}
	}
	return &Scheme{Vars: vars, Qual: q}
}

// Instantiate replaces a scheme's quantified variables with fresh ones
// (obtained from supply), returning the instantiated qualified type.
func Instantiate(supply *Supply, sc *Scheme) QualType {
	if len(sc.Vars) == 0 {
		return sc.Qual
	}
	s := make(Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		s[v] = supply.Fresh()
	}
	return ApplyQual(s, sc.Qual)
}

// Supply is a monotonic fresh type-variable id counter. Per the design
// notes, a fresh Supply is used per top-level declaration: resetting
// between declarations keeps displayed ids small without affecting
// correctness, since scopes never leak across declarations.
type Supply struct{ next int }

// NewSupply creates a fresh-variable counter starting at zero.
func NewSupply() *Supply { return &Supply{} }

// Fresh returns a new, previously unused type variable.
func (s *Supply) Fresh() *Var {
	id := s.next
	s.next++
	return &Var{ID: id}
}
