package types

// Subst is an idempotent substitution from type-variable ids to monotypes.
//
// Idempotency is maintained by construction: Bind always applies the
// existing substitution to the incoming type before extending the map
// (see Compose), so no entry's codomain ever mentions a variable that is
// itself a key of the map.
type Subst map[int]Type

// Apply replaces every free variable in t that has a binding in s, recursively.
func Apply(s Subst, t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Var:
		if rep, ok := s[t.ID]; ok {
			return rep
		}
		return t
	case *Con:
		return t
	case *App:
		return &App{Func: Apply(s, t.Func), Arg: Apply(s, t.Arg)}
	case *Fun:
		return &Fun{Arg: Apply(s, t.Arg), Ret: Apply(s, t.Ret)}
	case *Tuple:
		items := make([]Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = Apply(s, it)
		}
		return &Tuple{Items: items}
	case *List:
		return &List{Elem: Apply(s, t.Elem)}
	default:
		return t
	}
}

// ApplyConstraint applies s to the type a constraint ranges over.
func ApplyConstraint(s Subst, c Constraint) Constraint {
	return Constraint{Class: c.Class, Type: Apply(s, c.Type)}
}

// ApplyConstraints applies s to every constraint in cs.
func ApplyConstraints(s Subst, cs []Constraint) []Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = ApplyConstraint(s, c)
	}
	return out
}

// ApplyQual applies s to a qualified type's constraints and monotype.
func ApplyQual(s Subst, q QualType) QualType {
	return QualType{Constraints: ApplyConstraints(s, q.Constraints), Type: Apply(s, q.Type)}
}

// ApplyScheme applies s to a scheme, skipping the scheme's own bound
// variables so a substitution can never capture a quantified variable.
func ApplyScheme(s Subst, sc *Scheme) *Scheme {
	if len(s) == 0 {
		return sc
	}
	filtered := make(Subst, len(s))
	bound := make(map[int]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	for k, v := range s {
		if !bound[k] {
			filtered[k] = v
		}
	}
	return &Scheme{Vars: sc.Vars, Qual: ApplyQual(filtered, sc.Qual)}
}

// Compose returns the substitution equivalent to applying s2 then s1:
// apply s1 to every value already bound by s2, then overlay s1's own
// bindings on top. s1's domain is disjoint from ids still live in s2 by
// construction, so the overlay never discards a meaningful binding.
func Compose(s1, s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = Apply(s1, v)
	}
	for k, v := range s1 {
		out[k] = v
	}
	return out
}

// Bind produces the singleton substitution {id: t}, applying the existing
// substitution s to t first so the result stays idempotent when composed.
func Bind(s Subst, id int, t Type) Subst {
	return Compose(Subst{id: Apply(s, t)}, s)
}

// FTV computes the set of free type-variable ids in t.
func FTV(t Type) map[int]bool {
	out := make(map[int]bool)
	ftvInto(t, out)
	return out
}

func ftvInto(t Type, out map[int]bool) {
	switch t := t.(type) {
	case *Var:
		out[t.ID] = true
	case *App:
		ftvInto(t.Func, out)
		ftvInto(t.Arg, out)
	case *Fun:
		ftvInto(t.Arg, out)
		ftvInto(t.Ret, out)
	case *Tuple:
		for _, it := range t.Items {
			ftvInto(it, out)
		}
	case *List:
		ftvInto(t.Elem, out)
	}
}

// FTVQual computes the free variables of a qualified type: those free in
// its monotype, unioned with those free in its constraints.
func FTVQual(q QualType) map[int]bool {
	out := FTV(q.Type)
	for _, c := range q.Constraints {
		ftvInto(c.Type, out)
	}
	return out
}

// FTVScheme computes the free variables of a scheme: FTVQual minus the
// scheme's own quantified variables.
func FTVScheme(sc *Scheme) map[int]bool {
	out := FTVQual(sc.Qual)
	for _, v := range sc.Vars {
		delete(out, v)
	}
	return out
}
