package types

import (
	"fmt"
	"sort"
	"strings"
)

// varNamer assigns sequential single/double-letter display names (a, b, ...,
// z, a1, b1, ...) to type-variable ids on first encounter, matching the
// reference implementation's pp_type variable-naming scheme.
type varNamer struct {
	names map[int]string
	next  int
}

func newVarNamer() *varNamer { return &varNamer{names: make(map[int]string)} }

func (n *varNamer) name(id int) string {
	if nm, ok := n.names[id]; ok {
		return nm
	}
	letter := rune('a' + n.next%26)
	gen := n.next / 26
	nm := string(letter)
	if gen > 0 {
		nm = fmt.Sprintf("%s%d", nm, gen)
	}
	n.next++
	n.names[id] = nm
	return nm
}

// ShowType renders t. namer may be nil, in which case a fresh one-off
// namer is used (sufficient for error messages where only one type is
// shown at a time).
func ShowType(t Type, namer *varNamer) string {
	if namer == nil {
		namer = newVarNamer()
	}
	return showType(t, namer, false)
}

func showType(t Type, namer *varNamer, parenArrow bool) string {
	switch t := t.(type) {
	case *Var:
		return namer.name(t.ID)
	case *Con:
		return t.Name
	case *List:
		return "[" + showType(t.Elem, namer, false) + "]"
	case *App:
		if head, ok := headName(t); ok && head == "[]" {
			if lt, isList := asListSugar(t); isList {
				return "[" + showType(lt, namer, false) + "]"
			}
		}
		return showType(t.Func, namer, true) + " " + showType(t.Arg, namer, true)
	case *Fun:
		s := showType(t.Arg, namer, true) + " -> " + showType(t.Ret, namer, false)
		if parenArrow {
			return "(" + s + ")"
		}
		return s
	case *Tuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = showType(it, namer, false)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// asListSugar recognizes the App-encoded spelling of a list type, `[] t`,
// so it can render with bracket sugar rather than as a raw application.
// TypeLang HM's List is a dedicated Type variant, so this only matters for
// types synthesized by constructor schemes that build lists via App.
func asListSugar(t *App) (Type, bool) {
	if c, ok := t.Func.(*Con); ok && c.Name == "[]" {
		return t.Arg, true
	}
	return nil, false
}

func constraintKey(c Constraint) string {
	return c.Class + "|" + showType(c.Type, newVarNamer(), false)
}

// normalizeConstraints dedupes constraints by (class, type) identity.
func normalizeConstraints(cs []Constraint) []Constraint {
	seen := make(map[string]bool)
	namer := newVarNamer() // shared so distinct variables get distinct keys
	var out []Constraint
	for _, c := range cs {
		k := c.Class + "|" + showType(c.Type, namer, false)
		if !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

func withTypeVars(cs []Constraint) []Constraint {
	var out []Constraint
	for _, c := range cs {
		if len(FTV(c.Type)) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// relevantTo keeps only constraints whose free variables intersect the
// free variables of t, suppressing constraints on internal-only variables
// that defaulting or unification already resolved away from the displayed
// type.
func relevantTo(cs []Constraint, t Type) []Constraint {
	target := FTV(t)
	var out []Constraint
	for _, c := range cs {
		for id := range FTV(c.Type) {
			if target[id] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// ShowQual renders a qualified type as `C1 a, C2 b => type`, or bare
// `type` when no constraints survive normalization/relevance filtering.
func ShowQual(q QualType) string {
	namer := newVarNamer()
	cs := relevantTo(withTypeVars(normalizeConstraints(q.Constraints)), q.Type)
	// drop a constraint implied through a superclass by another one on the
	// same type (Num a is not shown beside Fractional a).
	ce, keyNamer := NewClassEnv(), newVarNamer()
	var shown []Constraint
outer:
	for _, c := range cs {
		for _, d := range cs {
			if ce.hasSuper(d.Class, c.Class) && showType(d.Type, keyNamer, false) == showType(c.Type, keyNamer, false) {
				continue outer
			}
		}
		shown = append(shown, c)
	}
	cs = shown
	sort.Slice(cs, func(i, j int) bool { return constraintKey(cs[i]) < constraintKey(cs[j]) })
	typeStr := showType(q.Type, namer, false)
	if len(cs) == 0 {
		return typeStr
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Class + " " + showType(c.Type, namer, false)
	}
	return strings.Join(parts, ", ") + " => " + typeStr
}

// ShowScheme renders a scheme's qualified type (quantifiers are implicit in
// TypeLang HM's display convention, matching the reference implementation,
// which never prints an explicit `forall`).
func ShowScheme(sc *Scheme) string { return ShowQual(sc.Qual) }

// Defaulting (display only, spec.md #4.4): build a substitution mapping
// every bare type variable constrained only by the numeric class hierarchy
// to a concrete type, then apply it to q. This mutates nothing but the
// returned copy; the scheme used for further inference/evaluation is
// untouched. The two-pass, unconditional-on-bare-vars behavior (Fractional
// wins over Num when both apply, and a variable is defaulted even if it
// appears directly in the displayed return type) is grounded on
// apply_defaulting_simple in the original implementation this spec was
// distilled from.
func ApplyDefaulting(q QualType) QualType {
	sub := make(Subst)
	for _, c := range q.Constraints {
		v, ok := c.Type.(*Var)
		if !ok {
			continue
		}
		if c.Class == "Fractional" {
			sub[v.ID] = DoubleType
		}
	}
	for _, c := range q.Constraints {
		v, ok := c.Type.(*Var)
		if !ok {
			continue
		}
		if c.Class == "Num" {
			if _, already := sub[v.ID]; !already {
				sub[v.ID] = IntegerCon
			}
		}
	}
	return ApplyQual(sub, q)
}

// ShowSchemeDefaulted applies display-only defaulting before rendering.
func ShowSchemeDefaulted(sc *Scheme) string { return ShowQual(ApplyDefaulting(sc.Qual)) }
