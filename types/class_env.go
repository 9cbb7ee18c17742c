package types

// Class is one member of the closed set of type classes: Eq, Ord, Show,
// Num, Fractional, and optionally Integral, Functor, Foldable. The shape
// (name + superclasses + a set of instance heads) mirrors the teacher
// library's TypeClass/Instance registry, trimmed of deferred-matching and
// row-polymorphism support that this closed, non-extensible class system
// has no use for: instances here are always ground type-constructor heads,
// enumerated at startup or registered for a `data` declaration's type;
// there are no user-written instance declarations.
type Class struct {
	Name  string
	Super []string
}

// ClassEnv is the registry of the closed set of classes and their ground
// instances. The class set is fixed at construction; AddInstance adds
// instances in place afterwards.
type ClassEnv struct {
	classes   map[string]*Class
	instances map[string]map[string]bool // class name -> set of type-constructor head names
}

// NewClassEnv builds the standard TypeLang HM class environment: Eq, Ord
// (super Eq), Show, Num, Fractional (super Num), and the optional
// Integral (super Num), Functor, and Foldable classes named in the
// specification's closed set.
func NewClassEnv() *ClassEnv {
	ce := &ClassEnv{
		classes:   make(map[string]*Class),
		instances: make(map[string]map[string]bool),
	}
	ce.addClass("Eq", nil)
	ce.addClass("Ord", []string{"Eq"})
	ce.addClass("Show", nil)
	ce.addClass("Num", nil)
	ce.addClass("Fractional", []string{"Num"})
	ce.addClass("Integral", []string{"Num"})
	ce.addClass("Functor", nil)
	ce.addClass("Foldable", nil)

	scalars := []string{"Int", "Integer", "Double", "Char", "Bool"}
	for _, t := range scalars {
		ce.addInstance("Eq", t)
		ce.addInstance("Ord", t)
		ce.addInstance("Show", t)
	}
	for _, t := range []string{"Int", "Integer", "Double"} {
		ce.addInstance("Num", t)
	}
	ce.addInstance("Fractional", "Double")
	ce.addInstance("Integral", "Int")
	ce.addInstance("Integral", "Integer")

	// Strings ([Char]) and lists/tuples delegate structurally: see Entails.
	ce.addInstance("Eq", "[]")
	ce.addInstance("Ord", "[]")
	ce.addInstance("Show", "[]")
	ce.addInstance("Functor", "[]")
	ce.addInstance("Foldable", "[]")
	return ce
}

func (ce *ClassEnv) addClass(name string, super []string) {
	ce.classes[name] = &Class{Name: name, Super: super}
	ce.instances[name] = make(map[string]bool)
}

// AddInstance registers a user (or, for the closed class set, builtin)
// instance for classname over the type-constructor head named tycon.
// Exported so a `data` declaration can register Eq/Ord/Show for its own
// constructor when none is explicitly excluded by the program.
func (ce *ClassEnv) AddInstance(classname, tycon string) { ce.addInstance(classname, tycon) }

func (ce *ClassEnv) addInstance(classname, tycon string) {
	if ce.instances[classname] == nil {
		ce.instances[classname] = make(map[string]bool)
	}
	ce.instances[classname][tycon] = true
}

func (ce *ClassEnv) hasSuper(classname, super string) bool {
	c, ok := ce.classes[classname]
	if !ok {
		return false
	}
	for _, s := range c.Super {
		if s == super || ce.hasSuper(s, super) {
			return true
		}
	}
	return false
}

func (ce *ClassEnv) hasInstance(classname, tycon string) bool {
	if ce.instances[classname][tycon] {
		return true
	}
	// superclass closure: an Ord instance also witnesses Eq, etc.
	for _, c := range ce.classes {
		if ce.hasSuper(c.Name, classname) && ce.instances[c.Name][tycon] {
			return true
		}
	}
	return false
}

// headName returns the type-constructor head name for a monotype that has
// one: a Con's own name, or "[]" for any List/App-of-"[]" chain, or "" if
// t's head is not a concrete constructor (e.g. a bare variable).
func headName(t Type) (string, bool) {
	switch t := t.(type) {
	case *Con:
		return t.Name, true
	case *List:
		return "[]", true
	case *App:
		return headName(t.Func)
	}
	return "", false
}

// Entails reports whether every constraint in cs is discharged by ce,
// delegating structurally into List/Tuple element types for Eq/Ord/Show
// (matching the reference implementation's entailment rule: `[T]` and
// `(T1,...,Tn)` satisfy a class iff their element/component types do).
func (ce *ClassEnv) Entails(cs []Constraint) bool {
	for _, c := range cs {
		if !ce.entailsOne(c) {
			return false
		}
	}
	return true
}

func (ce *ClassEnv) entailsOne(c Constraint) bool {
	switch t := c.Type.(type) {
	case *Con:
		return ce.hasInstance(c.Class, t.Name)
	case *List:
		if ce.hasInstance(c.Class, "[]") && structuralClass(c.Class) {
			return ce.entailsOne(Constraint{Class: c.Class, Type: t.Elem})
		}
		return ce.hasInstance(c.Class, "[]")
	case *Tuple:
		if !structuralClass(c.Class) {
			return false
		}
		for _, item := range t.Items {
			if !ce.entailsOne(Constraint{Class: c.Class, Type: item}) {
				return false
			}
		}
		return true
	case *App:
		if head, ok := headName(t); ok {
			return ce.hasInstance(c.Class, head)
		}
		return false
	default:
		// bare variable or other non-concrete head: neither discharged nor
		// refuted here; callers decide (kept vs ambiguous) based on context.
		return false
	}
}

func structuralClass(name string) bool {
	return name == "Eq" || name == "Ord" || name == "Show"
}

// IsBareVar reports whether t is a type variable, used by the inferencer to
// decide whether an undischarged constraint should be kept (deferred to
// generalization) or is a hard NoInstance failure against a concrete head.
func IsBareVar(t Type) bool {
	_, ok := t.(*Var)
	return ok
}

// HeadIsVar reports whether t's outermost applied head is a bare variable
// (e.g. `f a` where `f` is unresolved), in which case a constraint on t is
// deferred rather than rejected.
func HeadIsVar(t Type) bool {
	for {
		app, ok := t.(*App)
		if !ok {
			return IsBareVar(t)
		}
		t = app.Func
	}
}
