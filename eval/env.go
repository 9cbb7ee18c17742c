package eval

import "github.com/benbjohnson/immutable"

// cell is the mutable slot a recursive binding's closures capture by
// reference: Reserve installs an empty, not-yet-ready cell before any
// sibling body evaluates, and Fill populates it once the binding's value
// is known (design note: "assign once before any evaluation of bodies").
// Looking a cell up before it is filled means the program forced a
// binding's own value during its own definition, which raises
// UnresolvedRecursion.
type cell struct {
	value Value
	ready bool
}

// Env is a persistent value-environment: name -> cell. Persistence gives
// the driver free rollback on a failed batch (the whole batch is discarded,
// since the driver only ever installs a new Env on success), while the cell indirection inside each binding is
// what lets a closure captured before its own binding is filled still see
// the binding once Fill runs (closures hold the same *Env, and *Env's
// underlying map is shared/persistent, not copied).
type Env struct {
	m *immutable.Map
}

// NewEnv returns the empty value-environment.
func NewEnv() *Env { return &Env{m: immutable.NewMap(nil)} }

// Extend returns a new environment with name immediately bound to value
// (the non-recursive case: the value is already fully evaluated).
func (e *Env) Extend(name string, value Value) *Env {
	return &Env{m: e.m.Set(name, &cell{value: value, ready: true})}
}

// Reserve returns a new environment with name bound to a not-yet-ready
// cell, for the recursive case: install the placeholder, evaluate the
// body (which may look itself up through the same Env), then Fill.
func (e *Env) Reserve(name string) *Env {
	return &Env{m: e.m.Set(name, &cell{})}
}

// Fill populates the cell most recently reserved for name. It mutates the
// cell in place (by design: every Env sharing this underlying map must
// observe the fill), not the persistent map itself.
func (e *Env) Fill(name string, value Value) {
	v, ok := e.m.Get(name)
	if !ok {
		return
	}
	c := v.(*cell)
	c.value = value
	c.ready = true
}

// Remove returns a new environment with name unbound.
func (e *Env) Remove(name string) *Env {
	return &Env{m: e.m.Delete(name)}
}

// Lookup resolves name, reporting bound=true, ready=false to let the
// caller distinguish "unbound" from "bound but not yet assigned" so it
// can raise UnresolvedRecursion specifically for the latter.
func (e *Env) Lookup(name string) (value Value, bound bool, ready bool) {
	v, ok := e.m.Get(name)
	if !ok {
		return nil, false, false
	}
	c := v.(*cell)
	return c.value, true, c.ready
}

// Names returns every bound name, in undefined order.
func (e *Env) Names() []string {
	names := make([]string, 0, e.m.Len())
	it := e.m.Iterator()
	for !it.Done() {
		k, _ := it.Next()
		names = append(names, k.(string))
	}
	return names
}

// Len reports the number of bindings in the environment.
func (e *Env) Len() int { return e.m.Len() }
