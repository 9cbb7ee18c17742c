package types

import "github.com/benbjohnson/immutable"

// Env is a persistent type-environment: name -> Scheme. Extending or
// removing a binding never mutates the receiver, so a driver can hold onto
// an Env across a failed :let/:load and observe it unchanged (spec's
// "failed inference leaves the type environment unchanged" guarantee falls
// out of persistence directly, with no explicit snapshot/restore needed).
type Env struct {
	m *immutable.Map
}

// NewEnv returns the empty type-environment.
func NewEnv() *Env { return &Env{m: immutable.NewMap(nil)} }

// Extend returns a new environment with name bound to sc, shadowing any
// prior binding of name.
func (e *Env) Extend(name string, sc *Scheme) *Env {
	return &Env{m: e.m.Set(name, sc)}
}

// Remove returns a new environment with name unbound.
func (e *Env) Remove(name string) *Env {
	return &Env{m: e.m.Delete(name)}
}

// Lookup returns the scheme bound to name, if any.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	v, ok := e.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Scheme), true
}

// Len reports the number of bindings in the environment.
func (e *Env) Len() int { return e.m.Len() }

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

// FTV computes the union of free variables across every scheme bound in e.
func (e *Env) FTV() map[int]bool {
	out := make(map[int]bool)
	it := e.m.Iterator()
	for !it.Done() {
		_, v := it.Next()
		for id := range FTVScheme(v.(*Scheme)) {
			out[id] = true
		}
	}
	return out
}
