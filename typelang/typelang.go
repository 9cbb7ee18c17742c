// Package typelang is the driver front-end for TypeLang HM: it composes
// lexer, parser, type inferencer and evaluator into the handful of entry
// points an interactive or batch front-end actually needs (§6). The core
// packages never import this one; Session only wires them together and
// owns the mutable, replaceable environment triple a REPL mutates turn by
// turn.
package typelang

import (
	"errors"
	"os"

	"github.com/sin4auto/typelang-hm/ast"
	"github.com/sin4auto/typelang-hm/eval"
	"github.com/sin4auto/typelang-hm/infer"
	"github.com/sin4auto/typelang-hm/parser"
	"github.com/sin4auto/typelang-hm/types"
)

var errNoPriorLoad = errors.New("typelang: :reload with no prior :load")

// Session holds one REPL/batch front-end's accumulated state: the type
// environment, class environment and value environment threaded across
// successive :let/:load commands, plus the declaration names bound so far
// (for :list/:remove) and the last loaded file path (for :reload).
//
// A Session's type and value environments are only ever replaced wholesale
// on success (see LoadModule below) — a failed load or declaration leaves
// them untouched, matching §7's atomicity guarantee. ClassEnv is shared and
// keeps any instances a failed module's data declarations registered.
type Session struct {
	TypeEnv    *types.Env
	ClassEnv   *types.ClassEnv
	ValueEnv   *eval.Env
	Names      []string
	Schemes    map[string]*types.Scheme
	Defaulting bool
	LastLoad   string
}

// NewSession builds a Session with the standard library bound (the same
// operators and show/map/foldl/foldr primitives exercised by every
// end-to-end scenario in §8), defaulting display on by default.
func NewSession() *Session {
	return &Session{
		TypeEnv:    infer.InitialEnv(),
		ClassEnv:   infer.InitialClassEnv(),
		ValueEnv:   eval.InitialEnv(),
		Schemes:    map[string]*types.Scheme{},
		Defaulting: true,
	}
}

// ParseModule parses a whole file/:load body's worth of top-level
// declarations.
func ParseModule(src string) (*ast.Module, error) { return parser.ParseModule(src) }

// ParseExpr parses a single standalone expression, as typed at a `:type`
// prompt or after a bare line at the REPL.
func ParseExpr(src string) (ast.Expr, error) { return parser.ParseExpr(src) }

// InferExpr computes the principal qualified type of e against the
// session's current type/class environments without mutating the session.
func (s *Session) InferExpr(e ast.Expr) (types.QualType, error) {
	st := infer.NewState()
	return infer.Infer(s.TypeEnv, s.ClassEnv, st, e)
}

// EvalExpr evaluates e against the session's current value environment.
// The caller is expected to have already type-checked e (InferExpr or
// InferModule) — EvalExpr performs no type checking itself.
func (s *Session) EvalExpr(e ast.Expr) (eval.Value, error) { return eval.Eval(s.ValueEnv, e) }

// ShowScheme renders sc, applying display-only defaulting (§4.4) when the
// session has defaulting enabled.
func (s *Session) ShowScheme(sc *types.Scheme) string {
	if s.Defaulting {
		return types.ShowSchemeDefaulted(sc)
	}
	return types.ShowScheme(sc)
}

// ShowValue renders v the same way the `show` primitive does, so autoprint
// agrees with an explicit `show` call.
func ShowValue(v eval.Value) (string, error) { return eval.Show(v) }

// LoadModule type-checks then evaluates every declaration of m, committing
// the result to the session only if both phases succeed in full: a module
// that fails to infer or evaluate leaves the session's type and value
// environments, names and schemes as they were (§7's atomicity guarantee, realized here instead of inside infer/eval
// since only the driver knows about "committing to a session").
func (s *Session) LoadModule(m *ast.Module) error {
	im, err := infer.InferModule(s.TypeEnv, s.ClassEnv, m)
	if err != nil {
		return err
	}
	em, err := eval.EvalModule(s.ValueEnv, m)
	if err != nil {
		return err
	}
	s.TypeEnv = im.Env
	s.ValueEnv = em.Env
	for _, name := range im.Names {
		s.Schemes[name] = im.Schemes[name]
	}
	s.Names = append(s.Names, em.Names...)
	return nil
}

// LoadFile reads path and loads it as a module, remembering path for
// :reload.
func (s *Session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := ParseModule(string(data))
	if err != nil {
		return err
	}
	if err := s.LoadModule(m); err != nil {
		return err
	}
	s.LastLoad = path
	return nil
}

// Reload re-runs LoadFile on the last path given to LoadFile.
func (s *Session) Reload() error {
	if s.LastLoad == "" {
		return errNoPriorLoad
	}
	return s.LoadFile(s.LastLoad)
}

// Remove drops name from both environments. It is not an error to remove a
// name that was never bound.
func (s *Session) Remove(name string) {
	s.TypeEnv = s.TypeEnv.Remove(name)
	s.ValueEnv = s.ValueEnv.Remove(name)
	delete(s.Schemes, name)
	for i, n := range s.Names {
		if n == name {
			s.Names = append(s.Names[:i], s.Names[i+1:]...)
			break
		}
	}
}
