package ast

import "github.com/sin4auto/typelang-hm/token"

// Pattern is a case/let destructuring pattern.
type Pattern interface {
	Span() token.Span
	patNode()
}

// PWildcard matches anything and binds nothing.
type PWildcard struct{ Sp token.Span }

// PVar matches anything and binds Name.
type PVar struct {
	Sp   token.Span
	Name string
}

// PLit matches a literal exactly. Exactly one of the value fields is
// meaningful, selected by Kind.
type PLit struct {
	Sp        token.Span
	Kind      token.Kind // IntLit, FloatLit, CharLit, StringLit, KwTrue/KwFalse
	IntVal    int64
	FloatVal  float64
	CharVal   rune
	StringVal string
	BoolVal   bool
}

// PCon matches a data constructor applied to sub-patterns.
type PCon struct {
	Sp   token.Span
	Name string
	Args []Pattern
}

// PList matches a fixed-length list `[p1, p2, ...]`.
type PList struct {
	Sp    token.Span
	Items []Pattern
}

// PTuple matches a tuple `(p1, ..., pn)`.
type PTuple struct {
	Sp    token.Span
	Items []Pattern
}

// PAs is an as-pattern `name@pattern`.
type PAs struct {
	Sp      token.Span
	Name    string
	Pattern Pattern
}

func (p *PWildcard) Span() token.Span { return p.Sp }
func (p *PVar) Span() token.Span      { return p.Sp }
func (p *PLit) Span() token.Span      { return p.Sp }
func (p *PCon) Span() token.Span      { return p.Sp }
func (p *PList) Span() token.Span     { return p.Sp }
func (p *PTuple) Span() token.Span    { return p.Sp }
func (p *PAs) Span() token.Span       { return p.Sp }

func (*PWildcard) patNode() {}
func (*PVar) patNode()      {}
func (*PLit) patNode()      {}
func (*PCon) patNode()      {}
func (*PList) patNode()     {}
func (*PTuple) patNode()    {}
func (*PAs) patNode()       {}
