package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sin4auto/typelang-hm/token"
)

// String renders e in a debuggable, fully-parenthesized surface-like
// syntax. It is not guaranteed to round-trip through the parser exactly
// (operators are already desugared to App by the time most expressions
// reach here); it exists for diagnostics and REPL echo.
func String(e Expr) string {
	switch e := e.(type) {
	case *Var:
		return e.Name
	case *IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *DoubleLit:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *CharLit:
		return "'" + string(e.Value) + "'"
	case *StringLit:
		return strconv.Quote(e.Value)
	case *BoolLit:
		if e.Value {
			return "True"
		}
		return "False"
	case *ListLit:
		return "[" + joinExprs(e.Items) + "]"
	case *TupleLit:
		return "(" + joinExprs(e.Items) + ")"
	case *Lambda:
		return "\\" + strings.Join(e.Params, " ") + " -> " + String(e.Body)
	case *App:
		return "(" + String(e.Func) + " " + String(e.Arg) + ")"
	case *Let:
		var parts []string
		for _, b := range e.Bindings {
			if len(b.Params) == 0 {
				parts = append(parts, fmt.Sprintf("%s = %s", b.Name, String(b.Body)))
			} else {
				parts = append(parts, fmt.Sprintf("%s %s = %s", b.Name, strings.Join(b.Params, " "), String(b.Body)))
			}
		}
		return "let " + strings.Join(parts, "; ") + " in " + String(e.Body)
	case *If:
		return fmt.Sprintf("if %s then %s else %s", String(e.Cond), String(e.Then), String(e.Else))
	case *Case:
		var parts []string
		for _, alt := range e.Alts {
			parts = append(parts, fmt.Sprintf("%s -> %s", patternString(alt.Pattern), String(alt.Body)))
		}
		return fmt.Sprintf("case %s of { %s }", String(e.Scrutinee), strings.Join(parts, " ; "))
	case *Annot:
		return "(" + String(e.Expr) + " :: " + ShowSigma(e.Type) + ")"
	case *Hole:
		return "?" + e.Name
	default:
		return "<expr>"
	}
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = String(e)
	}
	return strings.Join(parts, ", ")
}

func patternString(p Pattern) string {
	switch p := p.(type) {
	case *PWildcard:
		return "_"
	case *PVar:
		return p.Name
	case *PLit:
		switch p.Kind {
		case token.IntLit:
			return strconv.FormatInt(p.IntVal, 10)
		case token.FloatLit:
			return strconv.FormatFloat(p.FloatVal, 'g', -1, 64)
		case token.CharLit:
			return "'" + string(p.CharVal) + "'"
		case token.StringLit:
			return strconv.Quote(p.StringVal)
		case token.KwTrue, token.KwFalse:
			if p.BoolVal {
				return "True"
			}
			return "False"
		default:
			return fmt.Sprintf("%v", p)
		}
	case *PCon:
		parts := make([]string, len(p.Args))
		for i, a := range p.Args {
			parts[i] = patternString(a)
		}
		if len(parts) == 0 {
			return p.Name
		}
		return p.Name + " " + strings.Join(parts, " ")
	case *PList:
		parts := make([]string, len(p.Items))
		for i, it := range p.Items {
			parts[i] = patternString(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *PTuple:
		parts := make([]string, len(p.Items))
		for i, it := range p.Items {
			parts[i] = patternString(it)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *PAs:
		return p.Name + "@" + patternString(p.Pattern)
	default:
		return "<pattern>"
	}
}

// ShowSigma renders a surface qualified type `C1 a, ... => type`.
func ShowSigma(s SigmaType) string {
	typeStr := TypeExprString(s.Type)
	if len(s.Constraints) == 0 {
		return typeStr
	}
	parts := make([]string, len(s.Constraints))
	for i, c := range s.Constraints {
		parts[i] = c.Class + " " + c.TypeVar
	}
	return strings.Join(parts, ", ") + " => " + typeStr
}

// TypeExprString renders surface type syntax.
func TypeExprString(t TypeExpr) string {
	switch t := t.(type) {
	case *TEVar:
		return t.Name
	case *TECon:
		return t.Name
	case *TEApp:
		return TypeExprString(t.Func) + " " + TypeExprString(t.Arg)
	case *TEFun:
		return TypeExprString(t.Arg) + " -> " + TypeExprString(t.Ret)
	case *TEList:
		return "[" + TypeExprString(t.Elem) + "]"
	case *TETuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = TypeExprString(it)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}
