package parser

import (
	"testing"

	"github.com/sin4auto/typelang-hm/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q) failed: %v", src, err)
	}
	return e
}

func TestOperatorPrecedenceMulOverAdd(t *testing.T) {
	e := mustParse(t, "a + b * c ^ d")
	got := ast.String(e)
	want := "((+ a) ((* b) ((^ c) d)))"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestAddIsLeftAssociative(t *testing.T) {
	e := mustParse(t, "a - b - c")
	got := ast.String(e)
	want := "((- ((- a) b)) c)"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestApplicationIsLeftAssociative(t *testing.T) {
	e := mustParse(t, "f g h x")
	got := ast.String(e)
	want := "(((f g) h) x)"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestPowIsRightAssociative(t *testing.T) {
	e := mustParse(t, "a ^ b ^ c")
	got := ast.String(e)
	want := "((^ a) ((^ b) c))"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestComparisonIsNonAssociative(t *testing.T) {
	if _, err := ParseExpr("a == b == c"); err == nil {
		t.Errorf("expected parse error for chained comparison, got none")
	}
}

// TestBoolOperatorsBindLooserThanComparison guards against a regression
// where `&&`/`||` were spliced in tighter than `cmp`: under that
// placement, `a < b && c < d` failed to parse at all, since `<`'s right
// operand would swallow `b && c` and leave `< d` dangling.
func TestBoolOperatorsBindLooserThanComparison(t *testing.T) {
	e := mustParse(t, "a < b && c < d")
	got := ast.String(e)
	want := "((&& ((< a) b)) ((< c) d))"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestOrBindsLooserThanAnd(t *testing.T) {
	e := mustParse(t, "a || b && c")
	got := ast.String(e)
	want := "((|| a) ((&& b) c))"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestConsBindsTighterThanComparisonLooserThanAdd(t *testing.T) {
	e := mustParse(t, "1 + 2 : xs == ys")
	got := ast.String(e)
	want := "((== ((: ((+ 1) 2)) xs)) ys)"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestLambdaAndApp(t *testing.T) {
	e := mustParse(t, "(\\x y -> x + y) 1 2")
	lam, ok := e.(*ast.App)
	if !ok {
		t.Fatalf("expected outer App, got %T", e)
	}
	_ = lam
}

func TestLetInParses(t *testing.T) {
	e := mustParse(t, "let x = 1; y = x + 1 in y")
	let, ok := e.(*ast.Let)
	if !ok {
		t.Fatalf("expected Let, got %T", e)
	}
	if len(let.Bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(let.Bindings))
	}
}

func TestIfThenElse(t *testing.T) {
	e := mustParse(t, "if True then 1 else 2")
	if _, ok := e.(*ast.If); !ok {
		t.Fatalf("expected If, got %T", e)
	}
}

func TestCaseWithConstructorPatterns(t *testing.T) {
	e := mustParse(t, "case xs of { Nil -> 0; Cons y ys -> y }")
	c, ok := e.(*ast.Case)
	if !ok {
		t.Fatalf("expected Case, got %T", e)
	}
	if len(c.Alts) != 2 {
		t.Fatalf("expected 2 alts, got %d", len(c.Alts))
	}
	pc, ok := c.Alts[1].Pattern.(*ast.PCon)
	if !ok {
		t.Fatalf("expected PCon, got %T", c.Alts[1].Pattern)
	}
	if pc.Name != "Cons" || len(pc.Args) != 2 {
		t.Errorf("unexpected PCon shape: %+v", pc)
	}
}

func TestAsPattern(t *testing.T) {
	e := mustParse(t, "case xs of { all@(Cons y ys) -> all }")
	c := e.(*ast.Case)
	as, ok := c.Alts[0].Pattern.(*ast.PAs)
	if !ok {
		t.Fatalf("expected PAs, got %T", c.Alts[0].Pattern)
	}
	if as.Name != "all" {
		t.Errorf("got name %q", as.Name)
	}
}

func TestAnnotationParsesQualifiedType(t *testing.T) {
	e := mustParse(t, "x :: Num a => a")
	an, ok := e.(*ast.Annot)
	if !ok {
		t.Fatalf("expected Annot, got %T", e)
	}
	if len(an.Type.Constraints) != 1 || an.Type.Constraints[0].Class != "Num" {
		t.Errorf("unexpected constraints: %+v", an.Type.Constraints)
	}
}

func TestUnqualifiedAnnotationParses(t *testing.T) {
	e := mustParse(t, "(1, 2) :: (Int, Int)")
	an, ok := e.(*ast.Annot)
	if !ok {
		t.Fatalf("expected Annot, got %T", e)
	}
	if len(an.Type.Constraints) != 0 {
		t.Errorf("expected no constraints, got %+v", an.Type.Constraints)
	}
	if _, ok := an.Type.Type.(*ast.TETuple); !ok {
		t.Errorf("expected TETuple, got %T", an.Type.Type)
	}
}

func TestParseModuleDataAndLetDecls(t *testing.T) {
	src := `
data List a = Nil | Cons a (List a);
len :: List a -> Integer
let len xs = case xs of { Nil -> 0; Cons y ys -> 1 + len ys }
`
	mod, err := ParseModule(src)
	if err != nil {
		t.Fatalf("ParseModule failed: %v", err)
	}
	if len(mod.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(mod.Decls))
	}
	dd, ok := mod.Decls[0].(*ast.DataDecl)
	if !ok {
		t.Fatalf("expected DataDecl, got %T", mod.Decls[0])
	}
	if dd.TypeName != "List" || len(dd.Constructors) != 2 {
		t.Fatalf("unexpected DataDecl shape: %+v", dd)
	}
	ld, ok := mod.Decls[1].(*ast.LetDecl)
	if !ok {
		t.Fatalf("expected LetDecl, got %T", mod.Decls[1])
	}
	if ld.Binding.Name != "len" || ld.Binding.Sig == nil {
		t.Fatalf("expected signature attached to len binding, got %+v", ld.Binding)
	}
}

func TestMismatchedSignatureNameFails(t *testing.T) {
	src := `
foo :: Int
let bar x = x
`
	if _, err := ParseModule(src); err == nil {
		t.Errorf("expected error for mismatched signature/binding name")
	}
}

func TestUnaryMinusDesugarsToSubtractionFromZero(t *testing.T) {
	e := mustParse(t, "-x")
	got := ast.String(e)
	want := "((- 0) x)"
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestListAndTupleLiterals(t *testing.T) {
	e := mustParse(t, "[1, 2, 3]")
	if _, ok := e.(*ast.ListLit); !ok {
		t.Fatalf("expected ListLit, got %T", e)
	}
	e2 := mustParse(t, "(1, True, 'c')")
	if _, ok := e2.(*ast.TupleLit); !ok {
		t.Fatalf("expected TupleLit, got %T", e2)
	}
}

func TestParenthesizedOperatorAsValue(t *testing.T) {
	e := mustParse(t, "(+)")
	v, ok := e.(*ast.Var)
	if !ok || v.Name != "+" {
		t.Fatalf("expected Var(+), got %#v", e)
	}
}
