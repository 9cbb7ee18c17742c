package eval

import (
	"math"
	"testing"

	"github.com/sin4auto/typelang-hm/parser"
)

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	v, err := Eval(InitialEnv(), e)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func evalSrcErr(t *testing.T, src string) error {
	t.Helper()
	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	_, err = Eval(InitialEnv(), e)
	return err
}

func asInt(t *testing.T, v Value) int64 {
	t.Helper()
	i, ok := v.(*IntV)
	if !ok {
		t.Fatalf("expected IntV, got %T (%v)", v, v)
	}
	return i.Value
}

func asDouble(t *testing.T, v Value) float64 {
	t.Helper()
	d, ok := v.(*DoubleV)
	if !ok {
		t.Fatalf("expected DoubleV, got %T (%v)", v, v)
	}
	return d.Value
}

func asBool(t *testing.T, v Value) bool {
	t.Helper()
	b, ok := v.(*BoolV)
	if !ok {
		t.Fatalf("expected BoolV, got %T (%v)", v, v)
	}
	return b.Value
}

func TestArithmeticWidensToDoubleWhenEitherOperandIs(t *testing.T) {
	if got := asInt(t, evalSrc(t, "2 + 3")); got != 5 {
		t.Errorf("got %d want 5", got)
	}
	if got := asDouble(t, evalSrc(t, "2 + 3.0")); got != 5.0 {
		t.Errorf("got %v want 5.0", got)
	}
	if got := asDouble(t, evalSrc(t, "2.5 * 2")); got != 5.0 {
		t.Errorf("got %v want 5.0", got)
	}
}

func TestDivideIsAlwaysDoubleIEEE(t *testing.T) {
	if got := asDouble(t, evalSrc(t, "1 / 2")); got != 0.5 {
		t.Errorf("got %v want 0.5", got)
	}
}

func TestDivModQuotRemSigns(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"div 7 2", 3}, {"mod 7 2", 1},
		{"div (-7) 2", -4}, {"mod (-7) 2", 1},
		{"quot (-7) 2", -3}, {"rem (-7) 2", -1},
		{"quot 7 (-2)", -3}, {"rem 7 (-2)", 1},
	}
	for _, c := range cases {
		if got := asInt(t, evalSrc(t, c.src)); got != c.want {
			t.Errorf("%s: got %d want %d", c.src, got, c.want)
		}
	}
}

func TestDivByZeroRaisesDivideByZero(t *testing.T) {
	err := evalSrcErr(t, "div 1 0")
	if err == nil {
		t.Fatal("expected an error")
	}
	ee, ok := err.(*Error)
	if !ok || ee.Code != "EVAL061" {
		t.Fatalf("expected EVAL061 DivideByZero, got %v", err)
	}
}

func TestFractionalDivideByZeroYieldsInfNotError(t *testing.T) {
	got := asDouble(t, evalSrc(t, "1 / 0"))
	if !math.IsInf(got, 1) {
		t.Fatalf("got %v, want +Inf", got)
	}
}

func TestCaretIntResultAndNegativeExponentFallback(t *testing.T) {
	if got := asInt(t, evalSrc(t, "2 ^ 10")); got != 1024 {
		t.Errorf("got %d want 1024", got)
	}
	// a negative exponent falls back to Double.
	if got := asDouble(t, evalSrc(t, "2 ^ (-1)")); got != 0.5 {
		t.Errorf("got %v want 0.5", got)
	}
}

func TestDoubleCaretCaretIsAlwaysFloat(t *testing.T) {
	if got := asDouble(t, evalSrc(t, "2.0 ** 0.5")); got <= 1.41 || got >= 1.42 {
		t.Errorf("got %v want ~sqrt(2)", got)
	}
}

func TestComparisonsAreStructural(t *testing.T) {
	if !asBool(t, evalSrc(t, "1 < 2")) {
		t.Error("1 < 2 should be True")
	}
	if !asBool(t, evalSrc(t, "[1,2] < [1,3]")) {
		t.Error("[1,2] < [1,3] should be True")
	}
	if !asBool(t, evalSrc(t, "(1, 2) == (1, 2)")) {
		t.Error("(1,2) == (1,2) should be True")
	}
}

func TestBooleanOperatorsAreStrictBothOperands(t *testing.T) {
	if asBool(t, evalSrc(t, "True && False")) {
		t.Error("True && False should be False")
	}
	if !asBool(t, evalSrc(t, "False || True")) {
		t.Error("False || True should be True")
	}
}

func TestLambdaApplicationAndLet(t *testing.T) {
	if got := asInt(t, evalSrc(t, "let double x = x + x in double 21")); got != 42 {
		t.Errorf("got %d want 42", got)
	}
	if got := asInt(t, evalSrc(t, "(\\x y -> x * y) 6 7")); got != 42 {
		t.Errorf("got %d want 42", got)
	}
}

func TestIfThenElse(t *testing.T) {
	if got := asInt(t, evalSrc(t, "if 1 < 2 then 10 else 20")); got != 10 {
		t.Errorf("got %d want 10", got)
	}
}

func TestRecursiveLetFactorial(t *testing.T) {
	src := "let fact n = if n == 0 then 1 else n * fact (n - 1) in fact 5"
	if got := asInt(t, evalSrc(t, src)); got != 120 {
		t.Errorf("got %d want 120", got)
	}
}

func TestMutualRecursionInLetGroup(t *testing.T) {
	src := "let isEven n = if n == 0 then True else isOdd (n - 1); isOdd n = if n == 0 then False else isEven (n - 1) in isEven 10"
	if !asBool(t, evalSrc(t, src)) {
		t.Error("isEven 10 should be True")
	}
}

func TestConsOperatorBuildsList(t *testing.T) {
	v := evalSrc(t, "1 : [2, 3]")
	l, ok := v.(*ListV)
	if !ok || len(l.Items) != 3 {
		t.Fatalf("expected a 3-element list, got %v", v)
	}
	if asInt(t, l.Items[0]) != 1 {
		t.Errorf("head: got %v want 1", l.Items[0])
	}
}

func TestShowQuotesAndEscapesCharsAndStrings(t *testing.T) {
	s, ok := evalSrc(t, `show 'a'`).(*StringV)
	if !ok || s.Value != "'a'" {
		t.Fatalf("show 'a' = %v, want 'a'", s)
	}
	s, ok = evalSrc(t, `show "hi\n"`).(*StringV)
	if !ok || s.Value != `"hi\n"` {
		t.Fatalf(`show "hi\n" = %v, want "hi\n"`, s)
	}
}

func TestShowInt(t *testing.T) {
	s, ok := evalSrc(t, "show 42").(*StringV)
	if !ok || s.Value != "42" {
		t.Fatalf("show 42 = %v, want 42", s)
	}
}

func TestCaseMatchesConstructorPatternsInOrder(t *testing.T) {
	src := `data Maybe a = Nothing | Just a;
		let describe m = case m of { Nothing -> 0 ; Just x -> x };
		let result = describe (Just 7)`
	mod, err := parser.ParseModule(src)
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}
	m, err := EvalModule(InitialEnv(), mod)
	if err != nil {
		t.Fatalf("eval module: %v", err)
	}
	v, _, _ := m.Env.Lookup("result")
	if got := asInt(t, v); got != 7 {
		t.Errorf("got %d want 7", got)
	}
}

func TestCaseNonExhaustiveRaises(t *testing.T) {
	e, err := parser.ParseExpr(`case True of { False -> 1 }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Eval(InitialEnv(), e)
	ee, ok := err.(*Error)
	if !ok || ee.Code != "EVAL071" {
		t.Fatalf("expected EVAL071 NonExhaustiveCase, got %v", err)
	}
}

func TestHoleRaisesUserHole(t *testing.T) {
	e, err := parser.ParseExpr(`?todo`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Eval(InitialEnv(), e)
	ee, ok := err.(*Error)
	if !ok || ee.Code != "EVAL080" {
		t.Fatalf("expected EVAL080 UserHole, got %v", err)
	}
}

func TestAsPatternBindsWholeValue(t *testing.T) {
	src := `data Pair a b = Pair a b;
		let fst3 p = case p of { whole@(Pair a b) -> a };
		let result = fst3 (Pair 1 2)`
	mod, err := parser.ParseModule(src)
	if err != nil {
		t.Fatalf("parse module: %v", err)
	}
	m, err := EvalModule(InitialEnv(), mod)
	if err != nil {
		t.Fatalf("eval module: %v", err)
	}
	v, _, _ := m.Env.Lookup("result")
	if got := asInt(t, v); got != 1 {
		t.Errorf("got %d want 1", got)
	}
}

func TestBuiltinMapFoldlFoldr(t *testing.T) {
	mapped := evalSrc(t, "map (\\x -> x + 1) [1, 2, 3]")
	l, ok := mapped.(*ListV)
	if !ok || len(l.Items) != 3 || asInt(t, l.Items[0]) != 2 || asInt(t, l.Items[2]) != 4 {
		t.Fatalf("map result = %v, want [2,3,4]", mapped)
	}

	summed := evalSrc(t, "foldl (\\a x -> a + x) 0 [1, 2, 3, 4]")
	if got := asInt(t, summed); got != 10 {
		t.Errorf("foldl sum = %d want 10", got)
	}

	rebuilt := evalSrc(t, "foldr (\\x a -> x : a) [] [1, 2, 3]")
	rl, ok := rebuilt.(*ListV)
	if !ok || len(rl.Items) != 3 || asInt(t, rl.Items[0]) != 1 || asInt(t, rl.Items[2]) != 3 {
		t.Fatalf("foldr rebuild = %v, want [1,2,3]", rebuilt)
	}
}
