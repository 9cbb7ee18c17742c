package lexer

import (
	"strings"
	"testing"

	"github.com/sin4auto/typelang-hm/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexBasicTokens(t *testing.T) {
	toks, err := Lex("let x = 1 + 2 in x")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	want := []token.Kind{
		token.KwLet, token.Ident, token.Equals, token.IntLit, token.Op,
		token.IntLit, token.KwIn, token.Ident, token.EOF,
	}
	got := kinds(t, toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexNumberBases(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"0x1F", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"42", 42},
	}
	for _, c := range cases {
		toks, err := Lex(c.src)
		if err != nil {
			t.Fatalf("Lex(%q) failed: %v", c.src, err)
		}
		if toks[0].Kind != token.IntLit || toks[0].IntVal != c.want {
			t.Errorf("Lex(%q) = %+v, want IntLit %d", c.src, toks[0], c.want)
		}
	}
}

func TestLexFloat(t *testing.T) {
	toks, err := Lex("3.14 1e10 2.5e-3")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	want := []float64{3.14, 1e10, 2.5e-3}
	for i, w := range want {
		if toks[i].Kind != token.FloatLit || toks[i].FloatVal != w {
			t.Errorf("token %d = %+v, want FloatLit %v", i, toks[i], w)
		}
	}
}

func TestLexStringAndCharEscapes(t *testing.T) {
	toks, err := Lex(`"a\nb" '\t'`)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Kind != token.StringLit || toks[0].StringVal != "a\nb" {
		t.Errorf("string literal = %+v", toks[0])
	}
	if toks[1].Kind != token.CharLit || toks[1].CharVal != '\t' {
		t.Errorf("char literal = %+v", toks[1])
	}
}

func TestLexLineAndBlockComments(t *testing.T) {
	toks, err := Lex("1 -- trailing\n{- a {- nested -} b -} 2")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if len(toks) != 3 || toks[0].IntVal != 1 || toks[1].IntVal != 2 {
		t.Fatalf("unexpected token stream: %+v", toks)
	}
}

func TestLexUnterminatedBlockCommentFails(t *testing.T) {
	_, err := Lex("{- never closed")
	if err == nil {
		t.Fatal("expected LexError for unterminated block comment")
	}
}

func TestLexUnknownEscapeFails(t *testing.T) {
	_, err := Lex(`"\q"`)
	if err == nil {
		t.Fatal("expected LexError for unknown escape sequence")
	}
}

func TestLexRoundTrip(t *testing.T) {
	src := "let add x y = x + y in add 1 2"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		rebuilt += tok.Text + " "
	}
	// modulo whitespace: every significant character from src must appear in order
	if strings.Join(strings.Fields(rebuilt), " ") != strings.Join(strings.Fields(src), " ") {
		t.Fatalf("rebuilt %q from tokens, want %q modulo whitespace", rebuilt, src)
	}
}

func TestWildcardAndHoleTokens(t *testing.T) {
	toks, err := Lex("_ ?todo")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Kind != token.Underscore {
		t.Errorf("expected Underscore, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Question || toks[1].Text != "?todo" {
		t.Errorf("expected Question '?todo', got %+v", toks[1])
	}
}

func TestConstructorIdentifier(t *testing.T) {
	toks, err := Lex("Just Nothing")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Kind != token.ConIdent || toks[1].Kind != token.ConIdent {
		t.Errorf("expected ConIdent tokens, got %+v", toks[:2])
	}
}
