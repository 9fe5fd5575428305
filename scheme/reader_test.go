package scheme

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitIntoTokens(t *testing.T) {
	src := "(a 1 -2 + - . \"s t\" 'x #t) ; comment\n(list-tail)"
	tokens, err := SplitIntoTokens(strings.NewReader(src))
	if err != nil {
		t.Fatalf("SplitIntoTokens: %v", err)
	}
	want := []Token{
		{Kind: TokOpen},
		{Kind: TokSymbol, Text: "a"},
		{Kind: TokInt, Int: 1},
		{Kind: TokInt, Int: -2},
		{Kind: TokSymbol, Text: "+"},
		{Kind: TokSymbol, Text: "-"},
		{Kind: TokDot},
		{Kind: TokString, Text: "s t"},
		{Kind: TokQuote},
		{Kind: TokSymbol, Text: "x"},
		{Kind: TokSymbol, Text: "#t"},
		{Kind: TokClose},
		{Kind: TokOpen},
		{Kind: TokSymbol, Text: "list-tail"},
		{Kind: TokClose},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestReadRendersBack(t *testing.T) {
	for _, src := range []string{
		"42",
		"-7",
		"sym",
		"(1 2 3)",
		"(1 (2 3) . 4)",
		"(a . b)",
		"(() ())",
		"(quote x)",
	} {
		h := NewHeap()
		tokens, err := SplitIntoTokens(strings.NewReader(src))
		if err != nil {
			t.Fatalf("SplitIntoTokens(%q): %v", src, err)
		}
		v, err := h.ReadFromTokens(&tokens)
		if err != nil {
			t.Fatalf("ReadFromTokens(%q): %v", src, err)
		}
		if got := h.Stringify(v); got != src {
			t.Errorf("read %q rendered as %q", src, got)
		}
		if len(tokens) != 0 {
			t.Errorf("read %q left %d tokens", src, len(tokens))
		}
	}
}

func TestReadQuoteAbbreviation(t *testing.T) {
	h := NewHeap()
	tokens, _ := SplitIntoTokens(strings.NewReader(`'(a b) "str"`))
	v, err := h.ReadFromTokens(&tokens)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Stringify(v); got != "(quote (a b))" {
		t.Fatalf("got %q", got)
	}
	v, err = h.ReadFromTokens(&tokens)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Stringify(v); got != "(quote str)" {
		t.Fatalf("got %q", got)
	}
}

func TestReadErrors(t *testing.T) {
	for _, src := range []string{
		")",
		".",
		"( . 1)",
		"(1 . )",
		"(1 . 2 3)",
		"(1 2",
		"'",
		"99999999999999999999",
		`"unterminated`,
	} {
		h := NewHeap()
		tokens, err := SplitIntoTokens(strings.NewReader(src))
		if err == nil {
			_, err = h.ReadFromTokens(&tokens)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: error %v, want a syntax error", src, err)
		}
	}
}

func TestComplete(t *testing.T) {
	cases := map[string]bool{
		"":               true,
		"(a":             false,
		"(a (b)":         false,
		"(a)":            true,
		"(a) (b":         false,
		"'":              false,
		"'a":             true,
		")":              true,
		"(a ; comment )": false,
		"(a ; comment\n)": true,
	}
	for src, want := range cases {
		if got := Complete(src); got != want {
			t.Errorf("Complete(%q) = %v, want %v", src, got, want)
		}
	}
}
