package scheme

import (
	"errors"
	"testing"
	"time"
)

func TestBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"(+)", "0"},
		{"(*)", "1"},
		{"(- 10 1 2)", "7"},
		{"(* 2 3 4)", "24"},
		{"(/ 7 2)", "3"},
		{"(/ -7 2)", "-3"},
		{"(/ 100 5 2)", "10"},
		{"(max 1 5 3)", "5"},
		{"(min 4 2 8)", "2"},
		{"(abs -5)", "5"},
		{"(abs 5)", "5"},
		{"(- 0 9223372036854775807 1)", "-9223372036854775808"},
		{"(= 1 1 1)", "#t"},
		{"(< 1 2 2)", "#f"},
		{"(<= 1 2 2)", "#t"},
		{"(> 3 2 1)", "#t"},
		{"(>= 3 3 4)", "#f"},
		{"(>)", "#t"},
		{"(number? 1)", "#t"},
		{"(number? 'a)", "#f"},
		{"(boolean? #t)", "#t"},
		{"(boolean? #f)", "#t"},
		{"(boolean? 1)", "#f"},
		{"(not #f)", "#t"},
		{"(not 1)", "#f"},
		{"(and)", "#t"},
		{"(or)", "#f"},
		{"(and 1 2)", "2"},
		{"(and 1 #f (undefined))", "#f"},
		{"(or #f 3 (undefined))", "3"},
		{"(or #f #f)", "#f"},
		{"(pair? (cons 1 2))", "#t"},
		{"(pair? (list 1 2))", "#t"},
		{"(pair? (list 1))", "#f"},
		{"(pair? (list 1 2 3))", "#f"},
		{"(pair? 5)", "#f"},
		{"(pair? '())", "#f"},
		{"(null? '())", "#t"},
		{"(null? (list 1))", "#f"},
		{"(null? 5)", "#f"},
		{"(list? '())", "#t"},
		{"(list? (list 1 2 3))", "#t"},
		{"(list? (cons 1 2))", "#f"},
		{"(list? 5)", "#f"},
		{"(cons 1 2)", "(1 . 2)"},
		{"(cons 1 '())", "(1)"},
		{"(cons '() '())", "(())"},
		{"(car (list 1 2))", "1"},
		{"(cdr (list 1 2))", "(2)"},
		{"(cdr (list 1))", "()"},
		{"(list)", "()"},
		{"(list 1 (+ 1 1) 'c)", "(1 2 c)"},
		{"(list-ref (list 1 2 3) 1)", "2"},
		{"(list-tail (list 1 2) 2)", "()"},
		{"(list-tail (list 1 2) 0)", "(1 2)"},
		{"(symbol? 'a)", "#t"},
		{"(symbol? 1)", "#f"},
		{"(if #f 1)", "()"},
		{"'(1 . 2)", "(1 . 2)"},
		{"'(1 (2 3) . 4)", "(1 (2 3) . 4)"},
		{"(quote a)", "a"},
		{"car", "#<primitive car>"},
		{"(lambda (x y) x)", "#<lambda (x y)>"},
		{"(define p (list 1 2)) (set-cdr! p 5) p", "(1 . 5)"},
		{"(define x 1) (set! x (+ x 1)) x", "2"},
	}
	for _, c := range cases {
		ip := newInterp(t)
		got, err := ip.Run(c.src)
		if err != nil {
			t.Errorf("Run(%q): unexpected error: %v", c.src, err)
			continue
		}
		if got != c.want {
			t.Errorf("Run(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestListTailCopiesCells(t *testing.T) {
	ip := newInterp(t)
	mustRun(t, ip, "(define l (list 1 2 3)) (define (f) (set-car! (list-tail l 1) 9))")
	mustRun(t, ip, "(f)")
	if got := mustRun(t, ip, "l"); got != "(1 2 3)" {
		t.Fatalf("l = %q, want (1 2 3)", got)
	}
}

func TestSpecialFormsEvaluateLazily(t *testing.T) {
	ip := newInterp(t)
	mustRun(t, ip, "(define n 0)")
	mustRun(t, ip, "(if #t 1 (set! n 1))")
	mustRun(t, ip, "(and #f (set! n 2))")
	mustRun(t, ip, "(or 1 (set! n 3))")
	if got := mustRun(t, ip, "n"); got != "0" {
		t.Fatalf("n = %q, an untaken operand was evaluated", got)
	}
}

func TestListIndexRejectsCircularList(t *testing.T) {
	ip := newInterp(t)
	mustRun(t, ip, "(define p (list 1 2)) (set-cdr! (cdr p) p)")
	if got := mustRun(t, ip, "(list? p)"); got != "#f" {
		t.Fatalf("(list? p) = %s, want #f", got)
	}

	for _, src := range []string{"(list-ref p 0)", "(list-tail p 1)"} {
		errc := make(chan error, 1)
		go func() {
			_, err := ip.Run(src)
			errc <- err
		}()
		select {
		case err := <-errc:
			if !errors.Is(err, ErrType) {
				t.Fatalf("Run(%q): error %v, want %v", src, err, ErrType)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("Run(%q) on a circular list did not return", src)
		}
	}
}
