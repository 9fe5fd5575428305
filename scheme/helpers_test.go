package scheme

import (
	"errors"
	"testing"
)

func newInterp(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	ip, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ip
}

func mustRun(t *testing.T, ip *Interpreter, src string) string {
	t.Helper()
	got, err := ip.Run(src)
	if err != nil {
		t.Fatalf("Run(%q): unexpected error: %v", src, err)
	}
	return got
}

func mustFail(t *testing.T, ip *Interpreter, src string, want error) {
	t.Helper()
	got, err := ip.Run(src)
	if err == nil {
		t.Fatalf("Run(%q) = %q, want error %v", src, got, want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("Run(%q): error %v, want %v", src, err, want)
	}
}

func global(t *testing.T, ip *Interpreter, name string) Value {
	t.Helper()
	v, err := ip.Heap.Lookup(ip.Global, name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return v
}
