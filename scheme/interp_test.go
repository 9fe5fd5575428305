package scheme

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIndependentInterpreters(t *testing.T) {
	a := newInterp(t)
	b := newInterp(t)
	mustRun(t, a, "(define x 1)")
	mustFail(t, b, "x", ErrUnbound)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.scm")
	src := "(define (sum l) (if (null? l) 0 (+ (car l) (sum (cdr l)))))\n(sum '(1 2 3 4))\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	ip := newInterp(t)
	got, err := ip.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "10" {
		t.Fatalf("Load = %q, want 10", got)
	}
	if _, err := ip.Load(filepath.Join(t.TempDir(), "none.scm")); err == nil {
		t.Fatalf("Load of a missing file succeeded")
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ip := newInterp(t, WithLogger(logger))
	mustRun(t, ip, "((lambda (x) x) 1)")
	out := buf.String()
	for _, want := range []string{"push scope", "pop scope", "stack-size=2", "msg=gc", "freed="} {
		if !strings.Contains(out, want) {
			t.Errorf("log does not contain %q:\n%s", want, out)
		}
	}
}

func TestStats(t *testing.T) {
	ip := newInterp(t)
	mustRun(t, ip, "(list 1 2 3)")
	st := ip.Stats()
	if st.Cycles != 1 || st.Freed == 0 || st.Live != ip.Heap.Len() {
		t.Fatalf("Stats() = %+v", st)
	}
}
