package scheme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
max_depth: 50
log_level: debug
prelude:
  - "(define (sq x) (* x x))"
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want 50", cfg.MaxDepth)
	}
	if cfg.Prompt != DefaultConfig().Prompt {
		t.Errorf("Prompt = %q, want the default", cfg.Prompt)
	}
	if len(cfg.Prelude) != 1 {
		t.Fatalf("Prelude = %v", cfg.Prelude)
	}
	level, err := cfg.Level()
	if err != nil || level.String() != "DEBUG" {
		t.Errorf("Level() = %v, %v", level, err)
	}

	ip := newInterp(t, WithConfig(cfg))
	if got := mustRun(t, ip, "(sq 4)"); got != "16" {
		t.Fatalf("(sq 4) = %q, want 16", got)
	}
}

func TestParseConfigRejects(t *testing.T) {
	for _, src := range []string{
		"max_depth: 0",
		"max_depth: 100000000",
		"log_level: loud",
		"max_depth: [1",
	} {
		if _, err := ParseConfig([]byte(src)); err == nil {
			t.Errorf("ParseConfig(%q) succeeded", src)
		}
	}
}

func TestLoadConfigAndFiles(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.scm")
	if err := os.WriteFile(lib, []byte("; helpers\n(define (twice x) (+ x x))\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	conf := filepath.Join(dir, "scm.yaml")
	if err := os.WriteFile(conf, []byte("load:\n  - "+lib+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(conf)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	ip := newInterp(t, WithConfig(cfg))
	if got := mustRun(t, ip, "(twice 21)"); got != "42" {
		t.Fatalf("(twice 21) = %q, want 42", got)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("LoadConfig of a missing file succeeded")
	}
}

func TestBadPrelude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prelude = []string{"(car 1)"}
	if _, err := New(WithConfig(cfg)); err == nil {
		t.Fatalf("New with a failing prelude succeeded")
	}
}

func TestMaxDepthLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = MaxDepthLimit + 1
	if _, err := New(WithConfig(cfg)); err == nil {
		t.Fatalf("New accepted max depth %d", cfg.MaxDepth)
	}

	if testing.Short() {
		t.Skip("deep recursion")
	}
	cfg.MaxDepth = MaxDepthLimit
	ip := newInterp(t, WithConfig(cfg))
	mustFail(t, ip, "(define (loop n) (loop n)) (loop 1)", ErrDepth)
}
