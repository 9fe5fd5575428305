package scheme

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Interpreter bundles a heap, its global environment and the stack of
// environments active during evaluation. It is not safe for concurrent
// use; independent interpreters share nothing.
type Interpreter struct {
	Heap   *Heap
	Global Value

	scopes   scopeStack
	depth    int
	maxDepth int
	cfg      Config
	log      *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithConfig sets the configuration; the default is DefaultConfig().
func WithConfig(cfg Config) Option {
	return func(ip *Interpreter) { ip.cfg = cfg }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(ip *Interpreter) { ip.log = l }
}

// New returns an interpreter whose global environment holds the
// builtins, after running the configured prelude.
func New(opts ...Option) (*Interpreter, error) {
	ip := &Interpreter{
		Heap: NewHeap(),
		cfg:  DefaultConfig(),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ip)
	}
	ip.maxDepth = ip.cfg.MaxDepth
	switch {
	case ip.maxDepth <= 0:
		ip.maxDepth = DefaultMaxDepth
	case ip.maxDepth > MaxDepthLimit:
		return nil, fmt.Errorf("max depth %d exceeds %d", ip.maxDepth, MaxDepthLimit)
	}
	ip.scopes.log = ip.log
	ip.Global = NewGlobalEnv(ip.Heap)
	ip.Heap.AddRoot(ip.Global)
	ip.scopes.push(ip.Global)

	for _, src := range ip.cfg.Prelude {
		if _, err := ip.Run(src); err != nil {
			return nil, fmt.Errorf("prelude: %w", err)
		}
	}
	for _, path := range ip.cfg.Load {
		if _, err := ip.Load(path); err != nil {
			return nil, err
		}
	}
	return ip, nil
}

// Run reads every expression in src and evaluates each one as a
// top-level evaluation. It returns the rendering of the last value.
func (ip *Interpreter) Run(src string) (string, error) {
	tokens, err := SplitIntoTokens(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", newError(SyntaxError, "empty program")
	}
	var result string
	for len(tokens) != 0 {
		exp, err := ip.Heap.ReadFromTokens(&tokens)
		if err != nil {
			ip.collect()
			return "", err
		}
		if result, err = ip.EvalTop(exp); err != nil {
			return "", err
		}
	}
	return result, nil
}

// EvalTop evaluates exp in the global environment and renders the
// value. A collection runs afterwards whether or not it succeeded, so
// exp itself is garbage by the time EvalTop returns unless something
// reachable from the global environment refers to it.
func (ip *Interpreter) EvalTop(exp Value) (string, error) {
	defer ip.collect()
	if exp.IsNil() {
		return "", newError(SyntaxError, "empty program")
	}
	ip.depth = 0
	v, err := ip.Eval(exp)
	if err != nil {
		ip.log.Debug("evaluation failed", slog.String("error", err.Error()))
		return "", err
	}
	return ip.Heap.Stringify(v), nil
}

// Load runs a source file.
func (ip *Interpreter) Load(fileName string) (string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return "", err
	}
	result, err := ip.Run(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", fileName, err)
	}
	return result, nil
}

func (ip *Interpreter) collect() {
	st := ip.Heap.Collect()
	ip.log.Debug("gc",
		slog.Int("cycle", st.Cycles),
		slog.Int("live", st.Live),
		slog.Int("freed", st.Freed))
}

// Stats returns the heap statistics.
func (ip *Interpreter) Stats() GCStats {
	return ip.Heap.Stats()
}
