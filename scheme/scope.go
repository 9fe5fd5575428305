package scheme

import "log/slog"

// scopeStack tracks the current environment during evaluation.
type scopeStack struct {
	envs []Value
	log  *slog.Logger
}

func (s *scopeStack) push(env Value) {
	s.envs = append(s.envs, env)
	s.log.Debug("push scope", slog.Int("stack-size", len(s.envs)))
}

func (s *scopeStack) pop() {
	n := len(s.envs)
	if n == 0 {
		panic("scope stack is empty")
	}
	s.envs = s.envs[:n-1]
	s.log.Debug("pop scope", slog.Int("stack-size", n-1))
}

// Current returns the innermost environment.
func (s *scopeStack) Current() Value {
	n := len(s.envs)
	if n == 0 {
		panic("scope stack is empty")
	}
	return s.envs[n-1]
}

// enter pushes env and returns the function that pops it, meant to be
// deferred: defer ip.enter(env)()
func (ip *Interpreter) enter(env Value) func() {
	ip.scopes.push(env)
	return ip.scopes.pop
}

// Current returns the environment expressions are evaluated in.
func (ip *Interpreter) Current() Value {
	return ip.scopes.Current()
}
