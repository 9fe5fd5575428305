package scheme

// Eval evaluates exp in the current environment.
func (ip *Interpreter) Eval(exp Value) (Value, error) {
	h := ip.Heap
	switch x := h.object(exp).(type) {
	case nil:
		return Nil, nil
	case *Integer, *Procedure, *Environment:
		return exp, nil
	case *Symbol:
		return h.Lookup(ip.Current(), x.Name)
	case *Pair:
		if ip.depth >= ip.maxDepth {
			return Nil, newError(DepthError, "evaluation nested deeper than %d", ip.maxDepth)
		}
		ip.depth++
		defer func() { ip.depth-- }()
		if x.First.IsNil() {
			return Nil, newError(NotCallable, "nothing to apply in %s", h.Stringify(exp))
		}
		fun, err := ip.Eval(x.First)
		if err != nil {
			return Nil, err
		}
		proc, ok := h.Procedure(fun)
		if !ok {
			return Nil, newError(NotCallable, "%s is not a procedure", h.Stringify(fun))
		}
		return ip.apply(proc, x.Rest)
	}
	panic("unknown object for " + h.Kind(exp).String())
}

// apply applies a procedure to an unevaluated argument list.
func (ip *Interpreter) apply(proc *Procedure, args Value) (Value, error) {
	switch {
	case proc.Form != nil:
		return proc.Form(ip, args)
	case proc.Fn != nil:
		exps := ip.Heap.Elements(args)
		if err := checkArity(proc.Name, len(exps), proc.Min, proc.Max); err != nil {
			return Nil, err
		}
		vals, err := ip.evalAll(exps)
		if err != nil {
			return Nil, err
		}
		if proc.Want != KindNil {
			for _, v := range vals {
				if k := ip.Heap.Kind(v); k != proc.Want {
					return Nil, newError(TypeError, "%s: %s expected, got %s",
						proc.Name, proc.Want, k)
				}
			}
		}
		return proc.Fn(ip, vals)
	default:
		return ip.call(proc, args)
	}
}

// call applies a closure: arguments are evaluated in the caller's
// environment, then the body runs in a fresh child of the captured one.
func (ip *Interpreter) call(proc *Procedure, args Value) (Value, error) {
	h := ip.Heap
	exps := h.Elements(args)
	if len(exps) != len(proc.Params) {
		return Nil, newError(ArityError, "%s: %d args expected, got %d",
			ip.procName(proc), len(proc.Params), len(exps))
	}
	vals, err := ip.evalAll(exps)
	if err != nil {
		return Nil, err
	}
	env := h.NewEnvironment(proc.Env)
	for i, name := range proc.Params {
		h.Define(env, name, vals[i])
	}
	defer ip.enter(env)()
	return ip.evalBody(proc.Body)
}

func (ip *Interpreter) procName(proc *Procedure) string {
	if proc.Name == "" {
		return "lambda"
	}
	return proc.Name
}

// evalBody evaluates each expression of body in turn and returns the
// value of the last one.
func (ip *Interpreter) evalBody(body Value) (Value, error) {
	result := Nil
	for _, exp := range ip.Heap.Elements(body) {
		var err error
		if result, err = ip.Eval(exp); err != nil {
			return Nil, err
		}
	}
	return result, nil
}

func (ip *Interpreter) evalAll(exps []Value) ([]Value, error) {
	vals := make([]Value, len(exps))
	for i, exp := range exps {
		v, err := ip.Eval(exp)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func checkArity(name string, n, lo, hi int) error {
	if n < lo || (hi >= 0 && n > hi) {
		switch {
		case hi < 0:
			return newError(ArityError, "%s: at least %d args expected, got %d", name, lo, n)
		case lo == hi:
			return newError(ArityError, "%s: %d args expected, got %d", name, lo, n)
		default:
			return newError(ArityError, "%s: %d to %d args expected, got %d", name, lo, hi, n)
		}
	}
	return nil
}

//----------------------------------------------------------------------

// Elements returns the elements of the list v. If the chain ends in an
// atom instead of the empty list, that atom is taken as a last element.
func (h *Heap) Elements(v Value) []Value {
	var result []Value
	for !v.IsNil() {
		j, ok := h.Pair(v)
		if !ok {
			result = append(result, v)
			break
		}
		result = append(result, j.First)
		v = j.Rest
	}
	return result
}

// Truthy reports whether v counts as true: everything but the symbol #f.
func (h *Heap) Truthy(v Value) bool {
	s, ok := h.Symbol(v)
	return !ok || s.Name != FalseName
}

// DeepCopy returns a fresh copy of the pairs, integers and symbols
// reachable from v, keeping the copy's sharing and cycles the same as
// the original's. Procedures and environments are shared.
func (h *Heap) DeepCopy(v Value) Value {
	return h.deepCopy(v, make(map[Value]Value))
}

func (h *Heap) deepCopy(v Value, seen map[Value]Value) Value {
	if c, ok := seen[v]; ok {
		return c
	}
	var c Value
	switch x := h.object(v).(type) {
	case nil:
		return Nil
	case *Integer:
		c = h.NewInteger(x.Val)
	case *Symbol:
		c = h.NewSymbol(x.Name)
	case *Pair:
		c = h.NewPair(Nil, Nil)
		seen[v] = c
		first := h.deepCopy(x.First, seen)
		rest := h.deepCopy(x.Rest, seen)
		cell, _ := h.Pair(c)
		cell.First, cell.Rest = first, rest
	case *Procedure, *Environment:
		c = v
	default:
		panic("unknown object for " + h.Kind(v).String())
	}
	seen[v] = c
	return c
}
