package scheme

func prim(name string, lo, hi int, want Kind, fn Primitive) *Procedure {
	return &Procedure{Name: name, Min: lo, Max: hi, Want: want, Fn: fn}
}

func form(name string, fn Form) *Procedure {
	return &Procedure{Name: name, Form: fn}
}

// builtins returns the global procedures in registration order.
func builtins() []*Procedure {
	return []*Procedure{
		form("quote", quote),
		prim("number?", 1, 1, KindNil, isKind(KindInteger)),
		compare("=", func(c int) bool { return c == 0 }),
		compare(">", func(c int) bool { return c > 0 }),
		compare("<", func(c int) bool { return c < 0 }),
		compare(">=", func(c int) bool { return c >= 0 }),
		compare("<=", func(c int) bool { return c <= 0 }),
		fold("+", 0, 0, add),
		fold("-", 2, 0, sub),
		fold("*", 0, 1, mul),
		prim("/", 2, -1, KindInteger, quotient),
		fold("max", 1, 0, maximum),
		fold("min", 1, 0, minimum),
		prim("abs", 1, 1, KindInteger, absolute),
		prim("boolean?", 1, 1, KindNil, isBoolean),
		prim("not", 1, 1, KindNil, not),
		form("and", and),
		form("or", or),
		prim("pair?", 1, 1, KindNil, isPair),
		prim("null?", 1, 1, KindNil, isNull),
		prim("list?", 1, 1, KindNil, isList),
		prim("cons", 2, 2, KindNil, cons),
		prim("car", 1, 1, KindPair, car),
		prim("cdr", 1, 1, KindPair, cdr),
		prim("list", 0, -1, KindNil, list),
		prim("list-ref", 2, 2, KindNil, listRef),
		prim("list-tail", 2, 2, KindNil, listTail),
		form("if", ifForm),
		prim("symbol?", 1, 1, KindNil, isKind(KindSymbol)),
		form("define", define),
		form("set!", set),
		prim("set-car!", 2, 2, KindNil, setCar),
		prim("set-cdr!", 2, 2, KindNil, setCdr),
		form("lambda", lambda),
	}
}

// NewGlobalEnv allocates the global environment with the boolean
// literals and every builtin procedure bound in it.
func NewGlobalEnv(h *Heap) Value {
	env := h.NewEnvironment(Nil)
	h.Define(env, TrueName, h.NewSymbol(TrueName))
	h.Define(env, FalseName, h.NewSymbol(FalseName))
	for _, p := range builtins() {
		h.Define(env, p.Name, h.newProcedure(p))
	}
	return env
}

//----------------------------------------------------------------------

// formArgs returns the unevaluated operands of a special form, failing
// with a syntax error unless there are lo to hi of them.
func (ip *Interpreter) formArgs(name string, args Value, lo, hi int) ([]Value, error) {
	exps := ip.Heap.Elements(args)
	if len(exps) < lo || (hi >= 0 && len(exps) > hi) {
		return nil, newError(SyntaxError, "bad %s form: %s", name,
			ip.Heap.Stringify(ip.Heap.NewPair(ip.Heap.NewSymbol(name), args)))
	}
	return exps, nil
}

// (quote e)
func quote(ip *Interpreter, args Value) (Value, error) {
	j, ok := ip.Heap.Pair(args)
	if !ok {
		return Nil, newError(SyntaxError, "quote needs an expression")
	}
	return j.First, nil
}

// (if test then [else])
func ifForm(ip *Interpreter, args Value) (Value, error) {
	exps, err := ip.formArgs("if", args, 2, 3)
	if err != nil {
		return Nil, err
	}
	test, err := ip.Eval(exps[0])
	if err != nil {
		return Nil, err
	}
	if ip.Heap.Truthy(test) {
		return ip.Eval(exps[1])
	}
	if len(exps) > 2 {
		return ip.Eval(exps[2])
	}
	return Nil, nil
}

func and(ip *Interpreter, args Value) (Value, error) {
	result := ip.Heap.NewBool(true)
	for _, exp := range ip.Heap.Elements(args) {
		var err error
		if result, err = ip.Eval(exp); err != nil {
			return Nil, err
		}
		if !ip.Heap.Truthy(result) {
			break
		}
	}
	return result, nil
}

func or(ip *Interpreter, args Value) (Value, error) {
	result := ip.Heap.NewBool(false)
	for _, exp := range ip.Heap.Elements(args) {
		var err error
		if result, err = ip.Eval(exp); err != nil {
			return Nil, err
		}
		if ip.Heap.Truthy(result) {
			break
		}
	}
	return result, nil
}

// (define name e) or (define (name param...) body...)
func define(ip *Interpreter, args Value) (Value, error) {
	h := ip.Heap
	exps, err := ip.formArgs("define", args, 2, -1)
	if err != nil {
		return Nil, err
	}
	s, ok := h.Symbol(exps[0])
	if !ok {
		return Nil, ip.defineProcedure(args)
	}
	if len(exps) > 2 {
		return Nil, newError(SyntaxError, "define %s: one value expected, got %d",
			s.Name, len(exps)-1)
	}
	val, err := ip.Eval(exps[1])
	if err != nil {
		return Nil, err
	}
	h.Define(ip.Current(), s.Name, h.DeepCopy(val))
	return Nil, nil
}

func (ip *Interpreter) defineProcedure(args Value) error {
	h := ip.Heap
	j, _ := h.Pair(args)
	if h.Kind(j.First) != KindPair {
		return newError(SyntaxError, "define: name or (name param...) expected, got %s",
			h.Stringify(j.First))
	}
	names, err := ip.symbols("define", j.First)
	if err != nil {
		return err
	}
	env := ip.Current()
	proc := &Procedure{Name: names[0], Params: names[1:], Body: j.Rest, Env: env}
	h.Define(env, names[0], h.newProcedure(proc))
	return nil
}

// symbols returns the names of a list of symbols.
func (ip *Interpreter) symbols(who string, v Value) ([]string, error) {
	h := ip.Heap
	var names []string
	for _, x := range h.Elements(v) {
		s, ok := h.Symbol(x)
		if !ok {
			return nil, newError(SyntaxError, "%s: symbol expected, got %s", who, h.Stringify(x))
		}
		names = append(names, s.Name)
	}
	return names, nil
}

// (lambda (param...) body...)
func lambda(ip *Interpreter, args Value) (Value, error) {
	h := ip.Heap
	j, ok := h.Pair(args)
	if !ok || j.Rest.IsNil() {
		return Nil, newError(SyntaxError, "lambda: (lambda (param...) body...) expected")
	}
	if k := h.Kind(j.First); k != KindPair && k != KindNil {
		return Nil, newError(SyntaxError, "lambda: parameter list expected, got %s",
			h.Stringify(j.First))
	}
	params, err := ip.symbols("lambda", j.First)
	if err != nil {
		return Nil, err
	}
	proc := &Procedure{Params: params, Body: j.Rest, Env: ip.Current()}
	return h.newProcedure(proc), nil
}

// (set! name e)
func set(ip *Interpreter, args Value) (Value, error) {
	h := ip.Heap
	exps, err := ip.formArgs("set!", args, 2, 2)
	if err != nil {
		return Nil, err
	}
	s, ok := h.Symbol(exps[0])
	if !ok {
		return Nil, newError(SyntaxError, "set!: symbol expected, got %s", h.Stringify(exps[0]))
	}
	val, err := ip.Eval(exps[1])
	if err != nil {
		return Nil, err
	}
	return Nil, h.Set(ip.Current(), s.Name, h.DeepCopy(val))
}

//----------------------------------------------------------------------

func isKind(k Kind) Primitive {
	return func(ip *Interpreter, args []Value) (Value, error) {
		return ip.Heap.NewBool(ip.Heap.Kind(args[0]) == k), nil
	}
}

func isBoolean(ip *Interpreter, args []Value) (Value, error) {
	h := ip.Heap
	s, ok := h.Symbol(args[0])
	return h.NewBool(ok && (s.Name == TrueName || s.Name == FalseName)), nil
}

func not(ip *Interpreter, args []Value) (Value, error) {
	return ip.Heap.NewBool(!ip.Heap.Truthy(args[0])), nil
}

// shape counts the cells chained through rest from v and reports
// whether the chain ends in something other than the empty list.
// A circular chain counts as not ending in the empty list.
func (h *Heap) shape(v Value) (cells int, dotted bool) {
	seen := make(map[Value]bool)
	for !v.IsNil() {
		j, ok := h.Pair(v)
		if !ok || seen[v] {
			return cells, true
		}
		seen[v] = true
		cells++
		v = j.Rest
	}
	return cells, false
}

// pair? holds for a single cell with an atom in its rest, or for a
// chain of exactly two cells.
func isPair(ip *Interpreter, args []Value) (Value, error) {
	h := ip.Heap
	cells, dotted := h.shape(args[0])
	return h.NewBool(cells == 2 || (dotted && cells == 1)), nil
}

func isNull(ip *Interpreter, args []Value) (Value, error) {
	return ip.Heap.NewBool(args[0].IsNil()), nil
}

func isList(ip *Interpreter, args []Value) (Value, error) {
	h := ip.Heap
	k := h.Kind(args[0])
	if k != KindPair && k != KindNil {
		return h.NewBool(false), nil
	}
	_, dotted := h.shape(args[0])
	return h.NewBool(!dotted), nil
}

func cons(ip *Interpreter, args []Value) (Value, error) {
	return ip.Heap.NewPair(args[0], args[1]), nil
}

func car(ip *Interpreter, args []Value) (Value, error) {
	j, _ := ip.Heap.Pair(args[0])
	return j.First, nil
}

func cdr(ip *Interpreter, args []Value) (Value, error) {
	j, _ := ip.Heap.Pair(args[0])
	return j.Rest, nil
}

func list(ip *Interpreter, args []Value) (Value, error) {
	return ip.Heap.List(args...), nil
}

// listIndex checks the (list index) arguments of list-ref and list-tail
// and returns the list's elements and the index.
func (ip *Interpreter) listIndex(name string, args []Value) ([]Value, int, error) {
	h := ip.Heap
	if h.Kind(args[0]) != KindPair {
		return nil, 0, newError(TypeError, "%s: pair expected, got %s", name, h.Kind(args[0]))
	}
	n, ok := h.Integer(args[1])
	if !ok {
		return nil, 0, newError(TypeError, "%s: integer expected, got %s", name, h.Kind(args[1]))
	}
	elems, err := h.finiteElements(name, args[0])
	if err != nil {
		return nil, 0, err
	}
	if n.Val < 0 || n.Val > int64(len(elems)) {
		return nil, 0, newError(RangeError, "%s: index %d out of range for length %d",
			name, n.Val, len(elems))
	}
	return elems, int(n.Val), nil
}

// finiteElements is Elements for a chain that may loop back on itself;
// a circular chain is a type error.
func (h *Heap) finiteElements(name string, v Value) ([]Value, error) {
	var result []Value
	seen := make(map[Value]bool)
	for !v.IsNil() {
		j, ok := h.Pair(v)
		if !ok {
			result = append(result, v)
			break
		}
		if seen[v] {
			return nil, newError(TypeError, "%s: circular list", name)
		}
		seen[v] = true
		result = append(result, j.First)
		v = j.Rest
	}
	return result, nil
}

func listRef(ip *Interpreter, args []Value) (Value, error) {
	elems, i, err := ip.listIndex("list-ref", args)
	if err != nil {
		return Nil, err
	}
	if i == len(elems) {
		return Nil, newError(RangeError, "list-ref: index %d out of range for length %d",
			i, len(elems))
	}
	return elems[i], nil
}

// list-tail returns fresh cells holding the elements from the index on.
func listTail(ip *Interpreter, args []Value) (Value, error) {
	elems, i, err := ip.listIndex("list-tail", args)
	if err != nil {
		return Nil, err
	}
	return ip.Heap.List(elems[i:]...), nil
}

func (ip *Interpreter) mutablePair(name string, v Value) (*Pair, error) {
	j, ok := ip.Heap.Pair(v)
	if !ok {
		return nil, newError(TypeError, "%s: pair expected, got %s", name, ip.Heap.Kind(v))
	}
	return j, nil
}

func setCar(ip *Interpreter, args []Value) (Value, error) {
	j, err := ip.mutablePair("set-car!", args[0])
	if err != nil {
		return Nil, err
	}
	j.First = args[1]
	return Nil, nil
}

func setCdr(ip *Interpreter, args []Value) (Value, error) {
	j, err := ip.mutablePair("set-cdr!", args[0])
	if err != nil {
		return Nil, err
	}
	j.Rest = args[1]
	return Nil, nil
}
