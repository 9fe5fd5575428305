package scheme

func (h *Heap) env(v Value) *Environment {
	e, ok := h.Environment(v)
	if !ok {
		panic("not an environment: " + h.Kind(v).String())
	}
	return e
}

// Define binds name to val in env itself, replacing any binding of the
// same name there.
func (h *Heap) Define(env Value, name string, val Value) {
	h.env(env).Vars[name] = val
}

// LookFor returns the nearest environment, starting at env, that binds name.
func (h *Heap) LookFor(env Value, name string) (*Environment, error) {
	for !env.IsNil() {
		e := h.env(env)
		if _, ok := e.Vars[name]; ok {
			return e, nil
		}
		env = e.Parent
	}
	return nil, newError(UnboundName, "%s not defined", name)
}

// Lookup returns the value bound to name in the chain starting at env.
func (h *Heap) Lookup(env Value, name string) (Value, error) {
	e, err := h.LookFor(env, name)
	if err != nil {
		return Nil, err
	}
	return e.Vars[name], nil
}

// Set rebinds name in the nearest environment that already binds it.
func (h *Heap) Set(env Value, name string, val Value) error {
	e, err := h.LookFor(env, name)
	if err != nil {
		return err
	}
	e.Vars[name] = val
	return nil
}
