package scheme

import "fmt"

type slot struct {
	obj    object
	gen    uint32
	marked bool
}

// Heap is the arena every Value lives in. Objects are never freed
// explicitly; Collect destroys those unreachable from the roots.
type Heap struct {
	slots  []slot // slots[0] is reserved for Nil
	free   []uint32
	roots  []Value
	live   int
	freed  int
	cycles int
}

// GCStats summarizes the heap after a collection.
type GCStats struct {
	Live   int // allocations surviving the cycle
	Freed  int // allocations destroyed by the cycle
	Cycles int // collections run so far
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{slots: make([]slot, 1, 256)}
}

func (h *Heap) alloc(o object) Value {
	var i uint32
	if n := len(h.free); n > 0 {
		i = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		h.slots = append(h.slots, slot{gen: 1})
		i = uint32(len(h.slots) - 1)
	}
	s := &h.slots[i]
	s.obj = o
	s.marked = false
	h.live++
	return Value{i, s.gen}
}

// NewInteger allocates an integer.
func (h *Heap) NewInteger(n int64) Value {
	return h.alloc(&Integer{n})
}

// NewSymbol allocates a symbol.
func (h *Heap) NewSymbol(name string) Value {
	return h.alloc(&Symbol{name})
}

// NewBool allocates the symbol #t or #f.
func (h *Heap) NewBool(b bool) Value {
	if b {
		return h.NewSymbol(TrueName)
	}
	return h.NewSymbol(FalseName)
}

// NewPair allocates a cons-cell.
func (h *Heap) NewPair(first, rest Value) Value {
	return h.alloc(&Pair{first, rest})
}

// NewEnvironment allocates an empty environment whose parent is parent.
func (h *Heap) NewEnvironment(parent Value) Value {
	return h.alloc(&Environment{Vars: make(map[string]Value), Parent: parent})
}

func (h *Heap) newProcedure(p *Procedure) Value {
	return h.alloc(p)
}

// List allocates a proper list of vs.
func (h *Heap) List(vs ...Value) Value {
	result := Nil
	for i := len(vs) - 1; i >= 0; i-- {
		result = h.NewPair(vs[i], result)
	}
	return result
}

//----------------------------------------------------------------------

func (h *Heap) object(v Value) object {
	if v.IsNil() {
		return nil
	}
	if int(v.index) >= len(h.slots) {
		panic(fmt.Sprintf("bad handle %d", v.index))
	}
	s := &h.slots[v.index]
	if s.obj == nil || s.gen != v.gen {
		panic(fmt.Sprintf("dangling handle %d/%d", v.index, v.gen))
	}
	return s.obj
}

// Kind returns the variant of v.
func (h *Heap) Kind(v Value) Kind {
	if v.IsNil() {
		return KindNil
	}
	return h.object(v).kind()
}

// Integer returns the integer v refers to, if it is one.
func (h *Heap) Integer(v Value) (*Integer, bool) {
	x, ok := h.object(v).(*Integer)
	return x, ok
}

// Symbol returns the symbol v refers to, if it is one.
func (h *Heap) Symbol(v Value) (*Symbol, bool) {
	x, ok := h.object(v).(*Symbol)
	return x, ok
}

// Pair returns the cons-cell v refers to, if it is one.
func (h *Heap) Pair(v Value) (*Pair, bool) {
	x, ok := h.object(v).(*Pair)
	return x, ok
}

// Procedure returns the procedure v refers to, if it is one.
func (h *Heap) Procedure(v Value) (*Procedure, bool) {
	x, ok := h.object(v).(*Procedure)
	return x, ok
}

// Environment returns the environment v refers to, if it is one.
func (h *Heap) Environment(v Value) (*Environment, bool) {
	x, ok := h.object(v).(*Environment)
	return x, ok
}

// Contains reports whether v is a live allocation of h.
func (h *Heap) Contains(v Value) bool {
	if v.IsNil() || int(v.index) >= len(h.slots) {
		return false
	}
	s := &h.slots[v.index]
	return s.obj != nil && s.gen == v.gen
}

// Len returns the number of live allocations.
func (h *Heap) Len() int {
	return h.live
}

//----------------------------------------------------------------------

// AddRoot makes v always reachable.
func (h *Heap) AddRoot(v Value) {
	h.roots = append(h.roots, v)
}

// RemoveRoot undoes one AddRoot(v).
func (h *Heap) RemoveRoot(v Value) {
	for i := len(h.roots) - 1; i >= 0; i-- {
		if h.roots[i] == v {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}

// Collect marks everything reachable from the roots through owned
// references and destroys the rest.
func (h *Heap) Collect() GCStats {
	for i := range h.slots {
		h.slots[i].marked = false
	}
	work := make([]Value, 0, len(h.roots)+64)
	push := func(v Value) {
		if !v.IsNil() {
			work = append(work, v)
		}
	}
	for _, r := range h.roots {
		push(r)
	}
	for len(work) > 0 {
		v := work[len(work)-1]
		work = work[:len(work)-1]
		o := h.object(v)
		s := &h.slots[v.index]
		if s.marked {
			continue
		}
		s.marked = true
		o.edges(push)
	}

	freed := 0
	for i := 1; i < len(h.slots); i++ {
		s := &h.slots[i]
		if s.obj == nil || s.marked {
			continue
		}
		s.obj = nil
		s.gen++
		h.free = append(h.free, uint32(i))
		freed++
	}
	h.live -= freed
	h.freed = freed
	h.cycles++
	return GCStats{Live: h.live, Freed: freed, Cycles: h.cycles}
}

// Stats reports the current live count along with the figures of the
// last collection.
func (h *Heap) Stats() GCStats {
	return GCStats{Live: h.live, Freed: h.freed, Cycles: h.cycles}
}
