package scheme

import "github.com/nukata/goarith"

// widen lifts an integer into goarith's mixed-mode arithmetic, where
// intermediate results may grow past 64 bits.
func widen(n int64) goarith.Number {
	return goarith.AsNumber(n)
}

// narrow brings a result back to a fixed-width integer.
func narrow(n goarith.Number) (int64, error) {
	if v, exact := n.Int(); exact {
		return int64(v), nil
	}
	return 0, newError(RangeError, "integer overflow: %v", n)
}

func (h *Heap) number(v Value) goarith.Number {
	x, ok := h.Integer(v)
	if !ok {
		panic("not an integer: " + h.Kind(v).String())
	}
	return widen(x.Val)
}

// fold makes an arithmetic primitive which combines its arguments
// from left to right. With no arguments it returns unit.
func fold(name string, lo int, unit int64,
	op func(a, b goarith.Number) goarith.Number) *Procedure {
	return prim(name, lo, -1, KindInteger, func(ip *Interpreter, args []Value) (Value, error) {
		h := ip.Heap
		acc := widen(unit)
		if len(args) > 0 {
			acc = h.number(args[0])
			args = args[1:]
		}
		for _, a := range args {
			acc = op(acc, h.number(a))
		}
		n, err := narrow(acc)
		if err != nil {
			return Nil, err
		}
		return h.NewInteger(n), nil
	})
}

// compare makes a predicate which holds when every adjacent pair of
// its arguments satisfies test applied to their Cmp result.
func compare(name string, test func(c int) bool) *Procedure {
	return prim(name, 0, -1, KindInteger, func(ip *Interpreter, args []Value) (Value, error) {
		h := ip.Heap
		for i := 1; i < len(args); i++ {
			if !test(h.number(args[i-1]).Cmp(h.number(args[i]))) {
				return h.NewBool(false), nil
			}
		}
		return h.NewBool(true), nil
	})
}

// quotient divides from left to right, truncating toward zero.
func quotient(ip *Interpreter, args []Value) (Value, error) {
	h := ip.Heap
	zero := widen(0)
	acc := h.number(args[0])
	for _, a := range args[1:] {
		y := h.number(a)
		if y.Cmp(zero) == 0 {
			return Nil, newError(RangeError, "division by zero")
		}
		acc, _ = acc.QuoRem(y)
	}
	n, err := narrow(acc)
	if err != nil {
		return Nil, err
	}
	return h.NewInteger(n), nil
}

func absolute(ip *Interpreter, args []Value) (Value, error) {
	h := ip.Heap
	x := h.number(args[0])
	if x.Cmp(widen(0)) < 0 {
		x = widen(0).Sub(x)
	}
	n, err := narrow(x)
	if err != nil {
		return Nil, err
	}
	return h.NewInteger(n), nil
}

func add(a, b goarith.Number) goarith.Number { return a.Add(b) }
func sub(a, b goarith.Number) goarith.Number { return a.Sub(b) }
func mul(a, b goarith.Number) goarith.Number { return a.Mul(b) }

func maximum(a, b goarith.Number) goarith.Number {
	if a.Cmp(b) < 0 {
		return b
	}
	return a
}

func minimum(a, b goarith.Number) goarith.Number {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}
