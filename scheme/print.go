package scheme

import (
	"strconv"
	"strings"
)

// Stringify returns the textual representation of v.
// The empty list renders as "()".
func (h *Heap) Stringify(v Value) string {
	var b strings.Builder
	h.write(&b, v, make(map[Value]bool))
	return b.String()
}

// write renders v into b. Cells already on the path being printed are
// shown as "..." so that circular lists terminate.
func (h *Heap) write(b *strings.Builder, v Value, path map[Value]bool) {
	switch x := h.object(v).(type) {
	case nil:
		b.WriteString("()")
	case *Integer:
		b.WriteString(strconv.FormatInt(x.Val, 10))
	case *Symbol:
		b.WriteString(x.Name)
	case *Pair:
		var cells []Value
		b.WriteByte('(')
		for {
			if path[v] {
				b.WriteString("...")
				break
			}
			path[v] = true
			cells = append(cells, v)
			h.write(b, x.First, path)
			if x.Rest.IsNil() {
				break
			}
			next, ok := h.Pair(x.Rest)
			if !ok {
				b.WriteString(" . ")
				h.write(b, x.Rest, path)
				break
			}
			b.WriteByte(' ')
			v, x = x.Rest, next
		}
		b.WriteByte(')')
		for _, c := range cells {
			delete(path, c)
		}
	case *Procedure:
		switch {
		case x.IsClosure():
			b.WriteString("#<lambda (")
			b.WriteString(strings.Join(x.Params, " "))
			b.WriteString(")>")
		default:
			b.WriteString("#<primitive " + x.Name + ">")
		}
	case *Environment:
		b.WriteString("#<environment>")
	default:
		panic("unknown object for " + h.Kind(v).String())
	}
}
