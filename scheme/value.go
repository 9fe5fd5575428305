package scheme

// Value is a handle to an object in a Heap.
// The zero Value is Nil, which stands for both the empty list and
// an absent value.
type Value struct {
	index uint32
	gen   uint32
}

// Nil is the empty list.
var Nil Value

// IsNil reports whether v is the empty list.
func (v Value) IsNil() bool {
	return v.index == 0
}

// Kind enumerates the variants of the value model.
type Kind uint8

const (
	KindNil Kind = iota
	KindInteger
	KindSymbol
	KindPair
	KindProcedure
	KindEnvironment
)

var kindNames = [...]string{
	"empty", "integer", "symbol", "pair", "procedure", "environment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// The names of the two boolean literals.
const (
	TrueName  = "#t"
	FalseName = "#f"
)

//----------------------------------------------------------------------

// object is implemented only by the five heap variants below.
type object interface {
	kind() Kind
	// edges calls visit for every owned reference of the object.
	edges(visit func(Value))
}

// Integer holds a fixed-width signed integer.
type Integer struct {
	Val int64
}

// Symbol holds an immutable name.
type Symbol struct {
	Name string
}

// Pair represents a cons-cell.
type Pair struct {
	First Value
	Rest  Value
}

// Primitive is the signature of an ordinary native operation; it
// receives its arguments already evaluated.
type Primitive func(ip *Interpreter, args []Value) (Value, error)

// Form is the signature of a native operation that receives the
// argument list unevaluated, as written in the application. Special
// forms such as if, define and quote are Forms. The current
// environment is available through the interpreter.
type Form func(ip *Interpreter, args Value) (Value, error)

// Procedure is either a primitive or a closure.
type Procedure struct {
	Name string

	// primitive: Max < 0 means no upper bound on arity. If Want is not
	// KindNil, every evaluated argument must be of that kind.
	Min, Max int
	Want     Kind
	Fn       Primitive

	// special form
	Form Form

	// closure
	Params []string
	Body   Value // list of expressions
	Env    Value // captured environment
}

// IsClosure reports whether p was made by lambda or define.
func (p *Procedure) IsClosure() bool {
	return p.Fn == nil && p.Form == nil
}

// Environment maps names to values and links to its parent.
type Environment struct {
	Vars   map[string]Value
	Parent Value
}

func (*Integer) kind() Kind { return KindInteger }
func (*Symbol) kind() Kind { return KindSymbol }
func (*Pair) kind() Kind { return KindPair }
func (*Procedure) kind() Kind { return KindProcedure }
func (*Environment) kind() Kind { return KindEnvironment }

func (*Integer) edges(func(Value)) {}
func (*Symbol) edges(func(Value))  {}

func (j *Pair) edges(visit func(Value)) {
	visit(j.First)
	visit(j.Rest)
}

func (p *Procedure) edges(visit func(Value)) {
	if p.IsClosure() {
		visit(p.Body)
		visit(p.Env)
	}
}

func (e *Environment) edges(visit func(Value)) {
	for _, v := range e.Vars {
		visit(v)
	}
	visit(e.Parent)
}
