package scheme

import "fmt"

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota + 1
	UnboundName
	ArityError
	TypeError
	NotCallable
	RangeError
	DepthError
)

var errorKindNames = map[ErrorKind]string{
	SyntaxError: "syntax error",
	UnboundName: "unbound name",
	ArityError:  "arity error",
	TypeError:   "type error",
	NotCallable: "not callable",
	RangeError:  "range error",
	DepthError:  "stack overflow",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Error is returned by every failing evaluation.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is makes errors.Is(err, ErrArity) and the like match on the kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Sentinels to compare against with errors.Is.
var (
	ErrSyntax      = &Error{Kind: SyntaxError}
	ErrUnbound     = &Error{Kind: UnboundName}
	ErrArity       = &Error{Kind: ArityError}
	ErrType        = &Error{Kind: TypeError}
	ErrNotCallable = &Error{Kind: NotCallable}
	ErrRange       = &Error{Kind: RangeError}
	ErrDepth       = &Error{Kind: DepthError}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
