package Go_Centroid

import "fmt"

// Kind of failure reported by the decomposition packages.
type Kind uint8

const (
	// Malformed input: not a single balanced parenthesis tree.
	Malformed Kind = iota + 1
	// Overflow of the index type or of the out-degree ceiling.
	Overflow
	// BadConfig parameters, rejected before any work starts.
	BadConfig
	// Invariant of the covering or removal bookkeeping broke. It's a bug.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed input"
	case Overflow:
		return "overflow"
	case BadConfig:
		return "bad config"
	case Invariant:
		return "invariant violation"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error with a Kind. Match kinds with errors.Is against the Err* sentinels.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Kind == e.Kind
}

var (
	ErrMalformed = &Error{Kind: Malformed}
	ErrOverflow  = &Error{Kind: Overflow}
	ErrBadConfig = &Error{Kind: BadConfig}
	ErrInvariant = &Error{Kind: Invariant}
)

// Errorf builds an *Error of kind k.
func Errorf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Violated panics with an Invariant error. Callers check the condition themselves so the
// arguments are only built on failure.
func Violated(format string, args ...any) {
	panic(Errorf(Invariant, format, args...))
}
