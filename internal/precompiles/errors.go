package precompiles

import "fmt"

// ErrorKind enumerates the failure modes the field-library interface of
// spec §6.4 can raise. The core never sees these directly — a precompile
// failure surfaces through the hint mechanism as an ordinary error — but
// keeping a distinct kind per failure mirrors the taxonomy protocols uses
// for its own errors.
type ErrorKind int

const (
	// ErrDivisionByZero: modular inverse requested on a zero element.
	ErrDivisionByZero ErrorKind = iota
	// ErrUnsupportedFunction: an Fcall dispatch with no matching function_id.
	ErrUnsupportedFunction
	// ErrBadParams: a params/result buffer has the wrong length for the
	// requested function.
	ErrBadParams
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDivisionByZero:
		return "DivisionByZero"
	case ErrUnsupportedFunction:
		return "UnsupportedFunction"
	case ErrBadParams:
		return "BadParams"
	default:
		return "UnknownError"
	}
}

// PrecompileError wraps a field-library failure, mirroring
// protocols.ProtocolError's Kind/Message/Cause shape.
type PrecompileError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *PrecompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PrecompileError) Unwrap() error { return e.Cause }

func newErr(kind ErrorKind, format string, args ...any) *PrecompileError {
	return &PrecompileError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapErr(kind ErrorKind, cause error, format string, args ...any) *PrecompileError {
	return &PrecompileError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
