package errcode

// Code is a stable status identifier shared by the value layer, the
// instance registries and every HAL family.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Value-layer codes.
const (
	OK             Code = "ok"
	Fail           Code = "fail"
	NoInput        Code = "no_input"
	InvalidInput   Code = "invalid_input"
	OutOfMemory    Code = "out_of_memory"
	MissingSupport Code = "missing_support"
)

// Registry and driver-layer codes.
const (
	Invalid       Code = "invalid" // handle out of range
	NotSupported  Code = "not_supported"
	Uninitialized Code = "uninitialized"
	Busy          Code = "busy"
	Timeout       Code = "timeout"
	UnknownPin    Code = "unknown_pin"
	NotMounted    Code = "not_mounted"
	NotFound      Code = "not_found"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.Invalid) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap attaches an operation name to a code, keeping the cause.
func Wrap(c Code, op string, cause error) error {
	if c == OK {
		return nil
	}
	return &E{C: c, Op: op, Err: cause}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			if c := Of(inner); c != Error {
				return c
			}
		}
	}
	return Error
}

// MapDriverErr maps low-level driver errors to a Code.
// Codes pass through; timeouts are recognised by the conventional
// Timeout() method; anything else becomes Fail.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Error {
		return c
	}
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok && t.Timeout() {
		return Timeout
	}
	return Fail
}
