package errcode

import (
	"errors"
	"io"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":              OK,
		"fail":            Fail,
		"no_input":        NoInput,
		"invalid_input":   InvalidInput,
		"out_of_memory":   OutOfMemory,
		"missing_support": MissingSupport,
		"invalid":         Invalid,
		"not_supported":   NotSupported,
		"uninitialized":   Uninitialized,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOfUnwrapsWrapper(t *testing.T) {
	err := Wrap(Invalid, "adc.Read", nil)
	if Of(err) != Invalid {
		t.Fatalf("Of(wrapped) = %q, want %q", Of(err), Invalid)
	}
	if !errors.Is(err, Invalid) {
		t.Fatal("errors.Is should match the wrapped code")
	}
	if err.Error() != "adc.Read: invalid" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if Wrap(OK, "x", nil) != nil {
		t.Fatal("wrapping OK must yield nil")
	}
}

func TestOfFallbacks(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil error must map to OK")
	}
	if Of(io.EOF) != Error {
		t.Fatal("foreign error must map to Error")
	}
	if MapDriverErr(io.EOF) != Fail {
		t.Fatal("foreign driver error must map to Fail")
	}
	if MapDriverErr(Busy) != Busy {
		t.Fatal("codes must pass through MapDriverErr")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestMapDriverErrTimeout(t *testing.T) {
	if MapDriverErr(timeoutErr{}) != Timeout {
		t.Fatal("timeout errors must map to Timeout")
	}
}
