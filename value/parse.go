package value

import (
	"nimbus-go/errcode"
	"nimbus-go/x/strconvx"
)

// ParseLegacy parses text the way deployed firmware always has: an optional
// sign, digits and at most one decimal point. Any other byte, a second
// point, or no digits at all yields 0; there is no partial result.
func ParseLegacy(s string) float64 {
	return strconvx.ParseFloatLegacy(s)
}

// ParseStrict parses s as a full decimal or exponent float and fails with
// errcode.InvalidInput on malformed text.
func ParseStrict(s string) (float64, error) {
	f, err := strconvx.ParseFloat(s, 64)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidInput, "value.ParseStrict", err)
	}
	return f, nil
}
