//go:build rp2040 || rp2350

package strconvx

// Minimal, allocation-aware helpers with strconv signatures.
// FormatFloat/ParseFloat are basic and not IEEE-perfect; use sparingly on MCU.

func FormatInt(i int64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if i < 0 {
		return "-" + formatUint(uint64(-i), base)
	}
	return formatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	return formatUint(u, base)
}

func formatUint(u uint64, base int) string {
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

// FormatFloat supports fixed notation only; other verbs fall back to 'f'.
func FormatFloat(f float64, _ byte, prec, _ int) string {
	if prec < 0 {
		prec = 6
	}
	neg := f < 0
	if neg {
		f = -f
	}
	intp := uint64(f)
	frac := f - float64(intp)

	out := FormatUint(intp, 10)
	if prec > 0 {
		pow := 1.0
		for i := 0; i < prec; i++ {
			pow *= 10
		}
		fracN := uint64(frac*pow + 0.5)
		if float64(fracN) >= pow {
			// rounding carried into the integer part
			fracN -= uint64(pow)
			out = FormatUint(intp+1, 10)
		}
		fs := FormatUint(fracN, 10)
		for len(fs) < prec {
			fs = "0" + fs
		}
		out += "." + fs
	}
	if neg {
		return "-" + out
	}
	return out
}

// ParseFloat accepts [sign] digits [. digits]; exponents are not supported.
func ParseFloat(s string, _ int) (float64, error) {
	if len(s) == 0 {
		return 0, parseError{}
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	var intPart uint64
	var i, digits int
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		intPart = intPart*10 + uint64(s[i]-'0')
		i++
		digits++
	}
	var frac float64
	if i < len(s) && s[i] == '.' {
		i++
		scale := 1.0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			frac = frac*10 + float64(s[i]-'0')
			scale *= 10
			i++
			digits++
		}
		frac = frac / scale
	}
	if i != len(s) || digits == 0 {
		return 0, parseError{}
	}
	v := float64(intPart) + frac
	if neg {
		v = -v
	}
	return v, nil
}
