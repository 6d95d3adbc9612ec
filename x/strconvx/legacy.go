package strconvx

// ParseFloatLegacy is the low-footprint parser older firmware and its cloud
// clients depend on. It accepts an optional leading sign, the digits 0-9
// and a single decimal point. The first byte outside that grammar, a second
// decimal point, or input with no digits aborts with 0 rather than a
// partial value. A NUL ends the input.
func ParseFloatLegacy(s string) float64 {
	i := 0
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		i = 1
	}
	var whole, frac float64
	scale := 1.0
	dot := false
	digits := 0
	for ; i < len(s) && s[i] != 0; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
			if dot {
				scale /= 10
				frac += float64(c-'0') * scale
			} else {
				whole = whole*10 + float64(c-'0')
			}
		case c == '.' && !dot:
			dot = true
		default:
			return 0
		}
	}
	if digits == 0 {
		return 0
	}
	v := whole + frac
	if neg {
		v = -v
	}
	return v
}
