package strx

import "nimbus-go/errcode"

// Coalesce returns the first non-empty string, or "" if there is none.
func Coalesce(vals ...string) string {
	for _, s := range vals {
		if s != "" {
			return s
		}
	}
	return ""
}

// Uints parses a sep-separated list of decimal numbers, "4,5" or
// "256x4096". Empty input yields an empty list.
func Uints(s string, sep byte) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	var out []uint32
	var cur uint64
	digits := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			if digits == 0 {
				return nil, errcode.InvalidInput
			}
			out = append(out, uint32(cur))
			cur, digits = 0, 0
			continue
		}
		c := s[i]
		if c < '0' || c > '9' {
			return nil, errcode.InvalidInput
		}
		cur = cur*10 + uint64(c-'0')
		if cur > 1<<32-1 {
			return nil, errcode.InvalidInput
		}
		digits++
	}
	return out, nil
}
