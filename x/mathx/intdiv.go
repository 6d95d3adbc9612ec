package mathx

// RoundDiv returns a/b rounded half up. b == 0 yields 0.
func RoundDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// Rescale maps x from [0, inMax] onto [0, outMax] with rounding, clamping x
// to inMax first.
func Rescale(x, inMax, outMax uint32) uint32 {
	if inMax == 0 {
		return 0
	}
	x = Min(x, inMax)
	return uint32(RoundDiv(uint64(x)*uint64(outMax), uint64(inMax)))
}
