package conv

const hexd = "0123456789ABCDEF"

// AppendHex appends two uppercase hex digits per byte of p to dst.
// No allocations beyond growing dst; no fmt dependency.
func AppendHex(dst []byte, p []byte) []byte {
	for _, b := range p {
		dst = append(dst, hexd[b>>4], hexd[b&0x0F])
	}
	return dst
}

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < 8; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
