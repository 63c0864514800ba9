package fatal

// appendHex appends v as 16 zero padded lowercase hex digits.
func appendHex(b []byte, v uint64) []byte {
	for shift := 60; shift >= 0; shift -= 4 {
		char := byte(v>>shift) & 0xf
		if char > 9 {
			char += 'a' - 10
		} else {
			char += '0'
		}
		b = append(b, char)
	}
	return b
}
