package stego

/*
 * transform data from/to a flat bit sequence, one byte per bit,
 * most significant bit of each byte first
 */
func ToBits( data []byte ) []uint8 {
	bits := make( []uint8, 0, len(data) * 8 )
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append( bits, (b >> uint(i)) & 1 )
		}
	}
	return bits
}

func FromBits( bits []uint8 ) []byte {
	result := make( []byte, 0, len(bits) / 8 )
	for i := 0; i + 8 <= len(bits); i += 8 {
		b := byte(0)
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i+j] & 1)
		}
		result = append( result, b )
	}
	return result
}
