package steg

// buildBitstream expands a payload into the combined bitstream that is
// written to a carrier: a 32-bit header holding the payload bit count,
// followed by the payload bits. Both are emitted most significant bit first.
func buildBitstream(payload []byte) []uint8 {
	bits := make([]uint8, 0, headerBits+len(payload)*8)
	n := uint32(len(payload) * 8)
	for i := headerBits - 1; i >= 0; i-- {
		bits = append(bits, uint8(n>>uint(i))&1)
	}
	for _, b := range payload {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// packBits repacks extracted bits into bytes, most significant bit first.
// A trailing partial byte is dropped; encoders always emit whole bytes, so
// anything left over is noise.
func packBits(bits []uint8) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i*8+j]
		}
		out[i] = b
	}
	return out
}

func setBitUint8(num uint8, index int) uint8 {
	mask := uint8(1 << index)
	return num | mask
}

func clearBitUint8(num uint8, index int) uint8 {
	mask := uint8(^(1 << index))
	return num & mask
}

func getBitUint8(num uint8, index int) uint8 {
	mask := uint8(1 << index)
	if num&mask == 0 {
		return 0
	}
	return 1
}
