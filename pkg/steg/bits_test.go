package steg

import (
	"bytes"
	"testing"
)

func TestBuildBitstreamHeader(t *testing.T) {
	// "HELLO" is 40 payload bits; the header must spell 40 in 32 bits,
	// most significant bit first.
	bits := buildBitstream([]byte("HELLO"))
	if len(bits) != 32+40 {
		t.Fatalf("bitstream length = %d, want 72", len(bits))
	}

	var header uint32
	for i := 0; i < 32; i++ {
		header = header<<1 | uint32(bits[i])
	}
	if header != 40 {
		t.Errorf("header = %d, want 40", header)
	}

	// 'H' is 0x48 = 01001000.
	wantH := []uint8{0, 1, 0, 0, 1, 0, 0, 0}
	for i, w := range wantH {
		if bits[32+i] != w {
			t.Errorf("payload bit %d = %d, want %d", i, bits[32+i], w)
		}
	}
}

func TestPackBitsRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xFF, 0xA5, 0x5A, 0x42}
	bits := buildBitstream(payload)
	if got := packBits(bits[32:]); !bytes.Equal(got, payload) {
		t.Errorf("packBits = %x, want %x", got, payload)
	}
}

func TestPackBitsTruncatesPartialByte(t *testing.T) {
	bits := make([]uint8, 13)
	for i := range bits {
		bits[i] = 1
	}
	got := packBits(bits)
	if len(got) != 1 {
		t.Fatalf("got %d bytes from 13 bits, want 1", len(got))
	}
	if got[0] != 0xFF {
		t.Errorf("byte = %#x, want 0xFF", got[0])
	}
}
