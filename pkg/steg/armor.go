package steg

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Reed-Solomon armor is an optional protection layer applied to the envelope
// bytes before they enter the codec, so a few damaged carrier regions do not
// cost the whole payload. It sits outside the byte contract of the envelope:
// both sides must agree to use it.
const (
	armorDataShards   = 4
	armorParityShards = 2
)

// Armor splits data into Reed-Solomon shards and appends parity. A 4-byte
// length prefix records the original size so shard padding can be stripped
// on the way back.
func Armor(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(armorDataShards, armorParityShards)
	if err != nil {
		return nil, err
	}

	framed := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(framed, uint32(len(data)))
	copy(framed[4:], data)

	shards, err := enc.Split(framed)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	var out []byte
	for _, shard := range shards {
		out = append(out, shard...)
	}
	return out, nil
}

// Unarmor verifies the shards, reconstructs them if needed, and strips the
// parity and the length prefix.
func Unarmor(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(armorDataShards, armorParityShards)
	if err != nil {
		return nil, err
	}

	shards, err := enc.Split(data)
	if err != nil {
		return nil, err
	}
	if ok, _ := enc.Verify(shards); !ok {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("armor reconstruction failed: %w", err)
		}
	}

	var joined []byte
	for i := 0; i < armorDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	if len(joined) < 4 {
		return nil, errors.New("armored data too short")
	}
	length := binary.BigEndian.Uint32(joined[:4])
	if uint32(len(joined)-4) < length {
		return nil, errors.New("armored data length mismatch")
	}
	return joined[4 : 4+length], nil
}
