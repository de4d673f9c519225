package steg

import (
	"fmt"
	"math"

	"github.com/schollz/progressbar/v3"
)

// AudioClip is an in-memory multi-channel audio carrier. Samples[ch][i] is
// the i-th sample of channel ch, nominally in [-1, 1]. All channels must be
// the same length.
type AudioClip struct {
	SampleRate int
	Samples    [][]float64
}

// Channels returns the channel count of the clip.
func (c *AudioClip) Channels() int { return len(c.Samples) }

// Frames returns the per-channel sample count of the clip.
func (c *AudioClip) Frames() int {
	if len(c.Samples) == 0 {
		return 0
	}
	return len(c.Samples[0])
}

func (c *AudioClip) clone() *AudioClip {
	out := &AudioClip{
		SampleRate: c.SampleRate,
		Samples:    make([][]float64, len(c.Samples)),
	}
	for i, ch := range c.Samples {
		out.Samples[i] = make([]float64, len(ch))
		copy(out.Samples[i], ch)
	}
	return out
}

func (c *AudioClip) validate() error {
	if c.Channels() == 0 {
		return fmt.Errorf("clip has no channels")
	}
	frames := c.Frames()
	for i, ch := range c.Samples {
		if len(ch) != frames {
			return fmt.Errorf("channel %d has %d samples, channel 0 has %d", i, len(ch), frames)
		}
	}
	return nil
}

const sampleScale = 32767

// quantize maps a float sample to its signed 16-bit approximation. Truncation
// toward negative infinity, never round-to-nearest: embed and extract must
// land on the same integer or the recovered bit flips.
func quantize(s float64) int {
	return int(math.Floor(s * sampleScale))
}

// EmbedInAudio hides payload in the least significant bits of the quantized
// samples of clip, at positions permuted by seed. The input clip is never
// mutated; the returned clip is a fresh clone.
func EmbedInAudio(clip *AudioClip, payload []byte, seed string) (*AudioClip, error) {
	return embedInAudio(clip, payload, seed, nil)
}

func embedInAudio(clip *AudioClip, payload []byte, seed string, bar *progressbar.ProgressBar) (*AudioClip, error) {
	if err := clip.validate(); err != nil {
		return nil, err
	}

	out := clip.clone()
	channels := out.Channels()
	slots := permuteSlots(audioSlots(channels, out.Frames()), seed)
	bits := buildBitstream(payload)

	if len(bits) > len(slots) {
		return nil, fmt.Errorf("%w: need %d bits, carrier has %d usable slots", ErrCapacityExceeded, len(bits), len(slots))
	}

	for i, bit := range bits {
		slot := slots[i]
		ch, frame := slot%channels, slot/channels
		v := quantize(out.Samples[ch][frame])
		v = v&^1 | int(bit)
		out.Samples[ch][frame] = float64(v) / sampleScale
		if bar != nil && i%8 == 7 {
			bar.Add(1)
		}
	}

	return out, nil
}

// ExtractFromAudio recovers a payload previously embedded with the same seed.
// It returns ErrNoPayload when the decoded length header is zero or larger
// than the carrier could hold.
func ExtractFromAudio(clip *AudioClip, seed string) ([]byte, error) {
	return extractFromAudio(clip, seed, nil)
}

func extractFromAudio(clip *AudioClip, seed string, bar *progressbar.ProgressBar) ([]byte, error) {
	if err := clip.validate(); err != nil {
		return nil, err
	}

	channels := clip.Channels()
	slots := permuteSlots(audioSlots(channels, clip.Frames()), seed)
	if len(slots) < headerBits {
		return nil, ErrNoPayload
	}

	readBit := func(slot int) uint8 {
		ch, frame := slot%channels, slot/channels
		return uint8(quantize(clip.Samples[ch][frame]) & 1)
	}

	var n uint32
	for i := 0; i < headerBits; i++ {
		n = n<<1 | uint32(readBit(slots[i]))
	}
	if n == 0 || uint64(n) > uint64(len(slots)-headerBits) {
		return nil, ErrNoPayload
	}

	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = readBit(slots[headerBits+i])
		if bar != nil && i%8 == 7 {
			bar.Add(1)
		}
	}

	return packBits(bits), nil
}
