package steg

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func testClip(channels, frames int) *AudioClip {
	clip := &AudioClip{SampleRate: 8000, Samples: make([][]float64, channels)}
	for ch := range clip.Samples {
		clip.Samples[ch] = make([]float64, frames)
		for i := range clip.Samples[ch] {
			clip.Samples[ch][i] = 0.5 * math.Sin(2*math.Pi*float64(i+ch*7)/128)
		}
	}
	return clip
}

func TestQuantizeRoundTripsEveryValue(t *testing.T) {
	// The codec stores v/32767 and re-reads with floor(sample*32767). If
	// that pair is not exact for any representable 16-bit value, embedded
	// bits flip. Truncation, not rounding, in both directions.
	for v := -32768; v <= 32767; v++ {
		sample := float64(v) / sampleScale
		if got := quantize(sample); got != v {
			t.Fatalf("quantize(%d/32767) = %d", v, got)
		}
	}
}

func TestAudioRoundTrip(t *testing.T) {
	for _, seed := range []string{"", "audio seed"} {
		clip := testClip(2, 1024)
		payload := []byte("hidden in plain sound")

		embedded, err := EmbedInAudio(clip, payload, seed)
		if err != nil {
			t.Fatalf("seed %q: embed failed: %v", seed, err)
		}

		got, err := ExtractFromAudio(embedded, seed)
		if err != nil {
			t.Fatalf("seed %q: extract failed: %v", seed, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("seed %q: got %q, want %q", seed, got, payload)
		}
	}
}

func TestAudioEmbedDoesNotMutateCarrier(t *testing.T) {
	clip := testClip(2, 256)
	before := make([]float64, len(clip.Samples[0]))
	copy(before, clip.Samples[0])

	if _, err := EmbedInAudio(clip, []byte("payload"), "seed"); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for i, s := range clip.Samples[0] {
		if s != before[i] {
			t.Fatal("embed mutated the caller's clip")
		}
	}
}

func TestAudioCapacityBoundary(t *testing.T) {
	// 2 channels x 100 frames = 200 slots. 21 bytes need 168+32 = 200
	// bits and fit exactly; 22 bytes do not.
	clip := testClip(2, 100)
	if _, err := EmbedInAudio(clip, make([]byte, 21), "x"); err != nil {
		t.Fatalf("payload at capacity failed: %v", err)
	}
	if _, err := EmbedInAudio(clip, make([]byte, 22), "x"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("payload over capacity: got %v, want ErrCapacityExceeded", err)
	}
}

func TestAudioExtractFromCleanCarrier(t *testing.T) {
	// Silence quantizes to zero everywhere, so the header reads zero.
	clip := &AudioClip{SampleRate: 8000, Samples: [][]float64{make([]float64, 100)}}
	if _, err := ExtractFromAudio(clip, "any"); !errors.Is(err, ErrNoPayload) {
		t.Fatalf("got %v, want ErrNoPayload", err)
	}
}

func TestAudioRaggedChannelsRejected(t *testing.T) {
	clip := &AudioClip{
		SampleRate: 8000,
		Samples:    [][]float64{make([]float64, 100), make([]float64, 99)},
	}
	if _, err := EmbedInAudio(clip, []byte("x"), ""); err == nil {
		t.Error("embed accepted ragged channels")
	}
	if _, err := ExtractFromAudio(clip, ""); err == nil {
		t.Error("extract accepted ragged channels")
	}
}

func TestAudioBoundarySamples(t *testing.T) {
	// Samples at the edges of [-1, 1] must still round-trip their bits.
	clip := &AudioClip{SampleRate: 8000, Samples: [][]float64{make([]float64, 200)}}
	for i := range clip.Samples[0] {
		switch i % 4 {
		case 0:
			clip.Samples[0][i] = 1.0
		case 1:
			clip.Samples[0][i] = -1.0
		case 2:
			clip.Samples[0][i] = float64(-32768) / sampleScale
		case 3:
			clip.Samples[0][i] = 0
		}
	}

	payload := []byte("edge cases")
	embedded, err := EmbedInAudio(clip, payload, "edges")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for ch := range embedded.Samples {
		for _, s := range embedded.Samples[ch] {
			if v := quantize(s); v > 32767 || v < -32768 {
				t.Fatalf("embedded sample quantizes outside int16 range: %v", v)
			}
		}
	}

	got, err := ExtractFromAudio(embedded, "edges")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}
