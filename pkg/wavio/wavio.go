// Package wavio reads and writes uncompressed 16-bit PCM WAV files as
// per-channel float64 sample buffers.
//
// Samples are normalised by dividing the signed 16-bit value by 32767 and
// written back by truncating sample*32767. Keeping one scale factor in both
// directions means a value that round-trips through this package lands on the
// same 16-bit integer it started from, least significant bit included.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// PCM holds decoded WAV audio: Channels[ch][i] is the i-th sample of channel
// ch, in [-1, 1] (the most negative 16-bit value maps slightly below -1).
type PCM struct {
	SampleRate int
	Channels   [][]float64
}

const (
	pcmFormat      = 1
	bitsPerSample  = 16
	bytesPerSample = 2
	sampleScale    = 32767
)

var ErrFormat = errors.New("wavio: not an uncompressed 16-bit PCM WAV file")

// Decode parses a RIFF/WAVE stream. Only uncompressed 16-bit PCM is
// accepted; unknown chunks are skipped.
func Decode(r io.Reader) (*PCM, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, err
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrFormat
	}

	var (
		channels   int
		sampleRate int
		haveFmt    bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrFormat
			}
			return nil, err
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, err
			}
			if len(body) < 16 {
				return nil, ErrFormat
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != pcmFormat || bits != bitsPerSample || channels < 1 {
				return nil, ErrFormat
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, ErrFormat
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, err
			}
			return decodeSamples(body, channels, sampleRate), nil

		default:
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return nil, err
			}
		}
	}
}

func decodeSamples(body []byte, channels, sampleRate int) *PCM {
	frames := len(body) / (bytesPerSample * channels)
	pcm := &PCM{
		SampleRate: sampleRate,
		Channels:   make([][]float64, channels),
	}
	for ch := range pcm.Channels {
		pcm.Channels[ch] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * bytesPerSample
			v := int16(binary.LittleEndian.Uint16(body[off : off+2]))
			pcm.Channels[ch][i] = float64(v) / sampleScale
		}
	}
	return pcm
}

// Encode writes pcm as a canonical 44-byte-header WAV stream.
func Encode(w io.Writer, pcm *PCM) error {
	channels := len(pcm.Channels)
	if channels == 0 {
		return fmt.Errorf("wavio: no channels to encode")
	}
	frames := len(pcm.Channels[0])
	for ch, samples := range pcm.Channels {
		if len(samples) != frames {
			return fmt.Errorf("wavio: channel %d has %d samples, channel 0 has %d", ch, len(samples), frames)
		}
	}

	dataSize := frames * channels * bytesPerSample
	blockAlign := channels * bytesPerSample

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(pcm.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(pcm.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	body := make([]byte, dataSize)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * bytesPerSample
			binary.LittleEndian.PutUint16(body[off:off+2], uint16(clampSample(pcm.Channels[ch][i])))
		}
	}
	_, err := w.Write(body)
	return err
}

// clampSample quantizes with the same truncating conversion the codec uses,
// then clamps to the signed 16-bit range.
func clampSample(s float64) int16 {
	v := int(math.Floor(s * sampleScale))
	if v > math.MaxInt16 {
		v = math.MaxInt16
	}
	if v < math.MinInt16 {
		v = math.MinInt16
	}
	return int16(v)
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes pcm to the WAV file at path.
func WriteFile(path string, pcm *PCM) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, pcm)
}
