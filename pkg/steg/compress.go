package steg

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress deflates data into a zlib stream. It never fails: if the stream
// cannot be produced the input is returned unchanged, and Decompress of that
// input is still safe.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return data
	}
	if err := w.Close(); err != nil {
		return data
	}
	return buf.Bytes()
}

// Decompress inflates a zlib stream produced by Compress. Input that is not
// valid zlib data is returned unchanged, so callers may decompress
// speculatively without tracking whether compression was applied.
func Decompress(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}
