package steg

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/schollz/progressbar/v3"
)

// EmbedInImage hides payload in the least significant bits of the RGB
// components of img, at positions permuted by seed. The input image is never
// mutated; the returned image is a fresh clone. An empty seed embeds in
// natural component order.
func EmbedInImage(img *image.NRGBA, payload []byte, seed string) (*image.NRGBA, error) {
	return embedInImage(img, payload, seed, nil)
}

func embedInImage(img *image.NRGBA, payload []byte, seed string, bar *progressbar.ProgressBar) (*image.NRGBA, error) {
	out := cloneImage(img)
	slots := permuteSlots(pixelSlots(len(out.Pix)), seed)
	bits := buildBitstream(payload)

	if len(bits) > len(slots) {
		return nil, fmt.Errorf("%w: need %d bits, carrier has %d usable slots", ErrCapacityExceeded, len(bits), len(slots))
	}

	for i, bit := range bits {
		idx := slots[i]
		if bit == 0 {
			out.Pix[idx] = clearBitUint8(out.Pix[idx], 0)
		} else {
			out.Pix[idx] = setBitUint8(out.Pix[idx], 0)
		}
		if bar != nil && i%8 == 7 {
			bar.Add(1)
		}
	}

	return out, nil
}

// ExtractFromImage recovers a payload previously embedded with the same seed.
// It returns ErrNoPayload when the decoded length header is zero or larger
// than the carrier could hold, which is also what a wrong seed or a carrier
// without a payload looks like.
func ExtractFromImage(img *image.NRGBA, seed string) ([]byte, error) {
	return extractFromImage(img, seed, nil)
}

func extractFromImage(img *image.NRGBA, seed string, bar *progressbar.ProgressBar) ([]byte, error) {
	slots := permuteSlots(pixelSlots(len(img.Pix)), seed)
	if len(slots) < headerBits {
		return nil, ErrNoPayload
	}

	var n uint32
	for i := 0; i < headerBits; i++ {
		n = n<<1 | uint32(getBitUint8(img.Pix[slots[i]], 0))
	}
	if n == 0 || uint64(n) > uint64(len(slots)-headerBits) {
		return nil, ErrNoPayload
	}

	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = getBitUint8(img.Pix[slots[headerBits+i]], 0)
		if bar != nil && i%8 == 7 {
			bar.Add(1)
		}
	}

	return packBits(bits), nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// cloneImage converts any image into a dense NRGBA copy so the codec can
// address components as a flat RGBA buffer.
func cloneImage(img image.Image) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	width := img.Bounds().Max.X
	height := img.Bounds().Max.Y

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// saveImage always writes PNG: re-encoding through a lossy format would
// destroy the embedded bits.
func saveImage(path string, img *image.NRGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
