package steg

import (
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"seedveil/pkg/wavio"
)

// RevealArgs drives the file-level reveal pipeline, mirroring ConcealArgs.
type RevealArgs struct {
	CarrierPath string
	Passphrase  string
	Seed        string
	Armor       bool
	Verbose     bool
}

// Reveal extracts the embedded bytes from the carrier file and unwraps them
// in the reverse order of Conceal. The boolean reports whether the recovered
// payload looks like UTF-8 text.
func Reveal(args *RevealArgs) ([]byte, bool, error) {
	// Total is unknown until the length header has been read, so the bar
	// runs in spinner mode.
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionSetWriter(os.Stderr),
	)

	var (
		payload []byte
		err     error
	)
	if isWavPath(args.CarrierPath) {
		payload, err = revealAudio(args, bar)
	} else {
		payload, err = revealImage(args, bar)
	}
	if err != nil {
		return nil, false, err
	}

	if args.Armor {
		payload, err = Unarmor(payload)
		if err != nil {
			return nil, false, err
		}
	}

	if args.Passphrase != "" {
		return Open(payload, args.Passphrase)
	}

	// Without an envelope there is no compression flag, so decompression
	// is speculative; it returns the input unchanged when the payload was
	// never compressed.
	payload = Decompress(payload)
	return payload, utf8.Valid(payload), nil
}

func revealImage(args *RevealArgs, bar *progressbar.ProgressBar) ([]byte, error) {
	imgRaw, err := loadImage(args.CarrierPath)
	if err != nil {
		return nil, err
	}
	img := cloneImage(imgRaw)

	if args.Verbose {
		log.Debug().Int("width", img.Bounds().Max.X).Int("height", img.Bounds().Max.Y).Msg("Carrier dimensions")
	}

	return extractFromImage(img, args.Seed, bar)
}

func revealAudio(args *RevealArgs, bar *progressbar.ProgressBar) ([]byte, error) {
	pcm, err := wavio.ReadFile(args.CarrierPath)
	if err != nil {
		return nil, err
	}
	clip := &AudioClip{SampleRate: pcm.SampleRate, Samples: pcm.Channels}

	if args.Verbose {
		log.Debug().Int("channels", clip.Channels()).Int("frames", clip.Frames()).Msg("Carrier dimensions")
	}

	return extractFromAudio(clip, args.Seed, bar)
}
