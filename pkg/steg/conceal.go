package steg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"seedveil/pkg/wavio"
)

// ConcealArgs drives the file-level conceal pipeline. CarrierPath selects the
// codec by extension: .wav goes through the audio codec, everything the image
// decoder understands goes through the pixel codec (output is always PNG).
type ConcealArgs struct {
	CarrierPath string
	OutputPath  string
	Message     string
	File        string
	Passphrase  string
	Seed        string
	Compress    bool
	Armor       bool
	Verbose     bool
}

// Conceal reads the payload, wraps it per the args (compress, seal, armor),
// embeds it into the carrier file, and writes the result to OutputPath.
func Conceal(args *ConcealArgs) error {
	payload, err := readPayload(args)
	if err != nil {
		return err
	}

	if args.Passphrase != "" {
		payload, err = Seal(payload, args.Passphrase, args.Compress)
		if err != nil {
			return err
		}
	} else if args.Compress {
		payload = Compress(payload)
	}

	if args.Armor {
		payload, err = Armor(payload)
		if err != nil {
			return err
		}
	}

	bar := progressbar.NewOptions64(
		int64(len(payload)),
		progressbar.OptionSetDescription("encoding"),
		progressbar.OptionSetWriter(os.Stderr),
	)

	if isWavPath(args.CarrierPath) {
		return concealAudio(args, payload, bar)
	}
	return concealImage(args, payload, bar)
}

func concealImage(args *ConcealArgs, payload []byte, bar *progressbar.ProgressBar) error {
	img, err := loadImage(args.CarrierPath)
	if err != nil {
		return err
	}
	carrier := cloneImage(img)

	if args.Verbose {
		width, height := carrier.Bounds().Max.X, carrier.Bounds().Max.Y
		log.Debug().Int("width", width).Int("height", height).Msg("Carrier dimensions")
		log.Debug().Int("capacity", ImageCapacity(width, height)).Int("payload", len(payload)).Msg("Capacity in bytes")
	}

	out, err := embedInImage(carrier, payload, args.Seed, bar)
	if err != nil {
		return err
	}
	if err := saveImage(args.OutputPath, out); err != nil {
		return err
	}

	if args.Verbose {
		log.Info().Str("output", args.OutputPath).Msg("Embedded payload into image")
	}
	return nil
}

func concealAudio(args *ConcealArgs, payload []byte, bar *progressbar.ProgressBar) error {
	pcm, err := wavio.ReadFile(args.CarrierPath)
	if err != nil {
		return err
	}
	clip := &AudioClip{SampleRate: pcm.SampleRate, Samples: pcm.Channels}

	if args.Verbose {
		log.Debug().Int("channels", clip.Channels()).Int("frames", clip.Frames()).Msg("Carrier dimensions")
		log.Debug().Int("capacity", AudioCapacity(clip.Channels(), clip.Frames())).Int("payload", len(payload)).Msg("Capacity in bytes")
	}

	out, err := embedInAudio(clip, payload, args.Seed, bar)
	if err != nil {
		return err
	}
	if err := wavio.WriteFile(args.OutputPath, &wavio.PCM{SampleRate: out.SampleRate, Channels: out.Samples}); err != nil {
		return err
	}

	if args.Verbose {
		log.Info().Str("output", args.OutputPath).Msg("Embedded payload into audio")
	}
	return nil
}

func readPayload(args *ConcealArgs) ([]byte, error) {
	if args.File != "" {
		data, err := os.ReadFile(args.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}
	return []byte(args.Message), nil
}

func isWavPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
