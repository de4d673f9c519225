package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"seedveil/pkg/steg"
	"seedveil/pkg/wavio"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [carrier-path]",
	Short: "Calculate the storage capacity of a carrier file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		carrierPath := args[0]

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Carrier\tShape\tCapacity (Bytes)\tCapacity (Bits)")
		fmt.Fprintln(wtr, "-------\t-----\t----------------\t---------------")

		if strings.EqualFold(filepath.Ext(carrierPath), ".wav") {
			pcm, err := wavio.ReadFile(carrierPath)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read WAV file")
			}
			channels := len(pcm.Channels)
			frames := 0
			if channels > 0 {
				frames = len(pcm.Channels[0])
			}
			bytes := steg.AudioCapacity(channels, frames)
			fmt.Fprintf(wtr, "audio\t%dch x %d\t%d\t%d\n", channels, frames, bytes, bytes*8)
		} else {
			f, err := os.Open(carrierPath)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open image")
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to decode image")
			}
			bounds := img.Bounds()
			w, h := bounds.Max.X, bounds.Max.Y
			bytes := steg.ImageCapacity(w, h)
			fmt.Fprintf(wtr, "image\t%dx%d\t%d\t%d\n", w, h, bytes, bytes*8)
		}

		wtr.Flush()
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
