package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"seedveil/pkg/steg"
)

var (
	revealFlags struct {
		Carrier string
		Pass    string
		Seed    string
		Out     string
		Fec     bool
	}
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal a payload hidden in an image or WAV file",
	Run: func(cmd *cobra.Command, args []string) {
		rArgs := &steg.RevealArgs{
			CarrierPath: revealFlags.Carrier,
			Passphrase:  revealFlags.Pass,
			Seed:        revealFlags.Seed,
			Armor:       revealFlags.Fec,
			Verbose:     verbose,
		}

		payload, isText, err := steg.Reveal(rArgs)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reveal payload")
		}

		if revealFlags.Out != "" {
			if err := os.WriteFile(revealFlags.Out, payload, 0644); err != nil {
				log.Fatal().Err(err).Msg("Failed to write output file")
			}
			return
		}

		if isText {
			fmt.Println(string(payload))
			return
		}
		log.Warn().Int("bytes", len(payload)).Msg("Payload is not text; use --output to write it to a file")
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().StringVarP(&revealFlags.Carrier, "carrier", "i", "", "Path to carrier image or WAV file (required)")
	revealCmd.MarkFlagRequired("carrier")
	revealCmd.Flags().StringVarP(&revealFlags.Pass, "passphrase", "p", "", "Passphrase to decrypt the payload")
	revealCmd.Flags().StringVarP(&revealFlags.Seed, "seed", "s", steg.DefaultSeed, "Seed used when the payload was concealed")
	revealCmd.Flags().StringVarP(&revealFlags.Out, "output", "o", "", "Output path for the revealed payload (optional)")
	revealCmd.Flags().BoolVar(&revealFlags.Fec, "fec", false, "Strip Reed-Solomon armor from the payload")
}
