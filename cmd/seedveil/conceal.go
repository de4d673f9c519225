package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"seedveil/pkg/steg"
)

var (
	concealFlags struct {
		Carrier  string
		Pass     string
		Seed     string
		Msg      string
		File     string
		Out      string
		Compress bool
		Fec      bool
	}
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Conceal a payload in an image or WAV file",
	Run: func(cmd *cobra.Command, args []string) {
		if concealFlags.Msg != "" && concealFlags.File != "" {
			log.Fatal().Msg("message and file flags cannot both be provided")
		}
		if concealFlags.Msg == "" && concealFlags.File == "" {
			log.Fatal().Msg("either a message or a file is required")
		}

		// Default output handling
		if concealFlags.Out == "" {
			outputDir := "output"
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				log.Fatal().Err(err).Msg("Failed to create default output directory")
			}
			ext := ".png"
			if strings.EqualFold(filepath.Ext(concealFlags.Carrier), ".wav") {
				ext = ".wav"
			}
			concealFlags.Out = filepath.Join(outputDir, "hidden"+ext)
		} else {
			if err := os.MkdirAll(filepath.Dir(concealFlags.Out), 0755); err != nil {
				log.Fatal().Err(err).Msg("Failed to create output directory")
			}
		}

		cArgs := &steg.ConcealArgs{
			CarrierPath: concealFlags.Carrier,
			OutputPath:  concealFlags.Out,
			Message:     concealFlags.Msg,
			File:        concealFlags.File,
			Passphrase:  concealFlags.Pass,
			Seed:        concealFlags.Seed,
			Compress:    concealFlags.Compress,
			Armor:       concealFlags.Fec,
			Verbose:     verbose,
		}

		if err := steg.Conceal(cArgs); err != nil {
			log.Fatal().Err(err).Msg("Failed to conceal payload")
		}
	},
}

func init() {
	rootCmd.AddCommand(concealCmd)

	concealCmd.Flags().StringVarP(&concealFlags.Carrier, "carrier", "i", "", "Path to carrier image or WAV file (required)")
	concealCmd.MarkFlagRequired("carrier")
	concealCmd.Flags().StringVarP(&concealFlags.Pass, "passphrase", "p", "", "Passphrase to encrypt the payload (empty = no encryption)")
	concealCmd.Flags().StringVarP(&concealFlags.Seed, "seed", "s", steg.DefaultSeed, "Seed for slot shuffling (empty = natural order)")
	concealCmd.Flags().StringVarP(&concealFlags.Msg, "message", "m", "", "Message to conceal")
	concealCmd.Flags().StringVarP(&concealFlags.File, "file", "f", "", "Path to file to conceal (overrides message)")
	concealCmd.Flags().StringVarP(&concealFlags.Out, "output", "o", "", "Output path for the carrier")
	concealCmd.Flags().BoolVarP(&concealFlags.Compress, "compress", "z", false, "Compress the payload before embedding")
	concealCmd.Flags().BoolVar(&concealFlags.Fec, "fec", false, "Add Reed-Solomon armor to the payload")
}
