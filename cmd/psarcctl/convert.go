package main

import (
	"fmt"

	"github.com/openfret/psarckit/internal/wwise"
	"github.com/openfret/psarckit/psarc"
	"github.com/spf13/cobra"
)

var (
	convertTool     string
	convertToolArgs []string
)

func init() {
	cmd := newConvertCmd()
	audio := newConvertAudioCmd()
	audio.Flags().StringVar(&convertTool, "tool", "ww2ogg", "External WEM-to-Ogg converter binary")
	audio.Flags().StringArrayVar(&convertToolArgs, "tool-arg", nil, "Extra argument for the converter (repeatable)")
	cmd.AddCommand(newConvertSngCmd())
	cmd.AddCommand(audio)
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert archive contents to open formats",
	}
}

func newConvertSngCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sng <archive> [dest]",
		Short: "Convert embedded song structures to XML arrangements",
		Long: `The convert sng command decrypts every embedded song structure in a
PSARC archive, pairs it with its metadata manifest, and renders an XML
arrangement for each under <dest>/songs/arr.

Example:
  psarcctl convert sng songs.psarc out/`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertSng(args)
		},
	}
}

func newConvertAudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audio <archive> [dest]",
		Short: "Convert soundbank audio to Ogg Vorbis",
		Long: `The convert audio command decodes every Wwise soundbank and media
member in a PSARC archive to Ogg Vorbis through an external converter.

Example:
  psarcctl convert audio songs.psarc out/
  psarcctl convert audio songs.psarc out/ --tool ./ww2ogg --tool-arg --pcb --tool-arg codebooks.bin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertAudio(args)
		},
	}
}

func runConvertSng(args []string) error {
	archivePath, dest := convertArgs(args)

	a, err := psarc.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	log.Debug("converting song structures", "dest", dest)
	if err := a.ConvertSng(dest); err != nil {
		return err
	}
	printInfo("Converted song structures to %s\n", dest)
	return nil
}

func runConvertAudio(args []string) error {
	archivePath, dest := convertArgs(args)

	a, err := psarc.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	tc := &wwise.Exec{Command: convertTool, Args: convertToolArgs}
	log.Debug("converting audio", "dest", dest, "tool", convertTool)
	if err := a.ConvertAudio(dest, tc); err != nil {
		return err
	}
	printInfo("Converted audio to %s\n", dest)
	return nil
}

func convertArgs(args []string) (archivePath, dest string) {
	archivePath = args[0]
	dest = "."
	if len(args) > 1 {
		dest = args[1]
	}
	return archivePath, dest
}
