package main

import (
	"fmt"
	"path/filepath"

	"github.com/openfret/psarckit/psarc"
	"github.com/spf13/cobra"
)

var extractFile string

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVar(&extractFile, "file", "", "Extract only the named member")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <archive> [dest]",
		Short: "Unpack archive members to a directory",
		Long: `The extract command unpacks every named member of a PSARC archive
under the destination directory, recreating the archive-relative paths.
Embedded song structures are decrypted on the way out.

Example:
  psarcctl extract songs.psarc out/
  psarcctl extract songs.psarc out/ --file songs/bin/generic/arr_lead.sng`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
	return cmd
}

func runExtract(args []string) error {
	archivePath := args[0]
	dest := "."
	if len(args) > 1 {
		dest = args[1]
	}

	log.Debug("opening archive", "path", archivePath)

	a, err := psarc.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	if extractFile != "" {
		destPath := filepath.Join(dest, filepath.FromSlash(extractFile))
		if err := a.ExtractTo(extractFile, destPath); err != nil {
			return err
		}
		printInfo("Extracted %s to %s\n", extractFile, destPath)
		return nil
	}

	log.Debug("extracting all members", "dest", dest, "files", a.NumMembers())
	if err := a.ExtractAll(dest); err != nil {
		return err
	}
	printInfo("Extracted %d member(s) to %s\n", a.NumMembers(), dest)
	return nil
}
